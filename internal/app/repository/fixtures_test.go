package repository

import (
	"fmt"
	"testing"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createAddress(t *testing.T, testDB *gorm.DB, code, district, neighborhood string) *model.Address {
	address := &model.Address{
		Code:         code,
		Longitude:    127.0107,
		Latitude:     37.5884,
		Region:       "서울특별시",
		District:     district,
		Neighborhood: neighborhood,
	}
	require.NoError(t, testDB.Create(address).Error)
	return address
}

func createUser(t *testing.T, testDB *gorm.DB, phone, nickname string) *model.User {
	user := &model.User{PhoneNumber: phone, Nickname: nickname}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func orderStatusID(t *testing.T, testDB *gorm.DB, name string) uint {
	var status model.OrderStatus
	require.NoError(t, testDB.Where("name = ?", name).First(&status).Error)
	return status.ID
}

func firstCategoryID(t *testing.T, testDB *gorm.DB) uint {
	var category model.ProductCategory
	require.NoError(t, testDB.Order("id ASC").First(&category).Error)
	return category.ID
}

func createProduct(t *testing.T, testDB *gorm.DB, name string, uploader *model.User, address *model.Address, imageURLs ...string) *model.Product {
	product := &model.Product{
		Name:              name,
		Price:             10000,
		Description:       fmt.Sprintf("%s 설명", name),
		ProductCategoryID: firstCategoryID(t, testDB),
		UploaderID:        uploader.ID,
		AddressID:         address.ID,
		OrderStatusID:     orderStatusID(t, testDB, model.OrderStatusSelling),
	}
	require.NoError(t, NewProductRepository(testDB).CreateWithImages(product, imageURLs))
	return product
}
