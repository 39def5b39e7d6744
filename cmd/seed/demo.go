package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"gorm.io/gorm"
)

const productsPerDemoUser = 3

type demoResult struct {
	users    int
	products int
}

// seedDemoData creates sellers with listings spread over the imported
// addresses. Phone numbers are 010 + 8 random digits.
func seedDemoData(conn *gorm.DB, userCount int) (demoResult, error) {
	var result demoResult

	var addresses []model.Address
	if err := conn.Order("id ASC").Limit(500).Find(&addresses).Error; err != nil {
		return result, err
	}
	if len(addresses) == 0 {
		return result, fmt.Errorf("no addresses found, import the address XLSX first")
	}

	referenceRepo := repository.NewReferenceRepository(conn)
	mains, err := referenceRepo.ListCategories()
	if err != nil {
		return result, err
	}
	var categories []model.ProductCategory
	for _, main := range mains {
		categories = append(categories, main.Categories...)
	}
	if len(categories) == 0 {
		return result, fmt.Errorf("no product categories found")
	}

	selling, err := referenceRepo.FindOrderStatusByName(model.OrderStatusSelling)
	if err != nil {
		return result, err
	}

	userRepo := repository.NewUserRepository(conn)
	productRepo := repository.NewProductRepository(conn)

	for i := 0; i < userCount; i++ {
		address := addresses[gofakeit.Number(0, len(addresses)-1)]

		user := &model.User{
			PhoneNumber: "010" + gofakeit.Numerify("########"),
			Nickname:    fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		}
		email := gofakeit.Email()
		user.Email = &email

		exists, err := userRepo.ExistsByPhoneNumber(user.PhoneNumber)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}
		if err := userRepo.CreateWithAddress(user, address.Code); err != nil {
			return result, err
		}
		result.users++

		for j := 0; j < productsPerDemoUser; j++ {
			product := &model.Product{
				Name:              gofakeit.ProductName(),
				Price:             gofakeit.Number(1, 500) * 1000,
				Description:       gofakeit.Paragraph(1, 2, 8, "\n"),
				AccessRange:       gofakeit.Number(0, 3),
				ProductCategoryID: categories[gofakeit.Number(0, len(categories)-1)].ID,
				UploaderID:        user.ID,
				AddressID:         address.ID,
				OrderStatusID:     selling.ID,
			}
			images := []string{
				fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			}
			if err := productRepo.CreateWithImages(product, images); err != nil {
				return result, err
			}
			result.products++
		}
	}

	return result, nil
}
