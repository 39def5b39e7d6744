package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// ReferenceRepository reads order statuses and categories seeded at migration.
type ReferenceRepository interface {
	FindOrderStatusByName(name string) (*model.OrderStatus, error)
	FindOrderStatusByID(id uint) (*model.OrderStatus, error)
	FindCategoryByID(id uint) (*model.ProductCategory, error)
	ListCategories() ([]model.MainCategory, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) FindOrderStatusByName(name string) (*model.OrderStatus, error) {
	var status model.OrderStatus
	if err := r.db.Where("name = ?", name).First(&status).Error; err != nil {
		logger.Error("Failed to find order status by name in database", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return &status, nil
}

func (r *referenceRepository) FindOrderStatusByID(id uint) (*model.OrderStatus, error) {
	var status model.OrderStatus
	if err := r.db.First(&status, id).Error; err != nil {
		logger.Error("Failed to find order status by ID in database", err, map[string]interface{}{
			"order_status_id": id,
		})
		return nil, err
	}
	return &status, nil
}

func (r *referenceRepository) FindCategoryByID(id uint) (*model.ProductCategory, error) {
	var category model.ProductCategory
	if err := r.db.First(&category, id).Error; err != nil {
		logger.Error("Failed to find product category by ID in database", err, map[string]interface{}{
			"product_category_id": id,
		})
		return nil, err
	}
	return &category, nil
}

func (r *referenceRepository) ListCategories() ([]model.MainCategory, error) {
	var categories []model.MainCategory
	if err := r.db.Preload("Categories").Order("id ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories in database", err)
		return nil, err
	}
	return categories, nil
}
