package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	CreateWithImages(product *model.Product, imageURLs []string) error
	FindByID(id uint) (*model.Product, error)
	FindByAddressID(addressID uint) ([]model.Product, error)
	FindByUploaderID(uploaderID uint) ([]model.Product, error)
	FindByUploaderAndStatus(uploaderID, orderStatusID uint) ([]model.Product, error)
	IncrementViewed(id uint) (int64, error)
	UpdateOrderStatus(id, orderStatusID uint) (int64, error)
	FindImageURLs(productIDs []uint) (map[uint][]string, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// CreateWithImages stores the product and one image row per URL, keeping the
// given order.
func (r *productRepository) CreateWithImages(product *model.Product, imageURLs []string) error {
	logger.Debug("Creating product with images in database", map[string]interface{}{
		"name":        product.Name,
		"uploader_id": product.UploaderID,
		"address_id":  product.AddressID,
		"image_count": len(imageURLs),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		// 한 행씩 넣어야 ID 순서가 업로드 순서와 같다
		for _, url := range imageURLs {
			image := model.ProductImage{ImageURL: url, ProductID: product.ID}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create product with images in database", err, map[string]interface{}{
			"name":        product.Name,
			"uploader_id": product.UploaderID,
		})
		product.ID = 0
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id":  product.ID,
		"image_count": len(imageURLs),
	})
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.Preload("Address").
		Preload("OrderStatus").
		Preload("ProductCategory").
		Preload("Uploader").
		First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindByAddressID(addressID uint) ([]model.Product, error) {
	logger.Debug("Finding products by address ID in database", map[string]interface{}{
		"address_id": addressID,
	})

	var products []model.Product
	err := r.db.Preload("Address").
		Preload("OrderStatus").
		Where("address_id = ?", addressID).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by address ID in database", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	logger.Debug("Products found by address ID in database", map[string]interface{}{
		"address_id": addressID,
		"count":      len(products),
	})
	return products, nil
}

func (r *productRepository) FindByUploaderID(uploaderID uint) ([]model.Product, error) {
	logger.Debug("Finding products by uploader ID in database", map[string]interface{}{
		"uploader_id": uploaderID,
	})

	var products []model.Product
	err := r.db.Preload("OrderStatus").
		Where("uploader_id = ?", uploaderID).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by uploader ID in database", err, map[string]interface{}{
			"uploader_id": uploaderID,
		})
		return nil, err
	}

	logger.Debug("Products found by uploader ID in database", map[string]interface{}{
		"uploader_id": uploaderID,
		"count":       len(products),
	})
	return products, nil
}

func (r *productRepository) FindByUploaderAndStatus(uploaderID, orderStatusID uint) ([]model.Product, error) {
	logger.Debug("Finding products by uploader and status in database", map[string]interface{}{
		"uploader_id":     uploaderID,
		"order_status_id": orderStatusID,
	})

	var products []model.Product
	err := r.db.Preload("Address").
		Preload("OrderStatus").
		Where("uploader_id = ? AND order_status_id = ?", uploaderID, orderStatusID).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products by uploader and status in database", err, map[string]interface{}{
			"uploader_id":     uploaderID,
			"order_status_id": orderStatusID,
		})
		return nil, err
	}

	return products, nil
}

// IncrementViewed bumps the counter in place. updated_at is left alone so the
// posted time does not move on every read.
func (r *productRepository) IncrementViewed(id uint) (int64, error) {
	logger.Debug("Incrementing product viewed in database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Model(&model.Product{}).Where("id = ?", id).
		UpdateColumn("viewed", gorm.Expr("viewed + ?", 1))
	if result.Error != nil {
		logger.Error("Failed to increment product viewed in database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *productRepository) UpdateOrderStatus(id, orderStatusID uint) (int64, error) {
	logger.Debug("Updating product order status in database", map[string]interface{}{
		"product_id":      id,
		"order_status_id": orderStatusID,
	})

	result := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("order_status_id", orderStatusID)
	if result.Error != nil {
		logger.Error("Failed to update product order status in database", result.Error, map[string]interface{}{
			"product_id":      id,
			"order_status_id": orderStatusID,
		})
		return 0, result.Error
	}

	logger.Debug("Product order status updated in database", map[string]interface{}{
		"product_id":    id,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// FindImageURLs loads the images of all given products in one query, each
// list in insertion order.
func (r *productRepository) FindImageURLs(productIDs []uint) (map[uint][]string, error) {
	urls := make(map[uint][]string, len(productIDs))
	if len(productIDs) == 0 {
		return urls, nil
	}

	var images []model.ProductImage
	err := r.db.Where("product_id IN ?", productIDs).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to find product images in database", err, map[string]interface{}{
			"product_count": len(productIDs),
		})
		return nil, err
	}

	for _, image := range images {
		urls[image.ProductID] = append(urls[image.ProductID], image.ImageURL)
	}
	return urls, nil
}
