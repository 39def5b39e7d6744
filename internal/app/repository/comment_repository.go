package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.ProductComment) error
	FindByProductID(productID uint) ([]model.ProductComment, error)
	CountByProductIDs(productIDs []uint) (map[uint]int, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.ProductComment) error {
	logger.Debug("Creating product comment in database", map[string]interface{}{
		"product_id":  comment.ProductID,
		"uploader_id": comment.UploaderID,
	})

	if err := r.db.Create(comment).Error; err != nil {
		logger.Error("Failed to create product comment in database", err, map[string]interface{}{
			"product_id":  comment.ProductID,
			"uploader_id": comment.UploaderID,
		})
		return err
	}

	logger.Debug("Product comment created in database", map[string]interface{}{
		"comment_id": comment.ID,
		"product_id": comment.ProductID,
	})
	return nil
}

func (r *commentRepository) FindByProductID(productID uint) ([]model.ProductComment, error) {
	logger.Debug("Finding product comments in database", map[string]interface{}{
		"product_id": productID,
	})

	var comments []model.ProductComment
	err := r.db.Preload("Uploader").
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		logger.Error("Failed to find product comments in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Product comments found in database", map[string]interface{}{
		"product_id": productID,
		"count":      len(comments),
	})
	return comments, nil
}

func (r *commentRepository) CountByProductIDs(productIDs []uint) (map[uint]int, error) {
	return countByProduct(r.db, &model.ProductComment{}, productIDs)
}

type productCount struct {
	ProductID uint
	Count     int
}

// countByProduct runs one grouped count over the given products. Products
// without rows are absent from the map.
func countByProduct(db *gorm.DB, table interface{}, productIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	var rows []productCount
	err := db.Model(table).
		Select("product_id, COUNT(*) AS count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count rows by product in database", err, map[string]interface{}{
			"product_count": len(productIDs),
		})
		return nil, err
	}

	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}
