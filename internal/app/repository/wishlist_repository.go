package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	Create(item *model.Wishlist) error
	CountByProductIDs(productIDs []uint) (map[uint]int, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Create is idempotent per (product, user).
func (r *wishlistRepository) Create(item *model.Wishlist) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(item).Error
	if err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Wishlist item created in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})
	return nil
}

func (r *wishlistRepository) CountByProductIDs(productIDs []uint) (map[uint]int, error) {
	return countByProduct(r.db, &model.Wishlist{}, productIDs)
}
