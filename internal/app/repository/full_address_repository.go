package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// FullAddressRepository manages the addresses a user has saved.
type FullAddressRepository interface {
	Create(fullAddress *model.FullAddress) error
	FindByUserID(userID uint) ([]model.FullAddress, error)
	FirstByUserID(userID uint) (*model.FullAddress, error)
	Delete(userID, addressID uint) (int64, error)
}

type fullAddressRepository struct {
	db *gorm.DB
}

func NewFullAddressRepository(db *gorm.DB) FullAddressRepository {
	return &fullAddressRepository{db: db}
}

func (r *fullAddressRepository) Create(fullAddress *model.FullAddress) error {
	logger.Debug("Creating full address in database", map[string]interface{}{
		"user_id":    fullAddress.UserID,
		"address_id": fullAddress.FullAddressID,
	})

	if err := r.db.Create(fullAddress).Error; err != nil {
		logger.Error("Failed to create full address in database", err, map[string]interface{}{
			"user_id":    fullAddress.UserID,
			"address_id": fullAddress.FullAddressID,
		})
		return err
	}

	logger.Debug("Full address created in database", map[string]interface{}{
		"full_address_id": fullAddress.ID,
		"user_id":         fullAddress.UserID,
	})
	return nil
}

func (r *fullAddressRepository) FindByUserID(userID uint) ([]model.FullAddress, error) {
	logger.Debug("Finding full addresses by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var fullAddresses []model.FullAddress
	err := r.db.Preload("FullAddress").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&fullAddresses).Error
	if err != nil {
		logger.Error("Failed to find full addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Full addresses found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(fullAddresses),
	})
	return fullAddresses, nil
}

// FirstByUserID returns the earliest saved address of the user.
func (r *fullAddressRepository) FirstByUserID(userID uint) (*model.FullAddress, error) {
	logger.Debug("Finding first full address by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var fullAddress model.FullAddress
	err := r.db.Preload("FullAddress").
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&fullAddress).Error
	if err != nil {
		logger.Error("Failed to find first full address by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return &fullAddress, nil
}

func (r *fullAddressRepository) Delete(userID, addressID uint) (int64, error) {
	logger.Debug("Deleting full address from database", map[string]interface{}{
		"user_id":    userID,
		"address_id": addressID,
	})

	result := r.db.Where("user_id = ? AND full_address_id = ?", userID, addressID).
		Delete(&model.FullAddress{})
	if result.Error != nil {
		logger.Error("Failed to delete full address from database", result.Error, map[string]interface{}{
			"user_id":    userID,
			"address_id": addressID,
		})
		return 0, result.Error
	}

	logger.Debug("Full address deleted from database", map[string]interface{}{
		"user_id":       userID,
		"address_id":    addressID,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
