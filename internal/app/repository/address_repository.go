package repository

import (
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddressRepository interface {
	FindByID(id uint) (*model.Address, error)
	FindByCode(code string) (*model.Address, error)
	FindByCodePrefix(prefix string) ([]model.Address, error)
	UpsertBatch(addresses []model.Address, batchSize int) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	logger.Debug("Finding address by ID in database", map[string]interface{}{
		"address_id": id,
	})

	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		logger.Error("Failed to find address by ID in database", err, map[string]interface{}{
			"address_id": id,
		})
		return nil, err
	}

	return &address, nil
}

func (r *addressRepository) FindByCode(code string) (*model.Address, error) {
	logger.Debug("Finding address by code in database", map[string]interface{}{
		"code": code,
	})

	var address model.Address
	if err := r.db.Where("code = ?", code).First(&address).Error; err != nil {
		logger.Error("Failed to find address by code in database", err, map[string]interface{}{
			"code": code,
		})
		return nil, err
	}

	logger.Debug("Address found by code in database", map[string]interface{}{
		"address_id": address.ID,
		"code":       address.Code,
	})
	return &address, nil
}

// FindByCodePrefix returns every address in the same 시군구 when prefix is the
// first five code characters.
func (r *addressRepository) FindByCodePrefix(prefix string) ([]model.Address, error) {
	logger.Debug("Finding addresses by code prefix in database", map[string]interface{}{
		"prefix": prefix,
	})

	var addresses []model.Address
	err := r.db.Where("code LIKE ?", prefix+"%").
		Order("id ASC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by code prefix in database", err, map[string]interface{}{
			"prefix": prefix,
		})
		return nil, err
	}

	logger.Debug("Addresses found by code prefix in database", map[string]interface{}{
		"prefix": prefix,
		"count":  len(addresses),
	})
	return addresses, nil
}

// UpsertBatch inserts reference addresses, refreshing names and coordinates
// of codes that already exist.
func (r *addressRepository) UpsertBatch(addresses []model.Address, batchSize int) error {
	if len(addresses) == 0 {
		return nil
	}

	logger.Debug("Upserting addresses in database", map[string]interface{}{
		"count":      len(addresses),
		"batch_size": batchSize,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"longitude", "latitude", "region", "district", "neighborhood"}),
	}).CreateInBatches(&addresses, batchSize).Error
	if err != nil {
		logger.Error("Failed to upsert addresses in database", err, map[string]interface{}{
			"count": len(addresses),
		})
		return err
	}

	logger.Debug("Addresses upserted in database", map[string]interface{}{
		"count": len(addresses),
	})
	return nil
}
