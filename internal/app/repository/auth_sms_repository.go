package repository

import (
	"errors"
	"time"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthSmsRepository interface {
	Upsert(code *model.AuthSms) error
	FindByPhoneNumber(phoneNumber string) (*model.AuthSms, error)
	DeleteByPhoneNumber(phoneNumber string) error
	Consume(phoneNumber, authNumber string) (int64, error)
	DeleteExpired(now time.Time) (int64, error)
}

type authSmsRepository struct {
	db *gorm.DB
}

func NewAuthSmsRepository(db *gorm.DB) AuthSmsRepository {
	return &authSmsRepository{db: db}
}

// Upsert replaces any code already stored for the phone number.
func (r *authSmsRepository) Upsert(code *model.AuthSms) error {
	logger.Debug("Upserting auth code in database")

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"auth_number", "expires_at", "updated_at"}),
	}).Create(code).Error
	if err != nil {
		logger.Error("Failed to upsert auth code in database", err)
		return err
	}

	logger.Debug("Auth code upserted in database", map[string]interface{}{
		"expires_at": code.ExpiresAt,
	})
	return nil
}

func (r *authSmsRepository) FindByPhoneNumber(phoneNumber string) (*model.AuthSms, error) {
	var code model.AuthSms
	if err := r.db.Where("phone_number = ?", phoneNumber).First(&code).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find auth code in database", err)
		}
		return nil, err
	}
	return &code, nil
}

func (r *authSmsRepository) DeleteByPhoneNumber(phoneNumber string) error {
	if err := r.db.Where("phone_number = ?", phoneNumber).Delete(&model.AuthSms{}).Error; err != nil {
		logger.Error("Failed to delete auth code from database", err)
		return err
	}

	logger.Debug("Auth code deleted from database")
	return nil
}

// Consume deletes the code only if it still holds authNumber. Zero rows
// affected means another request already used it or a new code replaced it.
func (r *authSmsRepository) Consume(phoneNumber, authNumber string) (int64, error) {
	result := r.db.Where("phone_number = ? AND auth_number = ?", phoneNumber, authNumber).
		Delete(&model.AuthSms{})
	if result.Error != nil {
		logger.Error("Failed to consume auth code in database", result.Error)
		return 0, result.Error
	}

	logger.Debug("Auth code consumed in database", map[string]interface{}{
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *authSmsRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&model.AuthSms{})
	if result.Error != nil {
		logger.Error("Failed to delete expired auth codes from database", result.Error)
		return 0, result.Error
	}

	logger.Debug("Expired auth codes deleted from database", map[string]interface{}{
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
