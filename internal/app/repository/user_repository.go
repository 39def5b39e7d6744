package repository

import (
	"errors"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	CreateWithAddress(user *model.User, addressCode string) error
	FindByID(id uint) (*model.User, error)
	FindByPhoneNumber(phoneNumber string) (*model.User, error)
	ExistsByPhoneNumber(phoneNumber string) (bool, error)
	ExistsByNickname(nickname string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"nickname": user.Nickname,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"nickname": user.Nickname,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	})
	return nil
}

// CreateWithAddress creates the user and links the address with the given code
// in one transaction. A missing address rolls the user back and returns
// gorm.ErrRecordNotFound.
func (r *userRepository) CreateWithAddress(user *model.User, addressCode string) error {
	logger.Debug("Creating user with address in database", map[string]interface{}{
		"nickname":     user.Nickname,
		"address_code": addressCode,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		var address model.Address
		if err := tx.Where("code = ?", addressCode).First(&address).Error; err != nil {
			return err
		}

		return tx.Create(&model.FullAddress{
			UserID:        user.ID,
			FullAddressID: address.ID,
		}).Error
	})
	if err != nil {
		logger.Error("Failed to create user with address in database", err, map[string]interface{}{
			"nickname":     user.Nickname,
			"address_code": addressCode,
		})
		user.ID = 0
		return err
	}

	logger.Debug("User with address created in database", map[string]interface{}{
		"user_id":      user.ID,
		"address_code": addressCode,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Debug("User found by ID in database", map[string]interface{}{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	})
	return &user, nil
}

func (r *userRepository) FindByPhoneNumber(phoneNumber string) (*model.User, error) {
	logger.Debug("Finding user by phone number in database")

	var user model.User
	if err := r.db.Where("phone_number = ?", phoneNumber).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find user by phone number in database", err)
		}
		return nil, err
	}

	logger.Debug("User found by phone number in database", map[string]interface{}{
		"user_id": user.ID,
	})
	return &user, nil
}

func (r *userRepository) ExistsByPhoneNumber(phoneNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("phone_number = ?", phoneNumber).Count(&count).Error; err != nil {
		logger.Error("Failed to check phone number existence in database", err)
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByNickname(nickname string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
		logger.Error("Failed to check nickname existence in database", err, map[string]interface{}{
			"nickname": nickname,
		})
		return false, err
	}
	return count > 0, nil
}
