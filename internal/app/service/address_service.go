package service

import (
	"context"
	"errors"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/observability"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// 같은 시군구를 가리키는 코드 앞자리 수
const nearAddressPrefixLength = 5

// Cache is satisfied by pkg/redis.Cache. A nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type SavedAddress struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	AddressCode string `json:"address_code"`
	AddressName string `json:"address_name"`
}

type NearAddress struct {
	ID        uint    `json:"id"`
	Code      string  `json:"code"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Address   string  `json:"address"`
}

type AddressService interface {
	SelectAddresses(userID uint) ([]SavedAddress, error)
	AddAddress(userID uint, addressCode string) error
	RemoveAddress(userID uint, addressCode string) error
	NearAddresses(ctx context.Context, code string) ([]NearAddress, error)
}

type addressService struct {
	addressRepo     repository.AddressRepository
	fullAddressRepo repository.FullAddressRepository
	cache           Cache
}

func NewAddressService(
	addressRepo repository.AddressRepository,
	fullAddressRepo repository.FullAddressRepository,
	cache Cache,
) AddressService {
	return &addressService{
		addressRepo:     addressRepo,
		fullAddressRepo: fullAddressRepo,
		cache:           cache,
	}
}

func (s *addressService) SelectAddresses(userID uint) ([]SavedAddress, error) {
	saved, err := s.fullAddressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	addresses := make([]SavedAddress, 0, len(saved))
	for _, fa := range saved {
		addresses = append(addresses, SavedAddress{
			ID:          fa.ID,
			UserID:      fa.UserID,
			AddressCode: fa.FullAddress.Code,
			AddressName: fa.FullAddress.Neighborhood,
		})
	}
	return addresses, nil
}

func (s *addressService) AddAddress(userID uint, addressCode string) error {
	address, err := s.findByCode(addressCode)
	if err != nil {
		return err
	}

	if err := s.fullAddressRepo.Create(&model.FullAddress{
		UserID:        userID,
		FullAddressID: address.ID,
	}); err != nil {
		return err
	}

	logger.Info("Address saved for user", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
	})
	return nil
}

// RemoveAddress succeeds even when the address was not saved.
func (s *addressService) RemoveAddress(userID uint, addressCode string) error {
	address, err := s.findByCode(addressCode)
	if err != nil {
		return err
	}

	removed, err := s.fullAddressRepo.Delete(userID, address.ID)
	if err != nil {
		return err
	}

	logger.Info("Address removed for user", map[string]interface{}{
		"user_id":    userID,
		"address_id": address.ID,
		"removed":    removed,
	})
	return nil
}

// NearAddresses returns every neighborhood sharing the 시군구 part of code.
func (s *addressService) NearAddresses(ctx context.Context, code string) ([]NearAddress, error) {
	prefix := code
	if len(prefix) > nearAddressPrefixLength {
		prefix = prefix[:nearAddressPrefixLength]
	}

	var cached []NearAddress
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, prefix, &cached)
		switch {
		case err != nil:
			observability.CacheLookups.WithLabelValues("near_address", "error").Inc()
			logger.Warn("Near address cache read failed", map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			})
		case hit:
			observability.CacheLookups.WithLabelValues("near_address", "hit").Inc()
			return cached, nil
		default:
			observability.CacheLookups.WithLabelValues("near_address", "miss").Inc()
		}
	}

	addresses, err := s.addressRepo.FindByCodePrefix(prefix)
	if err != nil {
		return nil, err
	}

	near := make([]NearAddress, 0, len(addresses))
	for _, a := range addresses {
		near = append(near, NearAddress{
			ID:        a.ID,
			Code:      a.Code,
			Longitude: a.Longitude,
			Latitude:  a.Latitude,
			Address:   a.TownName(),
		})
	}

	if s.cache != nil && len(near) > 0 {
		if err := s.cache.SetJSON(ctx, prefix, near); err != nil {
			logger.Warn("Near address cache write failed", map[string]interface{}{
				"prefix": prefix,
				"error":  err.Error(),
			})
		}
	}
	return near, nil
}

func (s *addressService) findByCode(code string) (*model.Address, error) {
	address, err := s.addressRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}
