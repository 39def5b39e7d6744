package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrDuplicatedPhoneNumber = errors.New("phone number already registered")
	ErrDuplicatedNickname    = errors.New("nickname already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrFullAddressNotFound   = errors.New("user has no saved address")
	ErrAddressNotFound       = errors.New("address not found")
	ErrOrderStatusNotFound   = errors.New("order status not found")
)

// SignUpInput is the registration form.
type SignUpInput struct {
	PhoneNumber string
	Nickname    string
	Email       string
	AddressCode string
}

// Profile is the 마이페이지 header.
type Profile struct {
	UserID         string  `json:"user_id"`
	Nickname       string  `json:"nickname"`
	ProfilePicture *string `json:"profile_picture"`
	AddressName    string  `json:"address_name"`
	AddressCode    uint    `json:"address_code"`
}

// SalesItem is one entry of the seller's sales history.
type SalesItem struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	AddressCode     uint     `json:"address_code"`
	AddressName     string   `json:"address_name"`
	Price           int      `json:"price"`
	OrderStatusID   uint     `json:"order_status_id"`
	OrderStatusName string   `json:"order_status_name"`
	Images          []string `json:"images"`
}

type UserService interface {
	CheckNickname(nickname string) error
	SignUp(input SignUpInput) (*model.User, string, error)
	GetUserByID(id uint) (*model.User, error)
	Profile(userID uint) (*Profile, error)
	SalesHistory(userID, orderStatusID uint) ([]SalesItem, error)
}

type userService struct {
	userRepo        repository.UserRepository
	fullAddressRepo repository.FullAddressRepository
	productRepo     repository.ProductRepository
	referenceRepo   repository.ReferenceRepository
	tokens          TokenIssuer
}

func NewUserService(
	userRepo repository.UserRepository,
	fullAddressRepo repository.FullAddressRepository,
	productRepo repository.ProductRepository,
	referenceRepo repository.ReferenceRepository,
	tokens TokenIssuer,
) UserService {
	return &userService{
		userRepo:        userRepo,
		fullAddressRepo: fullAddressRepo,
		productRepo:     productRepo,
		referenceRepo:   referenceRepo,
		tokens:          tokens,
	}
}

func (s *userService) CheckNickname(nickname string) error {
	exists, err := s.userRepo.ExistsByNickname(nickname)
	if err != nil {
		return err
	}
	if exists {
		logger.Warn("Nickname already taken", map[string]interface{}{
			"nickname": nickname,
		})
		return ErrDuplicatedNickname
	}
	return nil
}

// SignUp creates the user with its first saved address and returns a session
// token for the new account.
func (s *userService) SignUp(input SignUpInput) (*model.User, string, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"nickname":     input.Nickname,
		"address_code": input.AddressCode,
	})

	if err := util.ValidatePhoneNumber(input.PhoneNumber); err != nil {
		logger.Warn("Registration failed: invalid phone number", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, "", err
	}

	exists, err := s.userRepo.ExistsByPhoneNumber(input.PhoneNumber)
	if err != nil {
		return nil, "", err
	}
	if exists {
		logger.Warn("Registration failed: phone number already registered")
		return nil, "", ErrDuplicatedPhoneNumber
	}

	if err := s.CheckNickname(input.Nickname); err != nil {
		return nil, "", err
	}

	user := &model.User{
		PhoneNumber: input.PhoneNumber,
		Nickname:    input.Nickname,
	}
	if input.Email != "" {
		email := input.Email
		user.Email = &email
	}

	if err := s.userRepo.CreateWithAddress(user, input.AddressCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrAddressNotFound
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.Error("Failed to issue session token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"nickname": user.Nickname,
	})
	return user, token, nil
}

func (s *userService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Profile(userID uint) (*Profile, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.fullAddressRepo.FirstByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFullAddressNotFound
		}
		return nil, err
	}

	return &Profile{
		UserID:         fmt.Sprintf("#%d", user.ID),
		Nickname:       user.Nickname,
		ProfilePicture: user.ProfilePicture,
		AddressName:    saved.FullAddress.Neighborhood,
		AddressCode:    saved.FullAddress.ID,
	}, nil
}

// SalesHistory lists the user's products in the given status.
func (s *userService) SalesHistory(userID, orderStatusID uint) ([]SalesItem, error) {
	if _, err := s.referenceRepo.FindOrderStatusByID(orderStatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderStatusNotFound
		}
		return nil, err
	}

	products, err := s.productRepo.FindByUploaderAndStatus(userID, orderStatusID)
	if err != nil {
		return nil, err
	}

	images, err := s.productRepo.FindImageURLs(productIDs(products))
	if err != nil {
		return nil, err
	}

	items := make([]SalesItem, 0, len(products))
	for _, p := range products {
		urls := images[p.ID]
		if urls == nil {
			urls = []string{}
		}
		items = append(items, SalesItem{
			ID:              p.ID,
			Name:            p.Name,
			AddressCode:     p.AddressID,
			AddressName:     p.Address.Region + " " + p.Address.District,
			Price:           p.Price,
			OrderStatusID:   p.OrderStatusID,
			OrderStatusName: p.OrderStatus.Name,
			Images:          urls,
		})
	}
	return items, nil
}
