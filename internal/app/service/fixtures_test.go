package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

type fakeSender struct {
	mu    sync.Mutex
	sent  map[string]string
	fail  bool
	calls int
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[string]string)}
}

func (f *fakeSender) SendCode(_ context.Context, phoneNumber, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return errors.New("gateway unavailable")
	}
	f.sent[phoneNumber] = code
	return nil
}

func (f *fakeSender) lastCode(phoneNumber string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[phoneNumber]
}

// fakeStorage rejects rejectType on check. With fail set, uploads fail once
// failAfter images are stored.
type fakeStorage struct {
	baseURL    string
	uploaded   []string
	deleted    []string
	fail       error
	failAfter  int
	rejectType string
}

func (f *fakeStorage) CheckImage(contentType string, _ int64) error {
	if f.rejectType != "" && contentType == f.rejectType {
		return errors.New("unsupported image content type")
	}
	return nil
}

func (f *fakeStorage) UploadImage(_ context.Context, filename, _ string, _ int64, body io.Reader) (string, error) {
	if f.fail != nil && len(f.uploaded) >= f.failAfter {
		return "", f.fail
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	url := f.baseURL + "/" + filename
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeStorage) DeleteImage(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type memoryCache struct {
	entries map[string]interface{}
	gets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]interface{})}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	m.gets++
	value, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	out, ok := dest.(*[]NearAddress)
	if !ok {
		return false, errors.New("unexpected cache destination")
	}
	*out = value.([]NearAddress)
	return true, nil
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value interface{}) error {
	m.entries[key] = value
	return nil
}

// testEnv bundles the repositories shared by the service tests.
type testEnv struct {
	db            *gorm.DB
	users         repository.UserRepository
	fullAddresses repository.FullAddressRepository
	addresses     repository.AddressRepository
	authSms       repository.AuthSmsRepository
	products      repository.ProductRepository
	comments      repository.CommentRepository
	wishlists     repository.WishlistRepository
	references    repository.ReferenceRepository
	tokens        TokenIssuer
}

func setupTestEnv(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return &testEnv{
		db:            testDB,
		users:         repository.NewUserRepository(testDB),
		fullAddresses: repository.NewFullAddressRepository(testDB),
		addresses:     repository.NewAddressRepository(testDB),
		authSms:       repository.NewAuthSmsRepository(testDB),
		products:      repository.NewProductRepository(testDB),
		comments:      repository.NewCommentRepository(testDB),
		wishlists:     repository.NewWishlistRepository(testDB),
		references:    repository.NewReferenceRepository(testDB),
		tokens:        NewTokenIssuer(testJWTSecret, time.Hour),
	}
}

func (e *testEnv) productService(storage ImageStorage) ProductService {
	return NewProductService(e.products, e.comments, e.wishlists, e.addresses, e.references, storage)
}

func (e *testEnv) userService() UserService {
	return NewUserService(e.users, e.fullAddresses, e.products, e.references, e.tokens)
}

func (e *testEnv) createAddress(t *testing.T, id uint, code, district, neighborhood string) *model.Address {
	address := &model.Address{
		ID:           id,
		Code:         code,
		Region:       "서울특별시",
		District:     district,
		Neighborhood: neighborhood,
	}
	require.NoError(t, e.db.Create(address).Error)
	return address
}

func (e *testEnv) createUser(t *testing.T, phone, nickname string) *model.User {
	user := &model.User{PhoneNumber: phone, Nickname: nickname}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) categoryID(t *testing.T) uint {
	var category model.ProductCategory
	require.NoError(t, e.db.Where("name = ?", "여성의류").First(&category).Error)
	return category.ID
}

func (e *testEnv) statusID(t *testing.T, name string) uint {
	status, err := e.references.FindOrderStatusByName(name)
	require.NoError(t, err)
	return status.ID
}

func (e *testEnv) createProduct(t *testing.T, name string, price int, seller *model.User, address *model.Address, images ...string) *model.Product {
	product := &model.Product{
		Name:              name,
		Price:             price,
		Description:       "상태 좋아요",
		ProductCategoryID: e.categoryID(t),
		UploaderID:        seller.ID,
		AddressID:         address.ID,
		OrderStatusID:     e.statusID(t, model.OrderStatusSelling),
	}
	require.NoError(t, e.products.CreateWithImages(product, images))
	return product
}
