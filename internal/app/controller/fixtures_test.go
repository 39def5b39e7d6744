package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	"github.com/ikkim/kiwimarket-backend/internal/db"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
	"github.com/ikkim/kiwimarket-backend/internal/storage"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-for-controller"

type recordingSender struct {
	mu   sync.Mutex
	sent map[string]string
}

func (r *recordingSender) SendCode(_ context.Context, phoneNumber, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[phoneNumber] = code
	return nil
}

func (r *recordingSender) code(phoneNumber string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[phoneNumber]
}

// memoryStorage accepts png and jpeg images and keeps the URLs it handed out.
type memoryStorage struct {
	urls []string
}

func (m *memoryStorage) CheckImage(contentType string, size int64) error {
	if err := storage.ValidateContentType(contentType, []string{"image/png", "image/jpeg"}); err != nil {
		return err
	}
	return storage.ValidateFileSize(size, storage.MaxImageSize)
}

func (m *memoryStorage) UploadImage(_ context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if err := m.CheckImage(contentType, size); err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	url := "https://cdn.kiwimarket.test/products/" + filename
	m.urls = append(m.urls, url)
	return url, nil
}

func (m *memoryStorage) DeleteImage(_ context.Context, url string) error {
	for i, stored := range m.urls {
		if stored == url {
			m.urls = append(m.urls[:i], m.urls[i+1:]...)
			return nil
		}
	}
	return nil
}

type controllerEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	sender  *recordingSender
	storage *memoryStorage
}

func setupControllerTest(t *testing.T) *controllerEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	fullAddressRepo := repository.NewFullAddressRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	authSmsRepo := repository.NewAuthSmsRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	commentRepo := repository.NewCommentRepository(testDB)
	wishlistRepo := repository.NewWishlistRepository(testDB)
	referenceRepo := repository.NewReferenceRepository(testDB)

	sender := &recordingSender{sent: make(map[string]string)}
	imageStorage := &memoryStorage{}
	tokens := service.NewTokenIssuer(testJWTSecret, time.Hour)

	verificationService := service.NewVerificationService(authSmsRepo, userRepo, sender, tokens, 3*time.Minute)
	userService := service.NewUserService(userRepo, fullAddressRepo, productRepo, referenceRepo, tokens)
	addressService := service.NewAddressService(addressRepo, fullAddressRepo, nil)
	productService := service.NewProductService(productRepo, commentRepo, wishlistRepo, addressRepo, referenceRepo, imageStorage)

	authController := NewAuthController(verificationService, userService)
	addressController := NewAddressController(addressService)
	userController := NewUserController(userService, productService, false)
	productController := NewProductController(productService)
	auth := middleware.NewAuthMiddleware(testJWTSecret, userService)

	require.NoError(t, RegisterValidators())

	gin.SetMode(gin.TestMode)
	router := gin.New()

	user := router.Group("/user")
	{
		user.POST("/smscheck", authController.SMSCheck)
		user.POST("/checknum", authController.CheckNum)
		user.POST("/checknickname", authController.CheckNickname)
		user.POST("/signup", authController.SignUp)

		session := user.Group("", auth.Authenticate())
		session.GET("/selectmyaddress", addressController.SelectMyAddress)
		session.POST("/selectmyaddress", addressController.SelectMyAddress)
		session.POST("/addmyaddress", addressController.AddMyAddress)
		session.POST("/deletemyaddress", addressController.DeleteMyAddress)
		session.GET("/getnearaddress/:code", addressController.GetNearAddress)
		session.GET("/profile", userController.Profile)
		session.GET("/saleshistory", userController.SalesHistory)
		session.POST("/changestatus/:product_id", userController.ChangeStatus)
	}

	product := router.Group("/product")
	{
		product.GET("/:address_id", productController.ListByAddress)
		product.GET("/detail/:product_id", productController.Detail)
		product.GET("/selleritems/:uploader_id", productController.SellerItems)
		product.GET("/relateditems/:address_id", productController.RelatedItems)
		product.GET("/comment/:product_id", productController.Comments)
		product.POST("/productupload/:address_id", auth.Authenticate(), productController.ProductUpload)
		product.POST("/commentupload/:product_id", auth.Authenticate(), productController.CommentUpload)
		product.POST("/wishlist/:product_id", auth.Authenticate(), productController.Wishlist)
	}

	return &controllerEnv{
		db:      testDB,
		router:  router,
		sender:  sender,
		storage: imageStorage,
	}
}

func (e *controllerEnv) createAddress(t *testing.T, id uint, code, district, neighborhood string) *model.Address {
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

func (e *controllerEnv) createUser(t *testing.T, phone, nickname string, address *model.Address) *model.User {
	user := &model.User{PhoneNumber: phone, Nickname: nickname}
	require.NoError(t, e.db.Create(user).Error)
	if address != nil {
		require.NoError(t, e.db.Create(&model.FullAddress{UserID: user.ID, FullAddressID: address.ID}).Error)
	}
	return user
}

func (e *controllerEnv) categoryID(t *testing.T) uint {
	var category model.ProductCategory
	require.NoError(t, e.db.Where("name = ?", "여성의류").First(&category).Error)
	return category.ID
}

func (e *controllerEnv) createProduct(t *testing.T, name string, price int, seller *model.User, address *model.Address, images ...string) *model.Product {
	var selling model.OrderStatus
	require.NoError(t, e.db.Where("name = ?", model.OrderStatusSelling).First(&selling).Error)

	product := &model.Product{
		Name:              name,
		Price:             price,
		Description:       "깨끗하게 썼어요",
		ProductCategoryID: e.categoryID(t),
		UploaderID:        seller.ID,
		AddressID:         address.ID,
		OrderStatusID:     selling.ID,
	}
	require.NoError(t, repository.NewProductRepository(e.db).CreateWithImages(product, images))
	return product
}

func tokenFor(t *testing.T, user *model.User) string {
	token, err := util.GenerateSessionToken(user.ID, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

// request sends a JSON request; body may be nil and token may be empty.
func (e *controllerEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	msg, _ := decodeBody(t, w)["message"].(string)
	return msg
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	require.Equal(t, expected, w.Code, "body: %s", w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
