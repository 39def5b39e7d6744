package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/repository"
	"github.com/ikkim/kiwimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNoProduct        = errors.New("no product for address")
	ErrNoSellingProduct = errors.New("seller has no product")
	ErrNoComment        = errors.New("product has no comment")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidForm      = errors.New("invalid listing form")
)

// ImageStorage stores uploaded images and returns their public URLs.
type ImageStorage interface {
	CheckImage(contentType string, size int64) error
	UploadImage(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
	DeleteImage(ctx context.Context, url string) error
}

// ImageFile is one uploaded file, read once by the storage.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadListingInput is the seller form of a new listing.
type UploadListingInput struct {
	UploaderID        uint
	AddressID         uint
	Name              string
	Description       string
	Price             int
	AccessRange       int
	ProductCategoryID uint
	Images            []ImageFile
}

type ProductService interface {
	ListByAddress(addressID uint) ([]ListingSummary, error)
	GetDetail(productID uint) (*ListingDetail, error)
	ListBySeller(uploaderID uint) ([]SellerItem, error)
	RelatedItems(addressID uint) ([]SellerItem, error)
	UploadListing(ctx context.Context, input UploadListingInput) (*model.Product, error)
	ListComments(productID uint) (*CommentList, error)
	AddComment(userID, productID uint, content string) error
	AddWishlist(userID, productID uint) error
	ChangeStatus(productID, orderStatusID uint, strict bool) error
}

type productService struct {
	productRepo   repository.ProductRepository
	commentRepo   repository.CommentRepository
	wishlistRepo  repository.WishlistRepository
	addressRepo   repository.AddressRepository
	referenceRepo repository.ReferenceRepository
	storage       ImageStorage
}

func NewProductService(
	productRepo repository.ProductRepository,
	commentRepo repository.CommentRepository,
	wishlistRepo repository.WishlistRepository,
	addressRepo repository.AddressRepository,
	referenceRepo repository.ReferenceRepository,
	storage ImageStorage,
) ProductService {
	return &productService{
		productRepo:   productRepo,
		commentRepo:   commentRepo,
		wishlistRepo:  wishlistRepo,
		addressRepo:   addressRepo,
		referenceRepo: referenceRepo,
		storage:       storage,
	}
}

// loadRelations fetches images and counts for all products with one query each.
func (s *productService) loadRelations(products []model.Product, withCounts bool) (listingRelations, error) {
	ids := productIDs(products)

	var rel listingRelations
	var err error
	if rel.images, err = s.productRepo.FindImageURLs(ids); err != nil {
		return rel, err
	}
	if !withCounts {
		return rel, nil
	}
	if rel.wishes, err = s.wishlistRepo.CountByProductIDs(ids); err != nil {
		return rel, err
	}
	if rel.comments, err = s.commentRepo.CountByProductIDs(ids); err != nil {
		return rel, err
	}
	return rel, nil
}

func (s *productService) ListByAddress(addressID uint) ([]ListingSummary, error) {
	products, err := s.productRepo.FindByAddressID(addressID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProduct
	}

	rel, err := s.loadRelations(products, true)
	if err != nil {
		return nil, err
	}

	summaries := make([]ListingSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, toListingSummary(p, rel))
	}
	return summaries, nil
}

// GetDetail counts a view on every call, including repeated reads.
func (s *productService) GetDetail(productID uint) (*ListingDetail, error) {
	affected, err := s.productRepo.IncrementViewed(productID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	rel, err := s.loadRelations([]model.Product{*product}, true)
	if err != nil {
		return nil, err
	}
	return toListingDetail(*product, rel), nil
}

func (s *productService) ListBySeller(uploaderID uint) ([]SellerItem, error) {
	products, err := s.productRepo.FindByUploaderID(uploaderID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoSellingProduct
	}
	return s.sellerItems(products)
}

// RelatedItems lists the address's products in the seller card shape. An
// empty neighborhood is not an error.
func (s *productService) RelatedItems(addressID uint) ([]SellerItem, error) {
	products, err := s.productRepo.FindByAddressID(addressID)
	if err != nil {
		return nil, err
	}
	return s.sellerItems(products)
}

func (s *productService) sellerItems(products []model.Product) ([]SellerItem, error) {
	rel, err := s.loadRelations(products, false)
	if err != nil {
		return nil, err
	}

	items := make([]SellerItem, 0, len(products))
	for _, p := range products {
		items = append(items, toSellerItem(p, rel))
	}
	return items, nil
}

// UploadListing stores the images, then the product in the 판매중 status with
// one image row per file in upload order.
func (s *productService) UploadListing(ctx context.Context, input UploadListingInput) (*model.Product, error) {
	logger.Info("Uploading listing", map[string]interface{}{
		"uploader_id": input.UploaderID,
		"address_id":  input.AddressID,
		"image_count": len(input.Images),
	})

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" || input.Price < 0 || input.AccessRange < 0 {
		logger.Warn("Listing upload rejected: invalid form", map[string]interface{}{
			"uploader_id": input.UploaderID,
		})
		return nil, ErrInvalidForm
	}

	if _, err := s.referenceRepo.FindCategoryByID(input.ProductCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidForm
		}
		return nil, err
	}

	if _, err := s.addressRepo.FindByID(input.AddressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	selling, err := s.referenceRepo.FindOrderStatusByName(model.OrderStatusSelling)
	if err != nil {
		return nil, err
	}

	// 하나라도 거절되면 아무것도 올리지 않는다
	for _, image := range input.Images {
		if err := s.storage.CheckImage(image.ContentType, image.Size); err != nil {
			logger.Warn("Listing upload rejected: invalid image", map[string]interface{}{
				"uploader_id": input.UploaderID,
				"filename":    image.Filename,
				"error":       err.Error(),
			})
			return nil, err
		}
	}

	urls := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		url, err := s.storage.UploadImage(ctx, image.Filename, image.ContentType, image.Size, image.Body)
		if err != nil {
			logger.Error("Failed to store listing image", err, map[string]interface{}{
				"uploader_id": input.UploaderID,
				"filename":    image.Filename,
			})
			s.discardImages(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	product := &model.Product{
		Name:              input.Name,
		Price:             input.Price,
		Description:       input.Description,
		AccessRange:       input.AccessRange,
		Viewed:            0,
		ProductCategoryID: input.ProductCategoryID,
		UploaderID:        input.UploaderID,
		AddressID:         input.AddressID,
		OrderStatusID:     selling.ID,
	}
	if err := s.productRepo.CreateWithImages(product, urls); err != nil {
		s.discardImages(ctx, urls)
		return nil, err
	}

	logger.Info("Listing uploaded successfully", map[string]interface{}{
		"product_id":  product.ID,
		"image_count": len(urls),
	})
	return product, nil
}

// discardImages removes images stored for a listing that was not created.
func (s *productService) discardImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storage.DeleteImage(ctx, url); err != nil {
			logger.Warn("Failed to discard orphaned listing image", map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
}

func (s *productService) ListComments(productID uint) (*CommentList, error) {
	comments, err := s.commentRepo.FindByProductID(productID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, ErrNoComment
	}
	return toCommentList(comments), nil
}

func (s *productService) AddComment(userID, productID uint, content string) error {
	if err := s.ensureProduct(productID); err != nil {
		return err
	}

	comment := &model.ProductComment{
		UploaderID: userID,
		ProductID:  productID,
		Content:    content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return err
	}

	logger.Info("Comment added", map[string]interface{}{
		"comment_id": comment.ID,
		"product_id": productID,
		"user_id":    userID,
	})
	return nil
}

// AddWishlist is idempotent: wishlisting twice keeps one row.
func (s *productService) AddWishlist(userID, productID uint) error {
	if err := s.ensureProduct(productID); err != nil {
		return err
	}

	if err := s.wishlistRepo.Create(&model.Wishlist{
		ProductID: productID,
		UserID:    userID,
		IsLiked:   true,
	}); err != nil {
		return err
	}

	logger.Info("Product wishlisted", map[string]interface{}{
		"product_id": productID,
		"user_id":    userID,
	})
	return nil
}

// ChangeStatus is a silent no-op for unknown products unless strict is set.
func (s *productService) ChangeStatus(productID, orderStatusID uint, strict bool) error {
	if _, err := s.referenceRepo.FindOrderStatusByID(orderStatusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderStatusNotFound
		}
		return err
	}

	affected, err := s.productRepo.UpdateOrderStatus(productID, orderStatusID)
	if err != nil {
		return err
	}
	if affected == 0 {
		logger.Warn("Status change matched no product", map[string]interface{}{
			"product_id": productID,
			"strict":     strict,
		})
		if strict {
			return ErrProductNotFound
		}
		return nil
	}

	logger.Info("Product status changed", map[string]interface{}{
		"product_id":      productID,
		"order_status_id": orderStatusID,
	})
	return nil
}

func (s *productService) ensureProduct(productID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
