package controller

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	apperrors "github.com/ikkim/kiwimarket-backend/internal/errors"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
	"github.com/ikkim/kiwimarket-backend/internal/storage"
)

// 업로드 폼에서 이미지 파일 필드 이름
const imageFormField = "image"

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// ProductUploadForm is the multipart seller form.
type ProductUploadForm struct {
	Name            string `form:"name" binding:"required"`
	Description     string `form:"description"`
	Price           *int   `form:"price" binding:"required,min=0"`
	AccessRange     *int   `form:"access_range" binding:"required,min=0"`
	ProductCategory uint   `form:"product_category" binding:"required"`
}

type CommentUploadRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListByAddress GET /product/:address_id
func (ctrl *ProductController) ListByAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "address_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	products, err := ctrl.productService.ListByAddress(addressID)
	if err != nil {
		if errors.Is(err, service.ErrNoProduct) {
			apperrors.BadRequest(c, apperrors.NoProduct)
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to list products", err, map[string]interface{}{
			"address_id": addressID,
		})
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     apperrors.Success,
		"productList": products,
	})
}

// Detail counts a view and returns the listing
// GET /product/detail/:product_id
func (ctrl *ProductController) Detail(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	detail, err := ctrl.productService.GetDetail(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.BadRequest(c, apperrors.NoProduct)
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to load product detail", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        apperrors.Success,
		"itemDetailData": detail,
	})
}

// SellerItems GET /product/selleritems/:uploader_id
func (ctrl *ProductController) SellerItems(c *gin.Context) {
	uploaderID, ok := parseIDParam(c, "uploader_id")
	if !ok {
		apperrors.BadRequest(c, apperrors.InvalidKeys)
		return
	}

	items, err := ctrl.productService.ListBySeller(uploaderID)
	if err != nil {
		if errors.Is(err, service.ErrNoSellingProduct) {
			apperrors.BadRequest(c, apperrors.NoSellingProduct)
			return
		}
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         apperrors.Success,
		"sellerItemsData": items,
	})
}

// RelatedItems GET /product/relateditems/:address_id
func (ctrl *ProductController) RelatedItems(c *gin.Context) {
	addressID, ok := parseIDParam(c, "address_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	items, err := ctrl.productService.RelatedItems(addressID)
	if err != nil {
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         apperrors.Success,
		"sellerItemsData": items,
	})
}

// ProductUpload POST /product/productupload/:address_id (multipart)
func (ctrl *ProductController) ProductUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	addressID, ok := parseIDParam(c, "address_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidForm)
		return
	}

	var form ProductUploadForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid product upload form", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.NotFound(c, apperrors.InvalidForm)
		return
	}

	var headers []*multipart.FileHeader
	if mf, err := c.MultipartForm(); err == nil {
		headers = mf.File[imageFormField]
	}

	images := make([]service.ImageFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			log.Error("Failed to open uploaded image", err, map[string]interface{}{
				"filename": header.Filename,
			})
			apperrors.BadRequest(c, apperrors.UploadFailed)
			return
		}
		defer file.Close()

		images = append(images, service.ImageFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
	}

	product, err := ctrl.productService.UploadListing(c.Request.Context(), service.UploadListingInput{
		UploaderID:        userID,
		AddressID:         addressID,
		Name:              form.Name,
		Description:       form.Description,
		Price:             *form.Price,
		AccessRange:       *form.AccessRange,
		ProductCategoryID: form.ProductCategory,
		Images:            images,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidForm), errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.InvalidForm)
		case errors.Is(err, storage.ErrUnsupportedContentType):
			apperrors.BadRequest(c, apperrors.UploadInvalidFileType)
		case errors.Is(err, storage.ErrFileTooLarge):
			apperrors.BadRequest(c, apperrors.UploadFileTooLarge)
		default:
			log.Error("Failed to upload product", err, map[string]interface{}{
				"address_id": addressID,
			})
			apperrors.ParseAndRespond(c, err, "product")
		}
		return
	}

	log.Info("Product uploaded", map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
	})
	c.JSON(http.StatusOK, apperrors.MessageResponse{Message: apperrors.Success})
}

// Comments GET /product/comment/:product_id
func (ctrl *ProductController) Comments(c *gin.Context) {
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	comments, err := ctrl.productService.ListComments(productID)
	if err != nil {
		if errors.Is(err, service.ErrNoComment) {
			// 기존 클라이언트는 400에서도 commentlist를 읽는다
			c.JSON(http.StatusBadRequest, gin.H{
				"message":     apperrors.Success,
				"commentlist": []interface{}{},
			})
			return
		}
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     apperrors.Success,
		"commentlist": comments,
	})
}

// CommentUpload POST /product/commentupload/:product_id
func (ctrl *ProductController) CommentUpload(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	var req CommentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	if err := ctrl.productService.AddComment(userID, productID, req.Content); err != nil {
		ctrl.respondProductWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, apperrors.MessageResponse{Message: apperrors.Success})
}

// Wishlist POST /product/wishlist/:product_id
func (ctrl *ProductController) Wishlist(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	if err := ctrl.productService.AddWishlist(userID, productID); err != nil {
		ctrl.respondProductWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, apperrors.MessageResponse{Message: apperrors.Success})
}

func (ctrl *ProductController) respondProductWriteError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProductNotFound) {
		apperrors.NotFound(c, apperrors.ProductDoesNotExist)
		return
	}
	middleware.GetLoggerFromContext(c).Error("Failed to write product relation", err)
	apperrors.ParseAndRespond(c, err, "product")
}
