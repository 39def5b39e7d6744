package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	apperrors "github.com/ikkim/kiwimarket-backend/internal/errors"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
)

// 판매내역 기본 조회 상태 (판매중)
const defaultSalesOrderStatusID = 1

type UserController struct {
	userService        service.UserService
	productService     service.ProductService
	strictStatusChange bool
}

func NewUserController(userService service.UserService, productService service.ProductService, strictStatusChange bool) *UserController {
	return &UserController{
		userService:        userService,
		productService:     productService,
		strictStatusChange: strictStatusChange,
	}
}

type ChangeStatusRequest struct {
	OrderStatusID uint `json:"order_status_id" binding:"required"`
}

// Profile GET /user/profile
func (ctrl *UserController) Profile(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := ctrl.userService.Profile(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserDoesNotExist)
		case errors.Is(err, service.ErrFullAddressNotFound):
			apperrors.NotFound(c, apperrors.FullAddressDoesNotExist)
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to load profile", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, err, "user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": apperrors.Success,
		"user":    profile,
	})
}

// SalesHistory GET /user/saleshistory?order_status_id=1
func (ctrl *UserController) SalesHistory(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	statusID := uint64(defaultSalesOrderStatusID)
	if raw := c.Query("order_status_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.KeyError)
			return
		}
		statusID = parsed
	}

	items, err := ctrl.userService.SalesHistory(userID, uint(statusID))
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusNotFound) {
			apperrors.NotFound(c, apperrors.OrderStatusDoesNotExist)
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to load sales history", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    apperrors.Success,
		"sales_list": items,
	})
}

// ChangeStatus POST /user/changestatus/:product_id[?strict=true]
func (ctrl *UserController) ChangeStatus(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	strict := ctrl.strictStatusChange
	if raw := c.Query("strict"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			strict = parsed
		}
	}

	if err := ctrl.productService.ChangeStatus(productID, req.OrderStatusID, strict); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderStatusNotFound):
			apperrors.NotFound(c, apperrors.OrderStatusDoesNotExist)
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductDoesNotExist)
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to change product status", err, map[string]interface{}{
				"product_id": productID,
			})
			apperrors.ParseAndRespond(c, err, "product")
		}
		return
	}

	c.JSON(http.StatusOK, apperrors.MessageResponse{Message: apperrors.Success})
}
