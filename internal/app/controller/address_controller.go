package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	apperrors "github.com/ikkim/kiwimarket-backend/internal/errors"
	"github.com/ikkim/kiwimarket-backend/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{
		addressService: addressService,
	}
}

type AddressCodeRequest struct {
	AddressCode json.Number `json:"address_code" binding:"required"`
}

// SelectMyAddress lists the session user's neighborhoods
// GET|POST /user/selectmyaddress
func (ctrl *AddressController) SelectMyAddress(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	addresses, err := ctrl.addressService.SelectAddresses(userID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch saved addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, err, "full_address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      apperrors.Success,
		"address_list": addresses,
	})
}

// AddMyAddress POST /user/addmyaddress
func (ctrl *AddressController) AddMyAddress(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req AddressCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	if err := ctrl.addressService.AddAddress(userID, req.AddressCode.String()); err != nil {
		ctrl.respondAddressError(c, err)
		return
	}

	c.JSON(http.StatusCreated, apperrors.MessageResponse{Message: apperrors.Success})
}

// DeleteMyAddress POST /user/deletemyaddress
func (ctrl *AddressController) DeleteMyAddress(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req AddressCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	if err := ctrl.addressService.RemoveAddress(userID, req.AddressCode.String()); err != nil {
		ctrl.respondAddressError(c, err)
		return
	}

	// 204는 본문을 보내지 않는다
	c.Status(http.StatusNoContent)
}

// GetNearAddress lists neighborhoods in the same 시군구
// GET /user/getnearaddress/:code
func (ctrl *AddressController) GetNearAddress(c *gin.Context) {
	code := c.Param("code")
	if !isDigits(code) {
		apperrors.NotFound(c, apperrors.InvalidKeys)
		return
	}

	near, err := ctrl.addressService.NearAddresses(c.Request.Context(), code)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to fetch near addresses", err, map[string]interface{}{
			"code": code,
		})
		apperrors.ParseAndRespond(c, err, "address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           apperrors.Success,
		"near_address_list": near,
	})
}

func (ctrl *AddressController) respondAddressError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAddressNotFound) {
		apperrors.NotFound(c, apperrors.AddressDoesNotExist)
		return
	}
	middleware.GetLoggerFromContext(c).Error("Failed to update saved addresses", err)
	apperrors.ParseAndRespond(c, err, "full_address")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
