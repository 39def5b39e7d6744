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

type AuthController struct {
	verificationService service.VerificationService
	userService         service.UserService
}

func NewAuthController(verificationService service.VerificationService, userService service.UserService) *AuthController {
	return &AuthController{
		verificationService: verificationService,
		userService:         userService,
	}
}

type SMSCheckRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,krmobile"`
}

// AuthNumber accepts both 123456 and "123456".
type CheckNumRequest struct {
	PhoneNumber string      `json:"phone_number" binding:"required"`
	AuthNumber  json.Number `json:"auth_number" binding:"required"`
}

type CheckNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

type SignUpRequest struct {
	PhoneNumber string      `json:"phone_number" binding:"required,krmobile"`
	Nickname    string      `json:"nickname" binding:"required"`
	Email       string      `json:"email"`
	AddressCode json.Number `json:"address_code" binding:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SMSCheck issues a verification code
// POST /user/smscheck
func (ctrl *AuthController) SMSCheck(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SMSCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if code := phoneNumberCode(err); code != "" {
			apperrors.BadRequest(c, code)
			return
		}
		log.Warn("Invalid sms check request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.InvalidKey)
		return
	}

	if err := ctrl.verificationService.RequestCode(c.Request.Context(), req.PhoneNumber); err != nil {
		if code := phoneValidationCode(err); code != "" {
			apperrors.BadRequest(c, code)
			return
		}
		log.Error("Failed to issue verification code", err)
		apperrors.ParseAndRespond(c, err, "auth_sms")
		return
	}

	c.JSON(http.StatusCreated, apperrors.MessageResponse{Message: apperrors.Success})
}

// CheckNum verifies the code and tells the client whether to sign in or sign up
// POST /user/checknum
func (ctrl *AuthController) CheckNum(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckNumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid check number request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	result, err := ctrl.verificationService.VerifyCode(req.PhoneNumber, req.AuthNumber.String())
	if err != nil {
		log.Error("Failed to verify code", err)
		apperrors.ParseAndRespond(c, err, "auth_sms")
		return
	}

	switch result.Outcome {
	case service.OutcomeSignIn:
		c.JSON(http.StatusOK, tokenResponse{Message: apperrors.SignIn, Token: result.Token})
	case service.OutcomeSignUp:
		c.JSON(http.StatusOK, tokenResponse{Message: apperrors.SignUp, Token: ""})
	default:
		apperrors.BadRequest(c, apperrors.Deny)
	}
}

// CheckNickname POST /user/checknickname
func (ctrl *AuthController) CheckNickname(c *gin.Context) {
	var req CheckNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	if err := ctrl.userService.CheckNickname(req.Nickname); err != nil {
		if errors.Is(err, service.ErrDuplicatedNickname) {
			apperrors.Conflict(c, apperrors.DuplicatedNickname)
			return
		}
		apperrors.ParseAndRespond(c, err, "user")
		return
	}

	c.JSON(http.StatusOK, apperrors.MessageResponse{Message: apperrors.Success})
}

// SignUp registers the user with the first neighborhood
// POST /user/signup
func (ctrl *AuthController) SignUp(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if code := phoneNumberCode(err); code != "" {
			apperrors.BadRequest(c, code)
			return
		}
		log.Warn("Invalid signup request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.KeyError)
		return
	}

	user, token, err := ctrl.userService.SignUp(service.SignUpInput{
		PhoneNumber: req.PhoneNumber,
		Nickname:    req.Nickname,
		Email:       req.Email,
		AddressCode: req.AddressCode.String(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicatedPhoneNumber):
			apperrors.Conflict(c, apperrors.DuplicatedPhoneNumber)
		case errors.Is(err, service.ErrDuplicatedNickname):
			apperrors.Conflict(c, apperrors.DuplicatedNickname)
		case errors.Is(err, service.ErrAddressNotFound):
			apperrors.NotFound(c, apperrors.AddressDoesNotExist)
		case phoneValidationCode(err) != "":
			apperrors.BadRequest(c, phoneValidationCode(err))
		default:
			log.Error("Registration failed", err)
			apperrors.ParseAndRespond(c, err, "user")
		}
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	c.JSON(http.StatusCreated, tokenResponse{Message: apperrors.Success, Token: token})
}
