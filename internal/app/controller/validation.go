package controller

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/ikkim/kiwimarket-backend/internal/errors"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
)

// krmobile 태그: 010으로 시작하는 11자리 휴대폰 번호
const phoneNumberTag = "krmobile"

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(phoneNumberTag, func(fl validator.FieldLevel) bool {
		return util.IsValidPhoneNumber(fl.Field().String())
	})
}

// phoneNumberCode returns the response code for a bind error caused by the
// krmobile rule, or "" for any other bind error.
func phoneNumberCode(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ""
	}
	for _, fe := range verrs {
		if fe.Tag() != phoneNumberTag {
			continue
		}
		value, _ := fe.Value().(string)
		return phoneValidationCode(util.ValidatePhoneNumber(value))
	}
	return ""
}

func phoneValidationCode(err error) string {
	switch {
	case errors.Is(err, util.ErrInvalidPhoneNumberLength):
		return apperrors.InvalidPhoneNumberLength
	case errors.Is(err, util.ErrInvalidPhoneNumber):
		return apperrors.InvalidPhoneNumber
	}
	return ""
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
