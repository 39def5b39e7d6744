package util

import (
	"errors"
	"strings"
)

const (
	PhoneNumberLength = 11
	PhoneNumberPrefix = "010"
)

var (
	ErrInvalidPhoneNumber       = errors.New("phone number must start with 010")
	ErrInvalidPhoneNumberLength = errors.New("phone number must be 11 digits")
)

// ValidatePhoneNumber checks the mobile number shape: 11 digits starting with 010.
func ValidatePhoneNumber(phone string) error {
	if !strings.HasPrefix(phone, PhoneNumberPrefix) {
		return ErrInvalidPhoneNumber
	}
	if len(phone) != PhoneNumberLength {
		return ErrInvalidPhoneNumberLength
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return ErrInvalidPhoneNumber
		}
	}
	return nil
}

// IsValidPhoneNumber reports whether phone passes ValidatePhoneNumber.
func IsValidPhoneNumber(phone string) bool {
	return ValidatePhoneNumber(phone) == nil
}
