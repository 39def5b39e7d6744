package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{name: "Valid", phone: "01012345678"},
		{name: "Wrong prefix", phone: "01112345678", wantErr: ErrInvalidPhoneNumber},
		{name: "Too short", phone: "0101234567", wantErr: ErrInvalidPhoneNumberLength},
		{name: "Too long", phone: "010123456789", wantErr: ErrInvalidPhoneNumberLength},
		{name: "Hyphenated", phone: "010-1234-56", wantErr: ErrInvalidPhoneNumber},
		{name: "Empty", phone: "", wantErr: ErrInvalidPhoneNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhoneNumber(tt.phone)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, IsValidPhoneNumber(tt.phone))
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsValidPhoneNumber(tt.phone))
		})
	}
}

func TestGenerateAuthNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateAuthNumber()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
