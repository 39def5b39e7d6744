package service

import (
	"fmt"
	"testing"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_SignUp(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.userService()
	address := env.createAddress(t, 1817, "1129010100", "성북구", "성북동")
	env.createUser(t, "01099998888", "참외")

	tests := []struct {
		name    string
		input   SignUpInput
		wantErr error
	}{
		{
			name:  "Valid registration",
			input: SignUpInput{PhoneNumber: "01012345678", Nickname: "키위", Email: "kiwi@example.com", AddressCode: address.Code},
		},
		{
			name:    "Wrong prefix",
			input:   SignUpInput{PhoneNumber: "02012345678", Nickname: "딸기", AddressCode: address.Code},
			wantErr: util.ErrInvalidPhoneNumber,
		},
		{
			name:    "Wrong length",
			input:   SignUpInput{PhoneNumber: "010123456789", Nickname: "딸기", AddressCode: address.Code},
			wantErr: util.ErrInvalidPhoneNumberLength,
		},
		{
			name:    "Duplicate phone number",
			input:   SignUpInput{PhoneNumber: "01099998888", Nickname: "딸기", AddressCode: address.Code},
			wantErr: ErrDuplicatedPhoneNumber,
		},
		{
			name:    "Duplicate nickname",
			input:   SignUpInput{PhoneNumber: "01055556666", Nickname: "참외", AddressCode: address.Code},
			wantErr: ErrDuplicatedNickname,
		},
		{
			name:    "Unknown address",
			input:   SignUpInput{PhoneNumber: "01055556666", Nickname: "딸기", AddressCode: "0000000000"},
			wantErr: ErrAddressNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := svc.SignUp(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			require.NotNil(t, user.Email)
			assert.Equal(t, "kiwi@example.com", *user.Email)

			claims, err := util.ValidateToken(token, testJWTSecret)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)

			var links []model.FullAddress
			require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&links).Error)
			require.Len(t, links, 1)
			assert.Equal(t, address.ID, links[0].FullAddressID)
		})
	}

	exists, err := env.users.ExistsByPhoneNumber("01055556666")
	require.NoError(t, err)
	assert.False(t, exists, "failed registration must not leave a user behind")
}

func TestUserService_CheckNickname(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.userService()
	env.createUser(t, "01012345678", "키위")

	assert.ErrorIs(t, svc.CheckNickname("키위"), ErrDuplicatedNickname)
	assert.NoError(t, svc.CheckNickname("참외"))
}

func TestUserService_Profile(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.userService()
	address := env.createAddress(t, 1817, "1129010100", "성북구", "성북동")

	user, _, err := svc.SignUp(SignUpInput{PhoneNumber: "01012345678", Nickname: "키위", AddressCode: address.Code})
	require.NoError(t, err)

	profile, err := svc.Profile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("#%d", user.ID), profile.UserID)
	assert.Equal(t, "키위", profile.Nickname)
	assert.Nil(t, profile.ProfilePicture)
	assert.Equal(t, "성북동", profile.AddressName)
	assert.Equal(t, uint(1817), profile.AddressCode)

	_, err = svc.Profile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	homeless := env.createUser(t, "01087654321", "참외")
	_, err = svc.Profile(homeless.ID)
	assert.ErrorIs(t, err, ErrFullAddressNotFound)
}

func TestUserService_SalesHistory(t *testing.T) {
	env := setupTestEnv(t)
	svc := env.userService()
	address := env.createAddress(t, 1817, "1129010100", "성북구", "성북동")
	seller := env.createUser(t, "01012345678", "키위")

	selling := env.createProduct(t, "멋진 티셔츠 팝니다", 10000, seller, address, "a.jpg", "b.jpg")
	sold := env.createProduct(t, "자전거", 50000, seller, address)
	soldID := env.statusID(t, model.OrderStatusSold)
	_, err := env.products.UpdateOrderStatus(sold.ID, soldID)
	require.NoError(t, err)

	items, err := svc.SalesHistory(seller.ID, env.statusID(t, model.OrderStatusSelling))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, selling.ID, items[0].ID)
	assert.Equal(t, "서울특별시 성북구", items[0].AddressName)
	assert.Equal(t, uint(1817), items[0].AddressCode)
	assert.Equal(t, model.OrderStatusSelling, items[0].OrderStatusName)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, items[0].Images)

	soldItems, err := svc.SalesHistory(seller.ID, soldID)
	require.NoError(t, err)
	require.Len(t, soldItems, 1)
	assert.Equal(t, []string{}, soldItems[0].Images)

	_, err = svc.SalesHistory(seller.ID, 9999)
	assert.ErrorIs(t, err, ErrOrderStatusNotFound)
}
