package controller

import (
	"net/http"
	"testing"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_SMSCheck(t *testing.T) {
	env := setupControllerTest(t)

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"valid phone", map[string]string{"phone_number": "01012345678"}, http.StatusCreated, "SUCCESS"},
		{"missing phone", map[string]string{}, http.StatusBadRequest, "INVALID_KEY"},
		{"wrong prefix", map[string]string{"phone_number": "01112345678"}, http.StatusBadRequest, "INVALID_PHONENUMBER"},
		{"wrong length", map[string]string{"phone_number": "0101234567"}, http.StatusBadRequest, "INVALID_PHONENUMBER_LENGTH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/user/smscheck", tt.body, "")
			assertStatus(t, w, tt.status)
			assert.Equal(t, tt.message, messageOf(t, w))
		})
	}

	assert.Len(t, env.sender.code("01012345678"), 6)
}

func TestAuthController_CheckNum_SignUpThenSignIn(t *testing.T) {
	env := setupControllerTest(t)
	address := env.createAddress(t, 1817, "1129010100", "성북구", "삼선동1가")
	phone := "01012345678"

	// 신규 번호: SIGNUP, 빈 토큰
	w := env.request(t, http.MethodPost, "/user/smscheck", map[string]string{"phone_number": phone}, "")
	assertStatus(t, w, http.StatusCreated)

	w = env.request(t, http.MethodPost, "/user/checknum", map[string]interface{}{
		"phone_number": phone,
		"auth_number":  env.sender.code(phone),
	}, "")
	assertStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.Equal(t, "SIGNUP", body["message"])
	assert.Equal(t, "", body["token"])

	w = env.request(t, http.MethodPost, "/user/signup", map[string]interface{}{
		"phone_number": phone,
		"nickname":     "키위",
		"email":        "kiwi@example.com",
		"address_code": 1129010100,
	}, "")
	assertStatus(t, w, http.StatusCreated)
	signupToken, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, signupToken)

	var user model.User
	require.NoError(t, env.db.Where("phone_number = ?", phone).First(&user).Error)
	var saved model.FullAddress
	require.NoError(t, env.db.Where("user_id = ?", user.ID).First(&saved).Error)
	assert.Equal(t, address.ID, saved.FullAddressID)

	// 가입 후 같은 번호: SIGNIN, 사용자 ID가 담긴 토큰
	w = env.request(t, http.MethodPost, "/user/smscheck", map[string]string{"phone_number": phone}, "")
	assertStatus(t, w, http.StatusCreated)

	code := env.sender.code(phone)
	w = env.request(t, http.MethodPost, "/user/checknum", map[string]interface{}{
		"phone_number": phone,
		"auth_number":  code,
	}, "")
	assertStatus(t, w, http.StatusOK)
	body = decodeBody(t, w)
	assert.Equal(t, "SIGNIN", body["message"])

	claims, err := util.ValidateToken(body["token"].(string), testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// 사용한 코드는 다시 쓸 수 없다
	w = env.request(t, http.MethodPost, "/user/checknum", map[string]interface{}{
		"phone_number": phone,
		"auth_number":  code,
	}, "")
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "DENY", messageOf(t, w))
}

func TestAuthController_CheckNum_Rejections(t *testing.T) {
	env := setupControllerTest(t)
	phone := "01099998888"

	w := env.request(t, http.MethodPost, "/user/smscheck", map[string]string{"phone_number": phone}, "")
	assertStatus(t, w, http.StatusCreated)

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"wrong code", map[string]interface{}{"phone_number": phone, "auth_number": 1}, http.StatusBadRequest, "DENY"},
		{"unknown phone", map[string]interface{}{"phone_number": "01000000000", "auth_number": 123456}, http.StatusBadRequest, "DENY"},
		{"missing auth number", map[string]interface{}{"phone_number": phone}, http.StatusBadRequest, "KEY_ERROR"},
		{"missing phone", map[string]interface{}{"auth_number": 123456}, http.StatusBadRequest, "KEY_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/user/checknum", tt.body, "")
			assertStatus(t, w, tt.status)
			assert.Equal(t, tt.message, messageOf(t, w))
			assert.NotContains(t, decodeBody(t, w), "token")
		})
	}
}

func TestAuthController_CheckNickname(t *testing.T) {
	env := setupControllerTest(t)
	env.createUser(t, "01011112222", "당근", nil)

	w := env.request(t, http.MethodPost, "/user/checknickname", map[string]string{"nickname": "키위"}, "")
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "SUCCESS", messageOf(t, w))

	w = env.request(t, http.MethodPost, "/user/checknickname", map[string]string{"nickname": "당근"}, "")
	assertStatus(t, w, http.StatusConflict)
	assert.Equal(t, "DUPLICATED_NICKNAME", messageOf(t, w))

	w = env.request(t, http.MethodPost, "/user/checknickname", map[string]string{}, "")
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "KEY_ERROR", messageOf(t, w))
}

func TestAuthController_SignUp_Failures(t *testing.T) {
	env := setupControllerTest(t)
	env.createAddress(t, 1817, "1129010100", "성북구", "삼선동1가")
	env.createUser(t, "01011112222", "당근", nil)

	tests := []struct {
		name    string
		body    map[string]interface{}
		status  int
		message string
	}{
		{
			name:    "duplicated phone",
			body:    map[string]interface{}{"phone_number": "01011112222", "nickname": "새이름", "address_code": "1129010100"},
			status:  http.StatusConflict,
			message: "DUPLICATED_PHONENUMBER",
		},
		{
			name:    "duplicated nickname",
			body:    map[string]interface{}{"phone_number": "01033334444", "nickname": "당근", "address_code": "1129010100"},
			status:  http.StatusConflict,
			message: "DUPLICATED_NICKNAME",
		},
		{
			name:    "invalid prefix",
			body:    map[string]interface{}{"phone_number": "02033334444", "nickname": "새이름", "address_code": "1129010100"},
			status:  http.StatusBadRequest,
			message: "INVALID_PHONENUMBER",
		},
		{
			name:    "invalid length",
			body:    map[string]interface{}{"phone_number": "010333344445", "nickname": "새이름", "address_code": "1129010100"},
			status:  http.StatusBadRequest,
			message: "INVALID_PHONENUMBER_LENGTH",
		},
		{
			name:    "missing nickname",
			body:    map[string]interface{}{"phone_number": "01033334444", "address_code": "1129010100"},
			status:  http.StatusBadRequest,
			message: "KEY_ERROR",
		},
		{
			name:    "unknown address",
			body:    map[string]interface{}{"phone_number": "01033334444", "nickname": "새이름", "address_code": "9999999999"},
			status:  http.StatusNotFound,
			message: "ADDRESS_DOES_NOT_EXIST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodPost, "/user/signup", tt.body, "")
			assertStatus(t, w, tt.status)
			assert.Equal(t, tt.message, messageOf(t, w))
		})
	}

	// 실패한 가입은 사용자를 남기지 않는다
	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
