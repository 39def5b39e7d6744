package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo 에러 코드와 HTTP 상태
type ErrorInfo struct {
	Code   string // 응답 message 값 (codes.go 참조)
	Status int
}

// ParseError DB 에러를 응답 코드로 변환
// 드라이버 메시지 원문은 클라이언트에 노출하지 않는다
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Status: http.StatusInternalServerError}
	}

	errLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: getNotFoundCode(context), Status: http.StatusNotFound}
	}

	// postgres 23505 / sqlite UNIQUE constraint failed
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errLower, "duplicate key") ||
		strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// postgres 23503 / sqlite FOREIGN KEY constraint failed
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{Code: ResourceReferenceNotFound, Status: http.StatusBadRequest}
	}

	// postgres 23502 / sqlite NOT NULL constraint failed
	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{Code: RequiredFieldMissing, Status: http.StatusBadRequest}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{Code: InternalExternalAPI, Status: http.StatusBadGateway}
	}

	return ErrorInfo{Code: InternalServerError, Status: http.StatusInternalServerError}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "phone_number"):
		return ErrorInfo{Code: DuplicatedPhoneNumber, Status: http.StatusConflict}
	case strings.Contains(errLower, "nickname"):
		return ErrorInfo{Code: DuplicatedNickname, Status: http.StatusConflict}
	default:
		return ErrorInfo{Code: ResourceAlreadyExists, Status: http.StatusConflict}
	}
}

func getNotFoundCode(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "full_address"):
		return FullAddressDoesNotExist
	case strings.Contains(contextLower, "address"):
		return AddressDoesNotExist
	case strings.Contains(contextLower, "user"):
		return UserDoesNotExist
	case strings.Contains(contextLower, "order_status"):
		return OrderStatusDoesNotExist
	case strings.Contains(contextLower, "product"):
		return ProductDoesNotExist
	case strings.Contains(contextLower, "category"):
		return CategoryDoesNotExist
	}
	return ResourceNotFound
}

// ParseAndRespond 에러를 파싱하여 바로 응답 (controller 헬퍼)
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, info.Status, info.Code)
}
