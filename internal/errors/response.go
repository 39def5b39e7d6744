package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of every response without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithError writes {"message": code} with the given status.
func RespondWithError(c *gin.Context, statusCode int, code string) {
	c.JSON(statusCode, MessageResponse{Message: code})
}

func Unauthorized(c *gin.Context, code string) {
	if code == "" {
		code = AuthRequired
	}
	RespondWithError(c, http.StatusUnauthorized, code)
}

func BadRequest(c *gin.Context, code string) {
	RespondWithError(c, http.StatusBadRequest, code)
}

func NotFound(c *gin.Context, code string) {
	RespondWithError(c, http.StatusNotFound, code)
}

func Conflict(c *gin.Context, code string) {
	RespondWithError(c, http.StatusConflict, code)
}

func InternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, InternalServerError)
}
