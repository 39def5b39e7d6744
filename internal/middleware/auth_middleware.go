package middleware

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/ikkim/kiwimarket-backend/internal/app/service"
	"github.com/ikkim/kiwimarket-backend/internal/errors"
	"github.com/ikkim/kiwimarket-backend/pkg/util"
)

// Context keys for user information
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// UserLookup resolves the user a session token belongs to.
type UserLookup interface {
	GetUserByID(id uint) (*model.User, error)
}

type AuthMiddleware struct {
	jwtSecret string
	users     UserLookup
}

func NewAuthMiddleware(jwtSecret string, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		users:     users,
	}
}

// Authenticate validates the session token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, errors.AuthRequired)
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			// 토큰 만료 에러인 경우 명확히 표시
			if stdErrors.Is(err, util.ErrExpiredToken) {
				errors.Unauthorized(c, errors.ExpiredToken)
			} else {
				errors.Unauthorized(c, errors.InvalidToken)
			}
			c.Abort()
			return
		}

		user, err := m.users.GetUserByID(claims.UserID)
		if err != nil {
			if stdErrors.Is(err, service.ErrUserNotFound) {
				log.Warn("Token refers to unknown user", map[string]interface{}{
					"user_id": claims.UserID,
				})
				errors.Unauthorized(c, errors.InvalidUser)
			} else {
				log.Error("Failed to load user for token", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
				errors.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": user.ID,
		})

		c.Next()
	}
}

// extractToken accepts both "Bearer <token>" and a bare token.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	if strings.Contains(header, " ") {
		return ""
	}
	return header
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUser extracts the authenticated user from context
func GetUser(c *gin.Context) (*model.User, bool) {
	user, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	u, ok := user.(*model.User)
	return u, ok
}

// RequireUserID writes 401 and returns false when no user is authenticated.
func RequireUserID(c *gin.Context) (uint, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthRequired)
		return 0, false
	}
	return userID, true
}
