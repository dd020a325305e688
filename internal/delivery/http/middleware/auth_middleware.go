package middleware

import (
	"errors"
	"net/http"
	"strings"

	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/auth"
	"labournet-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts a bearer token or the auth_token cookie and resolves
// the account it names. The role is read back from the account, not trusted
// from the token alone.
func AuthMiddleware(tokens *auth.TokenIssuer, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		// 1. Try to get token from Header
		if authHeader != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		} else {
			// 2. Try to get token from Cookie
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			logger.Log.WithError(err).WithField("request_id", c.GetString(string(domain.KeyRequestID))).Debug("token validation failed")
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		role, ok := domain.ParseLoginRole(claims.Role)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		// The account must still exist in its collection
		user, err := authUC.GetCurrentUser(c, role, claims.Subject)
		if err != nil {
			if isNotFound(err) {
				response.Error(c, http.StatusUnauthorized, "User not found", nil)
				c.Abort()
				return
			}
			logger.Log.WithError(err).WithField("request_id", c.GetString(string(domain.KeyRequestID))).Error("account lookup failed")
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), string(user.Role))

		c.Next()
	}
}

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}

// RequireRole refuses callers whose role is not listed
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := domain.Role(c.GetString(string(domain.KeyUserRole)))
		for _, r := range roles {
			if r == current {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Access denied", nil)
		c.Abort()
	}
}
