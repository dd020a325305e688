package middleware

import (
	"errors"
	"net/http"

	"labournet-backend/internal/delivery/http/response"
	"labournet-backend/internal/domain"
	"labournet-backend/pkg/apperror"
	"labournet-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		entry := logger.Log.WithFields(logrus.Fields{
			"request_id": c.GetString(string(domain.KeyRequestID)),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				// Never expose the wrapped cause to clients
				entry.WithError(appErr.Unwrap()).Error("request failed")
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		entry.WithError(err).Error("unhandled error")
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
