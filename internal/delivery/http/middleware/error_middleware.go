package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"beauty-solutions-backend/internal/delivery/http/response"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/apperror"
	"beauty-solutions-backend/pkg/logger"
	"beauty-solutions-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error.
// Only AppError messages reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil && appErr.Code >= http.StatusInternalServerError {
				logger.Log.ErrorContext(c.Request.Context(), "Request failed",
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.ErrorContext(c.Request.Context(), "Internal Server Error",
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, domain.InternalErrorMessage)
	}
}

// Recovery turns panics into the generic internal error body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.ErrorContext(c.Request.Context(), "Recovered from panic",
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		meta := domain.RequestMetaFromContext(c.Request.Context())
		security.DefaultLogger().LogServerError(c.Request.Context(), meta.RequestID, c.Request.URL.Path, fmt.Sprint(recovered))
		response.Error(c, http.StatusInternalServerError, domain.InternalErrorMessage)
		c.Abort()
	})
}
