package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storeboard/internal/core/apperror"
	"storeboard/internal/infrastructure/http/v1/dto"
	"storeboard/pkg/logger"
)

// ErrorHandler turns errors registered on the gin context into JSON
// responses. It is the only place error bodies are written, so every
// endpoint fails in the same shape.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// A handler that already wrote a response wins.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}
			c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			})
			return
		}

		// Anything else stays internal: log it, return a generic body.
		logger.Error(c.Request.Context(), "unhandled error", "error", err)

		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    apperror.CodeInternal,
			Message: "internal server error",
			Details: map[string]any{"request_id": c.GetString("request_id")},
		})
	}
}
