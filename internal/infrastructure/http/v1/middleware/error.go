package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			switch {
			case appErr.HTTPStatus >= http.StatusInternalServerError:
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"message", appErr.Message,
					"cause", appErr.Err,
				)
			case appErr.Err != nil:
				logger.Warn(c.Request.Context(), "request rejected",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			c.JSON(appErr.HTTPStatus, ErrorBody(appErr))
			return
		}

		logger.Error(c.Request.Context(), "unhandled error",
			"error", err,
		)

		internal := apperror.NewInternal(err).
			WithDetail("request_id", appctx.GetRequestID(c.Request.Context()))
		c.JSON(http.StatusInternalServerError, ErrorBody(internal))
	}
}

// ErrorBody is the JSON shape of an error response.
func ErrorBody(appErr *apperror.AppError) gin.H {
	return gin.H{
		"code":        appErr.Code,
		"message":     appErr.Message,
		"userMessage": appErr.UserMessage,
		"details":     appErr.Details,
	}
}
