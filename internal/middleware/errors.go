package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/screenpulse/internal/domain/dto"
	"github.com/guttosm/screenpulse/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors collected on the
// context into a standardized JSON error response.
//
// Handlers that respond themselves are untouched; only requests that finish
// with pending c.Error entries and no body get the fallback 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).
		Str("path", c.Request.URL.Path).
		Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError aborts the request with the given status and a standardized
// error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
