package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fxgate/internal/domain/dto"
	"github.com/guttosm/fxgate/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors collected on the
// context (via c.Error) into a standardized JSON response.
//
// Handlers that respond themselves are left alone; only requests that end
// with recorded errors and no body written get the 500 envelope.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	logger.L().Error().Err(last.Err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError writes a standardized error response with the given status
// and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
