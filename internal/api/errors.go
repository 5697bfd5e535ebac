package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/logging"
)

// HTTPError carries a caller-safe message and the status to send it with.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func invalidInput(message string) error {
	return &HTTPError{Code: http.StatusBadRequest, Message: message}
}

// handleError writes err as a JSON body. Errors that are not *HTTPError are
// logged in full and reported to the caller with the generic fallback.
func handleError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		logger.Debug("rejected request",
			zap.String("request_id", logging.GetRequestID(c)),
			zap.String("reason", httpErr.Message),
		)
		c.JSON(httpErr.Code, gin.H{"error": httpErr.Message})
		return
	}

	_ = c.Error(err)
	logger.Error("request error",
		zap.String("request_id", logging.GetRequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
