// Package api exposes the text analyzer over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/analyzer"
)

const (
	msgTextRequired   = "Text parameter is required"
	msgAnalyzeFailure = "Failed to analyze text"

	// JSON escaping can grow a string to six bytes per input byte (\uXXXX),
	// plus room for the surrounding object.
	jsonEscapeFactor = 6
	jsonEnvelopeSize = 1024
)

// AnalyzeFunc computes the result for one text.
type AnalyzeFunc func(text string) analyzer.Result

// AnalyzeHandler serves the analyzer over query-string and JSON requests.
type AnalyzeHandler struct {
	logger   *zap.Logger
	analyze  AnalyzeFunc
	maxBytes int
}

// NewAnalyzeHandler rejects texts longer than maxBytes; a nil analyze uses
// analyzer.Analyze.
func NewAnalyzeHandler(logger *zap.Logger, analyze AnalyzeFunc, maxBytes int) *AnalyzeHandler {
	if analyze == nil {
		analyze = analyzer.Analyze
	}
	return &AnalyzeHandler{
		logger:   logger,
		analyze:  analyze,
		maxBytes: maxBytes,
	}
}

// Register mounts GET and POST /analyze on r.
func (h *AnalyzeHandler) Register(r gin.IRouter) {
	r.GET("/analyze", h.HandleQuery)
	r.POST("/analyze", h.HandleJSON)
}

// HandleQuery reads text from a single ?text= query parameter.
func (h *AnalyzeHandler) HandleQuery(c *gin.Context) {
	values, ok := c.GetQueryArray("text")
	if !ok || len(values) != 1 {
		handleError(c, h.logger, invalidInput(msgTextRequired), msgAnalyzeFailure)
		return
	}
	h.respond(c, values[0])
}

// HandleJSON reads text from a {"text": "..."} body. Any non-string value
// counts as missing. The body is capped before decoding so an oversized
// payload is rejected without being buffered.
func (h *AnalyzeHandler) HandleJSON(c *gin.Context) {
	if limit := h.bodyLimit(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(c, h.logger, invalidInput(fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit)), msgAnalyzeFailure)
			return
		}
		handleError(c, h.logger, invalidInput("Invalid JSON payload"), msgAnalyzeFailure)
		return
	}
	text, ok := body["text"].(string)
	if !ok {
		handleError(c, h.logger, invalidInput(msgTextRequired), msgAnalyzeFailure)
		return
	}
	h.respond(c, text)
}

// respond validates text, analyzes it and writes the result or error.
func (h *AnalyzeHandler) respond(c *gin.Context, text string) {
	if err := h.validate(text); err != nil {
		handleError(c, h.logger, err, msgAnalyzeFailure)
		return
	}

	result, err := h.safeAnalyze(text)
	if err != nil {
		handleError(c, h.logger, err, msgAnalyzeFailure)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalyzeHandler) bodyLimit() int64 {
	if h.maxBytes <= 0 {
		return 0
	}
	return int64(h.maxBytes)*jsonEscapeFactor + jsonEnvelopeSize
}

func (h *AnalyzeHandler) validate(text string) error {
	// Empty text is rejected rather than analyzed to a zero result.
	if text == "" {
		return invalidInput(msgTextRequired)
	}
	if h.maxBytes > 0 && len(text) > h.maxBytes {
		return invalidInput(fmt.Sprintf("Text parameter exceeds %d bytes", h.maxBytes))
	}
	return nil
}

func (h *AnalyzeHandler) safeAnalyze(text string) (result analyzer.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyzer panic: %v", r)
		}
	}()
	return h.analyze(text), nil
}
