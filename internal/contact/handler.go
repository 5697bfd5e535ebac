// Package contact accepts contact form submissions, stores them and
// forwards them by email.
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgSuccess   = "Thank you for your message! I'll get back to you soon."
	msgSendError = "Sorry, there was an error sending your message. Please try again later."
	maxFieldLen  = 5000
)

// MessageStore persists submissions before they are mailed.
type MessageStore interface {
	SaveMessage(ctx context.Context, name, email, body string) (int64, error)
	MarkDelivered(ctx context.Context, id int64) error
}

// Handler accepts contact form posts.
type Handler struct {
	logger *zap.Logger
	store  MessageStore
	mailer Mailer
}

// NewHandler stores submissions in store and sends them with mailer.
func NewHandler(logger *zap.Logger, store MessageStore, mailer Mailer) *Handler {
	return &Handler{logger: logger, store: store, mailer: mailer}
}

// Register mounts POST /contact on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/contact", h.HandleSubmit)
}

// HandleSubmit validates the form, stores the message, then mails it.
func (h *Handler) HandleSubmit(c *gin.Context) {
	s := Submission{
		Name:    strings.TrimSpace(c.PostForm("fullName")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if msg := validate(s); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ctx := c.Request.Context()
	id, err := h.store.SaveMessage(ctx, s.Name, s.Email, s.Message)
	if err != nil {
		h.logger.Error("storing contact message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSendError})
		return
	}

	// The stored message is kept even when delivery fails.
	if err := h.mailer.Send(s); err != nil {
		h.logger.Error("delivering contact message", zap.Int64("message_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": msgSendError})
		return
	}
	if err := h.store.MarkDelivered(ctx, id); err != nil {
		h.logger.Warn("marking message delivered", zap.Int64("message_id", id), zap.Error(err))
	}

	h.logger.Info("contact message delivered", zap.Int64("message_id", id))
	c.JSON(http.StatusOK, gin.H{"success": msgSuccess})
}

func validate(s Submission) string {
	switch {
	case s.Name == "" || s.Email == "" || s.Message == "":
		return "Name, email and message are required"
	case !strings.Contains(s.Email, "@") || strings.ContainsAny(s.Email, "\r\n"):
		return "Please enter a valid email address"
	case strings.ContainsAny(s.Name, "\r\n"):
		return "Name must be a single line"
	case len(s.Name) > maxFieldLen || len(s.Email) > maxFieldLen || len(s.Message) > maxFieldLen:
		return "Message is too long"
	}
	return ""
}
