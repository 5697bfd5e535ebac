// Package admin serves the cookie-protected statistics API and owns the
// privacy-conscious visitor tracking that feeds it.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/config"
	"github.com/Zachkp/portfolio-api/internal/store"
)

const (
	tokenCookie    = "admin_token"
	cookieMaxAge   = 3600 * 24
	recentVisitors = 50
	recentMessages = 20
)

// StatsStore is the storage the admin API reads from.
type StatsStore interface {
	Stats(ctx context.Context) (*store.Stats, error)
	RecentVisitors(ctx context.Context, limit int) ([]store.Visit, error)
	RecentMessages(ctx context.Context, limit int) ([]store.Message, error)
	CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error)
}

// Dashboard is the body of GET /admin/api/stats.
type Dashboard struct {
	Stats          *store.Stats    `json:"stats"`
	RecentVisitors []store.Visit   `json:"recent_visitors"`
	RecentMessages []store.Message `json:"recent_messages"`
}

// Handler serves admin login and the protected statistics API.
type Handler struct {
	logger    *zap.Logger
	store     StatsStore
	tracker   *Tracker
	creds     config.AdminConfig
	token     string
	retention time.Duration
	secure    bool
	now       func() time.Time
}

// NewHandler generates a fresh session token; sessions do not survive a restart.
func NewHandler(logger *zap.Logger, s StatsStore, tracker *Tracker, cfg *config.Config) (*Handler, error) {
	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}
	if cfg.UsesDefaultAdminPassword() {
		logger.Warn("using default admin password; set ADMIN_PASSWORD")
	}
	return &Handler{
		logger:    logger,
		store:     s,
		tracker:   tracker,
		creds:     cfg.Admin,
		token:     token,
		retention: time.Duration(cfg.Store.RetentionDays) * 24 * time.Hour,
		secure:    cfg.IsProduction(),
		now:       time.Now,
	}, nil
}

// Register mounts login, logout and the protected /admin/api group.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/admin/login", h.HandleLogin)
	r.GET("/admin/logout", h.HandleLogout)

	group := r.Group("/admin/api")
	group.Use(h.AuthMiddleware())
	group.GET("/stats", h.HandleStats)
	group.POST("/cleanup", h.HandleCleanup)
}

// AuthMiddleware aborts with 401 unless the request carries the session cookie.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(tokenCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// HandleLogin checks the posted username and password and sets the session cookie.
func (h *Handler) HandleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.creds.Password)) == 1
	if !userOK || !passOK {
		h.logger.Warn("failed admin login", zap.String("client", h.tracker.HashIP(c.ClientIP())))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(tokenCookie, h.token, cookieMaxAge, "/admin", "", h.secure, true)
	h.logger.Info("admin login", zap.String("client", h.tracker.HashIP(c.ClientIP())))
	c.JSON(http.StatusOK, gin.H{"message": "Logged in"})
}

// HandleLogout expires the session cookie.
func (h *Handler) HandleLogout(c *gin.Context) {
	c.SetCookie(tokenCookie, "", -1, "/admin", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// HandleStats responds with the Dashboard.
func (h *Handler) HandleStats(c *gin.Context) {
	dashboard, err := h.loadDashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("loading admin stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// HandleCleanup runs Cleanup and reports the number of removed rows.
func (h *Handler) HandleCleanup(c *gin.Context) {
	removed, err := h.Cleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clean up visitor data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Cleanup deletes visitor rows older than the retention window.
func (h *Handler) Cleanup(ctx context.Context) (int64, error) {
	removed, err := h.store.CleanupVisitors(ctx, h.now().Add(-h.retention))
	if err != nil {
		h.logger.Error("cleaning up visitor data", zap.Error(err))
		return 0, err
	}
	if removed > 0 {
		h.logger.Info("privacy cleanup removed old visitor records", zap.Int64("removed", removed))
	}
	return removed, nil
}

func (h *Handler) loadDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := h.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	visitors, err := h.store.RecentVisitors(ctx, recentVisitors)
	if err != nil {
		return nil, err
	}
	messages, err := h.store.RecentMessages(ctx, recentMessages)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, RecentVisitors: visitors, RecentMessages: messages}, nil
}
