// Package server assembles the gin engine and its routes.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/admin"
	"github.com/Zachkp/portfolio-api/internal/api"
	"github.com/Zachkp/portfolio-api/internal/contact"
	"github.com/Zachkp/portfolio-api/internal/content"
	"github.com/Zachkp/portfolio-api/internal/feeds"
	"github.com/Zachkp/portfolio-api/internal/logging"
)

var setupOnce sync.Once

// Setup performs process-wide initialization. Only the first call has any
// effect; main calls it before building the engine.
func Setup(production bool) {
	setupOnce.Do(func() {
		if production {
			gin.SetMode(gin.ReleaseMode)
		}
		gin.DisableConsoleColor()
	})
}

// Deps are the handlers New mounts. Admin and Tracker are optional.
type Deps struct {
	Logger  *zap.Logger
	Analyze *api.AnalyzeHandler
	Feeds   *feeds.Handler
	Contact *contact.Handler
	Admin   *admin.Handler
	Tracker *admin.Tracker
	Site    content.Site
}

// New builds the engine with request IDs, logging, recovery and all routes.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestID(), logging.Middleware(d.Logger), logging.Recovery(d.Logger))
	if d.Tracker != nil {
		r.Use(d.Tracker.Middleware())
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	d.Analyze.Register(apiGroup)
	d.Feeds.Register(apiGroup)
	apiGroup.GET("/content", content.Handler(d.Site))

	d.Contact.Register(r)
	if d.Admin != nil {
		d.Admin.Register(r)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}
