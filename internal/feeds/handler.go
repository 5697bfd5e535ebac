package feeds

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the activity feeds as JSON.
type Handler struct {
	logger *zap.Logger
	repos  RepoSource
	shots  ShotSource
}

// NewHandler serves repos and shots from the given sources.
func NewHandler(logger *zap.Logger, repos RepoSource, shots ShotSource) *Handler {
	return &Handler{logger: logger, repos: repos, shots: shots}
}

// Register mounts GET /github and GET /dribbble on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/github", h.HandleGitHub)
	r.GET("/dribbble", h.HandleDribbble)
}

// HandleGitHub responds with {"repos": [...]}.
func (h *Handler) HandleGitHub(c *gin.Context) {
	repos, err := h.repos.RecentRepos(c.Request.Context())
	if err != nil {
		h.logger.Error("fetching GitHub data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch GitHub data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"repos": repos})
}

// HandleDribbble responds with {"shots": [...]}.
func (h *Handler) HandleDribbble(c *gin.Context) {
	shots, err := h.shots.RecentShots(c.Request.Context())
	if err != nil {
		h.logger.Error("fetching Dribbble data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Dribbble data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shots": shots})
}
