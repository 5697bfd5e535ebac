package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var untrackedPrefixes = []string{"/api/", "/admin/", "/static/", "/images/", "/favicon", "/health"}

// VisitRecorder persists a page view.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error
}

// Tracker records page views with salted, truncated IP hashes.
type Tracker struct {
	logger   *zap.Logger
	recorder VisitRecorder
	salt     string
	wg       sync.WaitGroup
}

// NewTracker generates the per-process hashing salt.
func NewTracker(logger *zap.Logger, recorder VisitRecorder) (*Tracker, error) {
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}
	return &Tracker{logger: logger, recorder: recorder, salt: salt}, nil
}

// HashIP is stable for the lifetime of the process only, since the salt is
// regenerated on start.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Middleware records trackable requests in the background. Requests with
// DNT: 1 and API, admin and asset paths are skipped.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !shouldTrack(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := t.HashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.recorder.RecordVisit(ctx, hashedIP, userAgent, path); err != nil {
				t.logger.Warn("recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// Wait blocks until in-flight visit records have been written.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func shouldTrack(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
