package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio-api/internal/config"
	"github.com/Zachkp/portfolio-api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router  *gin.Engine
	handler *Handler
	tracker *Tracker
	store   *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	logger := zap.NewNop()
	tracker, err := NewTracker(logger, s)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "owner", Password: "hunter22"},
		Store: config.StoreConfig{RetentionDays: 30},
	}
	h, err := NewHandler(logger, s, tracker, cfg)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	r := gin.New()
	r.Use(tracker.Middleware())
	h.Register(r)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	return &fixture{router: r, handler: h, tracker: tracker, store: s}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func TestStatsRequiresLogin(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	if w := f.login(t, "owner", "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: "forged"})
	if w := f.do(req); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestLoginAndStats(t *testing.T) {
	f := newFixture(t)

	visit := httptest.NewRequest(http.MethodGet, "/", nil)
	visit.Header.Set("User-Agent", "test-agent")
	f.do(visit)

	skipped := httptest.NewRequest(http.MethodGet, "/", nil)
	skipped.Header.Set("DNT", "1")
	f.do(skipped)
	f.do(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	f.tracker.Wait()

	w := f.login(t, "owner", "hunter22")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}
	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == tokenCookie {
			session = c
		}
	}
	if session == nil || !session.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %#v", w.Result().Cookies())
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(session)
	w = f.do(req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var dashboard Dashboard
	if err := json.Unmarshal(w.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("decoding dashboard: %v", err)
	}
	if dashboard.Stats.TotalVisitors != 1 {
		t.Fatalf("expected exactly one tracked visit, got %d", dashboard.Stats.TotalVisitors)
	}
	got := dashboard.RecentVisitors[0]
	if got.UserAgent != "test-agent" || got.Path != "/" {
		t.Fatalf("unexpected visit: %#v", got)
	}
	if len(got.HashedIP) != 16 || strings.Contains(got.HashedIP, ".") {
		t.Fatalf("expected 16-char hash, got %q", got.HashedIP)
	}
}

func TestCleanupUsesRetention(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.store.RecordVisit(ctx, "abc", "agent", "/"); err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}

	removed, err := f.handler.Cleanup(ctx)
	if err != nil || removed != 0 {
		t.Fatalf("fresh visit must survive cleanup: removed=%d err=%v", removed, err)
	}

	f.handler.now = func() time.Time { return time.Now().AddDate(0, 0, 31) }
	removed, err = f.handler.Cleanup(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("expected expired visit removed: removed=%d err=%v", removed, err)
	}
}

func TestHashIP(t *testing.T) {
	tracker, err := NewTracker(zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	a := tracker.HashIP("203.0.113.7")
	if a != tracker.HashIP("203.0.113.7") {
		t.Fatal("hash must be stable within a tracker")
	}
	if a == tracker.HashIP("203.0.113.8") {
		t.Fatal("different addresses must hash differently")
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", a)
	}
}

func TestShouldTrack(t *testing.T) {
	for path, want := range map[string]bool{
		"/":            true,
		"/projects":    true,
		"/api/analyze": false,
		"/admin/login": false,
		"/favicon.ico": false,
	} {
		if got := shouldTrack(path); got != want {
			t.Errorf("shouldTrack(%q) = %v, want %v", path, got, want)
		}
	}
}
