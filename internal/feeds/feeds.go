// Package feeds serves the "recent activity" lists shown on the home page.
// Sources are interfaces so the mock fixtures can be swapped for real API
// clients without touching the handlers.
package feeds

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// GitHubRepo mirrors the fields of the GitHub repository API the site shows.
type GitHubRepo struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	UpdatedAt       time.Time `json:"updated_at"`
	Language        *string   `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
}

type ShotImages struct {
	Normal string `json:"normal"`
}

type DribbbleShot struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Images      ShotImages `json:"images"`
	HTMLURL     string     `json:"html_url"`
	PublishedAt time.Time  `json:"published_at"`
}

// RepoSource fetches recently updated repositories.
type RepoSource interface {
	RecentRepos(ctx context.Context) ([]GitHubRepo, error)
}

// ShotSource fetches recently published Dribbble shots.
type ShotSource interface {
	RecentShots(ctx context.Context) ([]DribbbleShot, error)
}

type repoFixture struct {
	Name            string  `yaml:"name"`
	Description     *string `yaml:"description"`
	HTMLURL         string  `yaml:"html_url"`
	AgeDays         int     `yaml:"age_days"`
	Language        *string `yaml:"language"`
	StargazersCount int     `yaml:"stargazers_count"`
}

type shotFixture struct {
	ID          int     `yaml:"id"`
	Title       string  `yaml:"title"`
	Description *string `yaml:"description"`
	Image       string  `yaml:"image"`
	HTMLURL     string  `yaml:"html_url"`
	AgeDays     int     `yaml:"age_days"`
}

type fixtures struct {
	GitHub   []repoFixture `yaml:"github"`
	Dribbble []shotFixture `yaml:"dribbble"`
}

// Mock implements RepoSource and ShotSource from YAML fixtures. Timestamps
// are derived from each fixture's age relative to the clock.
type Mock struct {
	data fixtures
	now  func() time.Time
}

// NewMock parses data, or the embedded fixtures when data is nil. A nil now
// uses time.Now.
func NewMock(data []byte, now func() time.Time) (*Mock, error) {
	if data == nil {
		data = fixturesYAML
	}
	if now == nil {
		now = time.Now
	}

	var f fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feed fixtures: %w", err)
	}
	return &Mock{data: f, now: now}, nil
}

func (m *Mock) RecentRepos(ctx context.Context) ([]GitHubRepo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	repos := make([]GitHubRepo, 0, len(m.data.GitHub))
	for _, f := range m.data.GitHub {
		repos = append(repos, GitHubRepo{
			Name:            f.Name,
			Description:     f.Description,
			HTMLURL:         f.HTMLURL,
			UpdatedAt:       now.AddDate(0, 0, -f.AgeDays),
			Language:        f.Language,
			StargazersCount: f.StargazersCount,
		})
	}
	return repos, nil
}

func (m *Mock) RecentShots(ctx context.Context) ([]DribbbleShot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := m.now().UTC()
	shots := make([]DribbbleShot, 0, len(m.data.Dribbble))
	for _, f := range m.data.Dribbble {
		shots = append(shots, DribbbleShot{
			ID:          f.ID,
			Title:       f.Title,
			Description: f.Description,
			Images:      ShotImages{Normal: f.Image},
			HTMLURL:     f.HTMLURL,
			PublishedAt: now.AddDate(0, 0, -f.AgeDays),
		})
	}
	return shots, nil
}
