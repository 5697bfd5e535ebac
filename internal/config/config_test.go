package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "LOG_LEVEL", "ANALYZE_MAX_BYTES", "DB_PATH", "ADMIN_USERNAME", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Env != Development {
		t.Errorf("expected development env, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.App.Port)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.App.LogLevel)
	}
	if cfg.Analyze.MaxBytes != 100000 {
		t.Errorf("expected 100000 max bytes, got %d", cfg.Analyze.MaxBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default development config should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "PRODUCTION")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ANALYZE_MAX_BYTES", "not-a-number")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "s3cret-pass")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("expected info log level in production, got %q", cfg.App.LogLevel)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.App.Port)
	}
	if cfg.Analyze.MaxBytes != 100000 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Analyze.MaxBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsDefaultAdminInProduction(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Env: Production},
		Analyze: AnalyzeConfig{MaxBytes: 10},
		Store:   StoreConfig{RetentionDays: 30},
		Admin:   AdminConfig{Username: "admin", Password: "admin123"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for default admin credentials in production")
	}
}

func TestValidateAllowsDefaultUsernameWithCustomPassword(t *testing.T) {
	cfg := &Config{
		App:     AppConfig{Env: Production},
		Analyze: AnalyzeConfig{MaxBytes: 10},
		Store:   StoreConfig{RetentionDays: 30},
		Admin:   AdminConfig{Username: "admin", Password: "a-long-custom-passphrase"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default username with custom password should validate: %v", err)
	}
}

func TestParseEnvironment(t *testing.T) {
	if got := parseEnvironment("staging"); got != Development {
		t.Errorf("unknown env should map to development, got %q", got)
	}
	if got := parseEnvironment("Production"); got != Production {
		t.Errorf("expected production, got %q", got)
	}
}
