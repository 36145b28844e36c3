package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "REQUEST_TIMEOUT", "RATE_LIMIT_PER_SECOND",
		"WINDOW_DAYS", "CAMPAIGN_COUNT", "PAGE_SIZE",
		"REFRESH_INTERVAL", "INITIAL_DELAY", "THEME",
		"LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.Server.RequestTimeout)
	}
	if cfg.Server.RateLimitPerSecond != 100 {
		t.Errorf("RateLimitPerSecond = %d, want 100", cfg.Server.RateLimitPerSecond)
	}
	if cfg.Dashboard.WindowDays != 30 {
		t.Errorf("WindowDays = %d, want 30", cfg.Dashboard.WindowDays)
	}
	if cfg.Dashboard.CampaignCount != 50 {
		t.Errorf("CampaignCount = %d, want 50", cfg.Dashboard.CampaignCount)
	}
	if cfg.Dashboard.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Dashboard.PageSize)
	}
	if cfg.Dashboard.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.Dashboard.RefreshInterval)
	}
	if cfg.Dashboard.InitialDelay != 1500*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 1.5s", cfg.Dashboard.InitialDelay)
	}
	if cfg.Export.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Export.Theme)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CAMPAIGN_COUNT", "200")
	t.Setenv("REFRESH_INTERVAL", "5s")
	t.Setenv("INITIAL_DELAY", "0s")
	t.Setenv("THEME", "light")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Dashboard.CampaignCount != 200 {
		t.Errorf("CampaignCount = %d, want 200", cfg.Dashboard.CampaignCount)
	}
	if cfg.Dashboard.RefreshInterval != 5*time.Second {
		t.Errorf("RefreshInterval = %v, want 5s", cfg.Dashboard.RefreshInterval)
	}
	if cfg.Dashboard.InitialDelay != 0 {
		t.Errorf("InitialDelay = %v, want 0", cfg.Dashboard.InitialDelay)
	}
	if cfg.Export.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Export.Theme)
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_SECOND", "plenty")
	t.Setenv("REFRESH_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.RateLimitPerSecond != 100 {
		t.Errorf("RateLimitPerSecond = %d, want default 100", cfg.Server.RateLimitPerSecond)
	}
	if cfg.Dashboard.RefreshInterval != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want default 30s", cfg.Dashboard.RefreshInterval)
	}
}
