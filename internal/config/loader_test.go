package config_test

import (
	"testing"
	"time"

	"github.com/Viderspace/NeedleWhatsappCrawler/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEEDLE_GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.WindowSize != 20 {
		t.Errorf("WindowSize = %d, want 20", cfg.WindowSize)
	}
	if cfg.Threshold != 0.99 {
		t.Errorf("Threshold = %g, want 0.99", cfg.Threshold)
	}
	if cfg.Gemini.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Gemini.MaxAttempts)
	}
	if cfg.Gemini.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.Gemini.RetryDelay)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want env value", cfg.Gemini.APIKey)
	}
	if cfg.Report.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want \"output\"", cfg.Report.OutputDir)
	}
}

func TestLoadBareKeyFallback(t *testing.T) {
	t.Setenv("NEEDLE_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "fallback-key" {
		t.Errorf("APIKey = %q, want fallback env value", cfg.Gemini.APIKey)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	t.Setenv("NEEDLE_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() must fail without a Gemini API key")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NEEDLE_GEMINI_API_KEY", "test-key")
	t.Setenv("NEEDLE_WINDOW_SIZE", "7")
	t.Setenv("NEEDLE_THRESHOLD", "0.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.WindowSize != 7 {
		t.Errorf("WindowSize = %d, want 7", cfg.WindowSize)
	}
	if cfg.Threshold != 0.5 {
		t.Errorf("Threshold = %g, want 0.5", cfg.Threshold)
	}
}
