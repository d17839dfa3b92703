package config

import (
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://calibrate.example.com"
	cfg.Optimal.RatioMax = 2.5

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.APIBaseURL != "https://calibrate.example.com" {
		t.Errorf("APIBaseURL: got %q", loaded.APIBaseURL)
	}
	if loaded.Optimal.RatioMax != 2.5 {
		t.Errorf("Optimal.RatioMax: got %v, want 2.5", loaded.Optimal.RatioMax)
	}
}

func TestReadConfigMissingFileReturnsDefaults(t *testing.T) {
	loaded, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if loaded.APIBaseURL != "http://localhost:8000" {
		t.Errorf("default APIBaseURL: got %q", loaded.APIBaseURL)
	}
	if loaded.RequestTimeoutSeconds != 30 {
		t.Errorf("default RequestTimeoutSeconds: got %d, want 30", loaded.RequestTimeoutSeconds)
	}
}

func TestApplyEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("CREMA_API_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("CREMA_REQUEST_TIMEOUT_SECONDS", "5")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	if cfg.APIBaseURL != "http://127.0.0.1:9000" {
		t.Errorf("APIBaseURL: got %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeoutSeconds != 5 {
		t.Errorf("RequestTimeoutSeconds: got %d, want 5", cfg.RequestTimeoutSeconds)
	}
}

func TestApplyEnvIgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("CREMA_REQUEST_TIMEOUT_SECONDS", "soon")

	cfg := DefaultConfig()
	ApplyEnv(cfg)

	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("RequestTimeoutSeconds: got %d, want 30", cfg.RequestTimeoutSeconds)
	}
}

func TestDefaultOptimalWindow(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Optimal.RatioMin != 1.8 || cfg.Optimal.RatioMax != 2.2 {
		t.Errorf("ratio window: got [%v, %v]", cfg.Optimal.RatioMin, cfg.Optimal.RatioMax)
	}
	if cfg.Optimal.TimeMinSeconds != 25 || cfg.Optimal.TimeMaxSeconds != 30 {
		t.Errorf("time window: got [%d, %d]", cfg.Optimal.TimeMinSeconds, cfg.Optimal.TimeMaxSeconds)
	}
}
