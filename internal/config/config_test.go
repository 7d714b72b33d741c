package config

import (
	"testing"
	"time"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"Plain bytes", "4096", 4096},
		{"Kilobytes", "100K", 100 * 1024},
		{"Lowercase kilobytes", "650k", 650 * 1024},
		{"Megabytes", "10M", 10 * 1024 * 1024},
		{"Gigabytes", "1G", 1024 * 1024 * 1024},
		{"Empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSize(tt.input); got != tt.expected {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWorkerCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		max     int
	}{
		{"Explicit count", 4, 4},
		{"Capped at 16", 100, 16},
		{"Zero falls back to default", 0, 16},
		{"Negative falls back to default", -1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Workers: tt.workers}
			got := cfg.WorkerCount()
			if got < 1 || got > tt.max {
				t.Errorf("WorkerCount() = %v, want 1..%v", got, tt.max)
			}
			if tt.workers > 0 && tt.workers <= 16 && got != tt.workers {
				t.Errorf("WorkerCount() = %v, want %v", got, tt.workers)
			}
		})
	}
}

func TestBudgetDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.DecodeBudget(); got != 3*time.Second {
		t.Errorf("DecodeBudget() = %v, want 3s", got)
	}
	if got := cfg.BatchBudget(); got != 30*time.Second {
		t.Errorf("BatchBudget() = %v, want 30s", got)
	}
	if got := cfg.PlausibilityFloor(); got != 100 {
		t.Errorf("PlausibilityFloor() = %v, want 100", got)
	}

	cfg = &Config{DecodeTimeout: 5, BatchTimeout: 60, MinDecodedBytes: 200}
	if got := cfg.DecodeBudget(); got != 5*time.Second {
		t.Errorf("DecodeBudget() = %v, want 5s", got)
	}
	if got := cfg.BatchBudget(); got != 60*time.Second {
		t.Errorf("BatchBudget() = %v, want 60s", got)
	}
	if got := cfg.PlausibilityFloor(); got != 200 {
		t.Errorf("PlausibilityFloor() = %v, want 200", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.ScanScripts || !cfg.ScanAddons || !cfg.ScanWorkshop || !cfg.ScanCache {
		t.Error("all phases should be enabled by default")
	}
	if cfg.MaxSizeBytes() != 10*1024*1024 {
		t.Errorf("MaxSizeBytes() = %v, want 10MB", cfg.MaxSizeBytes())
	}
	if cfg.SniffThresholdBytes() != 100*1024 {
		t.Errorf("SniffThresholdBytes() = %v, want 100KB", cfg.SniffThresholdBytes())
	}
	if cfg.AI.Enabled {
		t.Error("AI summary should be disabled by default")
	}
}
