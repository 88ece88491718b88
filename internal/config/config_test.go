package config

import (
	"testing"
	"time"
)

// TestDefaultConfig 默认值与时长换算
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 20261 {
		t.Errorf("Port = %d, want 20261", cfg.Server.Port)
	}
	if cfg.Soop.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Soop.Workers)
	}

	if got := cfg.RefreshInterval(); got != 3*time.Hour {
		t.Errorf("RefreshInterval = %v, want 3h", got)
	}
	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", got)
	}
	if got := cfg.RequestDelay(); got != 120*time.Millisecond {
		t.Errorf("RequestDelay = %v, want 120ms", got)
	}
	if got := cfg.IdentityTTL(); got != 72*time.Hour {
		t.Errorf("IdentityTTL = %v, want 72h", got)
	}
	if got := cfg.LiveTTL(); got != 90*time.Second {
		t.Errorf("LiveTTL = %v, want 90s", got)
	}
}

// TestIsPortSpecifiedInToml 只有显式写了 port 才算指定
func TestIsPortSpecifiedInToml(t *testing.T) {
	if !isPortSpecifiedInToml([]byte("[server]\nport = 8080\n")) {
		t.Error("explicit port not detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Error("port detected where none is set")
	}
	if isPortSpecifiedInToml([]byte("")) {
		t.Error("port detected in empty config")
	}
	if isPortSpecifiedInToml([]byte("not toml at all {{{")) {
		t.Error("port detected in invalid toml")
	}
}
