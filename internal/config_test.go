package internal

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.App.HTTP.Address() != ":8080" {
		t.Errorf("Address = %q", cfg.App.HTTP.Address())
	}
	if !cfg.Convert.Auto {
		t.Error("auto-convert should default on")
	}
	if cfg.Convert.ConfirmTimeout() != 30*time.Second {
		t.Errorf("ConfirmTimeout = %v", cfg.Convert.ConfirmTimeout())
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("token mode without token should fail")
	}
}

func TestAuthConfig_UnknownMode(t *testing.T) {
	cfg := AuthConfig{Mode: "basic"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown mode should fail")
	}
}

func TestConvertConfig_TimeoutBounds(t *testing.T) {
	cfg := ConvertConfig{Auto: true, ConfirmTimeoutSeconds: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero timeout should fail")
	}
	cfg.ConfirmTimeoutSeconds = 4000
	if err := cfg.Validate(); err == nil {
		t.Fatal("oversized timeout should fail")
	}
	cfg.ConfirmTimeoutSeconds = 60
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid timeout failed: %v", err)
	}
}

func TestHTTPConfig_PortRequired(t *testing.T) {
	cfg := HTTPConfig{Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing port should fail")
	}
}
