package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
)

var configKeys = []string{
	"LISTEN_ADDR", "DATA_DIR", "PRESETS_PATH", "UI_PASSWORD", "PASSWORD_MODE",
	"DEFAULT_INTERVAL_MS", "DEFAULT_LIMIT", "DEFAULT_BUTTON", "UNBOUNDED_THRESHOLD",
	"RECENTER_OFFSET_PX", "MONITOR_INDEX", "LOG_LEVEL",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

// TestLoadFrom_Defaults verifies defaults when only the password is set.
func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("UI_PASSWORD", "pw")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr || !cfg.PasswordMode || cfg.DefaultIntervalMs != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PresetsPath != filepath.Join(dir, "presets.yaml") {
		t.Fatalf("unexpected presets path %q", cfg.PresetsPath)
	}
	if cfg.UnboundedThreshold != 999 || cfg.RecenterOffsetPx != 0 || cfg.MonitorIndex != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
}

// TestLoadFrom_PasswordRequired verifies password mode needs UI_PASSWORD.
func TestLoadFrom_PasswordRequired(t *testing.T) {
	clearEnv(t)
	_, err := LoadFrom(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "UI_PASSWORD") {
		t.Fatalf("expected UI_PASSWORD error, got %v", err)
	}
}

// TestLoadLocal_NoPasswordNeeded verifies terminal surfaces load without UI_PASSWORD.
func TestLoadLocal_NoPasswordNeeded(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("LoadLocal failed: %v", err)
	}
	if !cfg.PasswordMode || cfg.UIPassword != "" {
		t.Fatalf("unexpected password settings: %+v", cfg)
	}
}

// TestLoadFrom_DevMode verifies PASSWORD_MODE=false allows an empty password.
func TestLoadFrom_DevMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASSWORD_MODE", "off")
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.PasswordMode {
		t.Fatalf("expected password mode disabled")
	}
}

// TestLoadFrom_EnvFile verifies .env values apply and process env wins.
func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	body := strings.Join([]string{
		"# comment",
		"export UI_PASSWORD='secret'",
		"DEFAULT_INTERVAL_MS=250",
		"DEFAULT_LIMIT=inf",
		`DEFAULT_BUTTON="right"`,
		"LOG_LEVEL=debug",
		"not a pair",
	}, "\n")
	if err := os.WriteFile(EnvPath(dir), []byte(body), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DEFAULT_INTERVAL_MS", "40")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.UIPassword != "secret" || cfg.DefaultLimit != "inf" || cfg.DefaultButton != "right" {
		t.Fatalf("unexpected values from .env: %+v", cfg)
	}
	if cfg.DefaultIntervalMs != 40 {
		t.Fatalf("expected process env to win, got %d", cfg.DefaultIntervalMs)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
}

// TestLoadFrom_InvalidValues verifies bad values fail with the key name.
func TestLoadFrom_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_INTERVAL_MS": "-1",
		"UNBOUNDED_THRESHOLD": "many",
		"RECENTER_OFFSET_PX":  "left",
		"MONITOR_INDEX":       "0",
		"LOG_LEVEL":           "loud",
		"DEFAULT_BUTTON":      "middle",
		"DEFAULT_LIMIT":       "lots",
	}
	for key, value := range cases {
		clearEnv(t)
		t.Setenv("UI_PASSWORD", "pw")
		t.Setenv(key, value)
		_, err := LoadFrom(t.TempDir())
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("%s=%s: expected error naming key, got %v", key, value, err)
		}
	}
}

// TestLoadFrom_RunDefaultsValidated verifies default run values follow the run rules.
func TestLoadFrom_RunDefaultsValidated(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "pw")
	t.Setenv("DEFAULT_LIMIT", "0")
	_, err := LoadFrom(t.TempDir())
	var verr *clicker.ValidationError
	if !errors.As(err, &verr) || verr.Field != "limit" || !strings.Contains(err.Error(), "DEFAULT_LIMIT") {
		t.Fatalf("expected DEFAULT_LIMIT validation error, got %v", err)
	}

	clearEnv(t)
	t.Setenv("UI_PASSWORD", "pw")
	t.Setenv("DEFAULT_LIMIT", "inf")
	t.Setenv("DEFAULT_BUTTON", "RIGHT")
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.DefaultLimit != "inf" || cfg.DefaultButton != "RIGHT" {
		t.Fatalf("raw defaults should be kept, got %+v", cfg)
	}
}

// TestParseEnvLine verifies comments, export prefixes and quotes.
func TestParseEnvLine(t *testing.T) {
	if _, _, ok := parseEnvLine("  # nope"); ok {
		t.Fatalf("expected comment to be skipped")
	}
	key, value, ok := parseEnvLine(`export LISTEN_ADDR = "0.0.0.0:9000"`)
	if !ok || key != "LISTEN_ADDR" || value != "0.0.0.0:9000" {
		t.Fatalf("unexpected parse: %q %q %v", key, value, ok)
	}
	if _, _, ok := parseEnvLine("=value"); ok {
		t.Fatalf("expected empty key to be rejected")
	}
}
