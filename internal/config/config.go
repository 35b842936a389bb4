// Package config loads environment configuration for AirClick.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/frudas24/airclick/internal/clicker"
)

const (
	defaultListenAddr         = "127.0.0.1:8787"
	defaultDataDir            = "./data"
	defaultPresetsFile        = "presets.yaml"
	defaultPasswordMode       = true
	defaultIntervalMs         = 100
	defaultButton             = "left"
	defaultUnboundedThreshold = 999
	defaultRecenterOffsetPx   = 0
	defaultMonitorIdx         = 1
	defaultLogLevel           = "info"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr         string
	UIPassword         string
	PasswordMode       bool
	DataDir            string
	PresetsPath        string
	DefaultIntervalMs  int
	DefaultLimit       string
	DefaultButton      string
	UnboundedThreshold int
	RecenterOffsetPx   int
	MonitorIndex       int
	LogLevel           zerolog.Level
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	return LoadFrom(defaultDataDir)
}

// LoadFrom reads configuration using dataDir as the default data directory.
func LoadFrom(dataDir string) (Config, error) {
	return load(dataDir, true)
}

// LoadLocal reads configuration for terminal surfaces, which do not expose
// the HTTP API and therefore do not need UI_PASSWORD.
func LoadLocal(dataDir string) (Config, error) {
	return load(dataDir, false)
}

func load(dataDir string, requirePassword bool) (Config, error) {
	cfg := Config{
		ListenAddr:         defaultListenAddr,
		PasswordMode:       defaultPasswordMode,
		DataDir:            dataDir,
		DefaultIntervalMs:  defaultIntervalMs,
		DefaultButton:      defaultButton,
		UnboundedThreshold: defaultUnboundedThreshold,
		RecenterOffsetPx:   defaultRecenterOffsetPx,
		MonitorIndex:       defaultMonitorIdx,
		LogLevel:           zerolog.InfoLevel,
	}

	if err := loadEnvFile(EnvPath(cfg.DataDir)); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.PresetsPath = envString("PRESETS_PATH", filepath.Join(cfg.DataDir, defaultPresetsFile))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.PasswordMode = envBool("PASSWORD_MODE", cfg.PasswordMode)
	cfg.DefaultLimit = strings.TrimSpace(os.Getenv("DEFAULT_LIMIT"))
	cfg.DefaultButton = envString("DEFAULT_BUTTON", cfg.DefaultButton)

	interval, err := envInt("DEFAULT_INTERVAL_MS", cfg.DefaultIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if interval < 0 {
		return Config{}, fmt.Errorf("DEFAULT_INTERVAL_MS must be >= 0")
	}
	cfg.DefaultIntervalMs = interval

	threshold, err := envInt("UNBOUNDED_THRESHOLD", cfg.UnboundedThreshold)
	if err != nil {
		return Config{}, err
	}
	if threshold < 0 {
		return Config{}, fmt.Errorf("UNBOUNDED_THRESHOLD must be >= 0")
	}
	cfg.UnboundedThreshold = threshold

	offset, err := envInt("RECENTER_OFFSET_PX", cfg.RecenterOffsetPx)
	if err != nil {
		return Config{}, err
	}
	cfg.RecenterOffsetPx = offset

	monitorIdx, err := envInt("MONITOR_INDEX", cfg.MonitorIndex)
	if err != nil {
		return Config{}, err
	}
	if monitorIdx <= 0 {
		return Config{}, fmt.Errorf("MONITOR_INDEX must be >= 1")
	}
	cfg.MonitorIndex = monitorIdx

	level, err := zerolog.ParseLevel(strings.ToLower(envString("LOG_LEVEL", defaultLogLevel)))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if err := cfg.validateRunDefaults(); err != nil {
		return Config{}, err
	}

	if requirePassword && cfg.PasswordMode && cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required when PASSWORD_MODE is enabled")
	}

	return cfg, nil
}

// runDefaultKeys maps run parameter fields to the env keys that seed them.
var runDefaultKeys = map[string]string{
	"interval": "DEFAULT_INTERVAL_MS",
	"limit":    "DEFAULT_LIMIT",
	"button":   "DEFAULT_BUTTON",
}

// validateRunDefaults checks the default run parameters with the same rules
// used when a run is requested.
func (c Config) validateRunDefaults() error {
	_, err := clicker.ParseParams(strconv.Itoa(c.DefaultIntervalMs), c.DefaultLimit, c.DefaultButton,
		clicker.ParseOptions{UnboundedThreshold: c.UnboundedThreshold})
	var verr *clicker.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", runDefaultKeys[verr.Field], err)
	}
	return err
}

// EnvPath returns the .env location inside dataDir.
func EnvPath(dataDir string) string {
	return filepath.Join(dataDir, ".env")
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file. Variables already set
// in the process environment win.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
