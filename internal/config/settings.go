package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/christophertwo/aella/internal/util"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "AELLA_"

// Settings holds process-level configuration. Values come from the
// defaults, then the TOML file, then AELLA_* environment variables.
// Command-line flags are applied last by the caller.
type Settings struct {
	DataDir       string `toml:"data_dir" env:"DATA_DIR"`
	DBPath        string `toml:"db_path" env:"DB_PATH"`
	LogFile       string `toml:"log_file" env:"LOG_FILE"`
	LogLevel      string `toml:"log_level" env:"LOG_LEVEL"`
	PageSize      int    `toml:"page_size" env:"PAGE_SIZE"`
	SearchDelayMS int    `toml:"search_delay_ms" env:"SEARCH_DELAY_MS"`
}

// DefaultSettings returns settings rooted at the XDG data dir.
func DefaultSettings() Settings {
	return Settings{
		DataDir:       util.DataDir(AppName),
		LogLevel:      "info",
		PageSize:      PageSize,
		SearchDelayMS: int(SearchDebounce / time.Millisecond),
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/aella/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(util.ConfigDir(AppName), ConfigFileName)
}

// LoadSettings reads the TOML file at path (a missing file is not an
// error) and applies environment overrides.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s.Normalize()
}

// SaveSettings writes s as TOML, creating the parent directory.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Normalize fills derived paths and validates ranges.
func (s Settings) Normalize() (Settings, error) {
	s.DataDir = strings.TrimSpace(s.DataDir)
	if s.DataDir == "" {
		s.DataDir = util.DataDir(AppName)
	}
	if strings.TrimSpace(s.DBPath) == "" {
		s.DBPath = filepath.Join(s.DataDir, DBFileName)
	}
	if strings.TrimSpace(s.LogFile) == "" {
		s.LogFile = filepath.Join(s.DataDir, LogFileName)
	}
	if s.PageSize <= 0 {
		return s, fmt.Errorf("page_size must be positive, got %d", s.PageSize)
	}
	if s.SearchDelayMS <= 0 {
		return s, fmt.Errorf("search_delay_ms must be positive, got %d", s.SearchDelayMS)
	}
	if _, err := util.ParseLogLevel(s.LogLevel); err != nil {
		return s, err
	}
	return s, nil
}

// SearchDebounce returns the configured delay as a duration.
func (s Settings) SearchDebounce() time.Duration {
	return time.Duration(s.SearchDelayMS) * time.Millisecond
}

// ClampSearchDelay snaps d into the range the settings dialog offers.
func ClampSearchDelay(d time.Duration) time.Duration {
	if d < MinSearchDebounce {
		return MinSearchDebounce
	}
	if d > MaxSearchDebounce {
		return MaxSearchDebounce
	}
	return d.Round(SearchDebounceStep)
}
