package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/ToolCrib/internal/model"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// EnvPrefix prefixes environment overrides, e.g. TOOLCRIB_STATE_BACKEND.
	EnvPrefix = "TOOLCRIB"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.toolcrib/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".toolcrib")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), configFileName+"."+configFileType)
}

// SaveAppConfig writes config as YAML, creating parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads config from path, layering file values and
// TOOLCRIB_* environment variables over DefaultAppConfig. A missing file is
// not an error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	defaults := model.DefaultAppConfig()

	v := viper.New()
	v.SetDefault("state_backend", defaults.StateBackend)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("auto_save_interval", defaults.AutoSaveInterval)
	v.SetDefault("max_pocket_diameter", defaults.MaxPocketDiameter)
	v.SetDefault("tool_number_offset", defaults.ToolNumberOffset)
	v.SetDefault("tool_table_dialect", defaults.ToolTableDialect)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("recent_exports", defaults.RecentExports)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	v.SetConfigType(configFileType)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return defaults, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return defaults, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.RecentExports == nil {
		config.RecentExports = []string{}
	}
	if err := config.Validate(); err != nil {
		return defaults, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// DataDir resolves where state files live for config.
func DataDir(config model.AppConfig) string {
	if config.DataDir != "" {
		return config.DataDir
	}
	return DefaultConfigDir()
}
