package model

import (
	"fmt"
	"slices"
)

// Supported state backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Supported tool table dialects.
const (
	DialectLinuxCNC = "linuxcnc"
	DialectGeneric  = "generic"
)

// AppConfig holds application-wide preferences.
type AppConfig struct {
	// Storage. StateBackend is "json" or "sqlite"; an empty DataDir means the
	// config directory.
	StateBackend     string `json:"state_backend" yaml:"state_backend" mapstructure:"state_backend"`
	DataDir          string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	AutoSaveInterval int    `json:"auto_save_interval" yaml:"auto_save_interval" mapstructure:"auto_save_interval"` // minutes, 0 = disabled

	// Magazine checks. MaxPocketDiameter of 0 disables the clearance check;
	// ToolNumberOffset is the T-number of slot 0.
	MaxPocketDiameter float64 `json:"max_pocket_diameter" yaml:"max_pocket_diameter" mapstructure:"max_pocket_diameter"`
	ToolNumberOffset  int     `json:"tool_number_offset" yaml:"tool_number_offset" mapstructure:"tool_number_offset"`
	ToolTableDialect  string  `json:"tool_table_dialect" yaml:"tool_table_dialect" mapstructure:"tool_table_dialect"`

	// Application preferences
	Theme         string   `json:"theme" yaml:"theme" mapstructure:"theme"` // "light", "dark", "system"
	LogLevel      string   `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	RecentExports []string `json:"recent_exports" yaml:"recent_exports" mapstructure:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		StateBackend:      BackendJSON,
		AutoSaveInterval:  0,
		MaxPocketDiameter: 0,
		ToolNumberOffset:  1,
		ToolTableDialect:  DialectLinuxCNC,
		Theme:             "system",
		LogLevel:          "info",
		RecentExports:     []string{},
	}
}

// Validate checks enumerated fields.
func (c AppConfig) Validate() error {
	if !slices.Contains([]string{BackendJSON, BackendSQLite}, c.StateBackend) {
		return fmt.Errorf("unknown state backend %q", c.StateBackend)
	}
	if !slices.Contains([]string{"light", "dark", "system"}, c.Theme) {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if !slices.Contains([]string{DialectLinuxCNC, DialectGeneric}, c.ToolTableDialect) {
		return fmt.Errorf("unknown tool table dialect %q", c.ToolTableDialect)
	}
	if c.MaxPocketDiameter < 0 {
		return fmt.Errorf("max pocket diameter must not be negative")
	}
	return nil
}

// AddRecentExport records path at the front of the recent list, keeping at most 10.
func (c *AppConfig) AddRecentExport(path string) {
	list := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			list = append(list, p)
		}
	}
	if len(list) > 10 {
		list = list[:10]
	}
	c.RecentExports = list
}
