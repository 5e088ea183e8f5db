// ToolCrib - Machine Shop Tool Inventory
//
// Tracks cutting tools, holders and adapters across the tool magazines of
// CNC machines and the shop's tool library.
//
// Build:
//   go build -o toolcrib ./cmd/toolcrib
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o toolcrib.exe ./cmd/toolcrib
//   GOOS=darwin  GOARCH=amd64 go build -o toolcrib-darwin ./cmd/toolcrib
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/ToolCrib/internal/engine"
	"github.com/piwi3910/ToolCrib/internal/model"
	"github.com/piwi3910/ToolCrib/internal/project"
)

var (
	// configFile is set by the --config flag.
	configFile string
	verbose    bool

	// Initialized by PersistentPreRunE.
	configPath string
	appConfig  model.AppConfig
	logger     *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toolcrib",
	Short: "ToolCrib - machine shop tool inventory",
	Long: `ToolCrib keeps track of which tool, holder and adapter sits in which
pocket of each machine magazine, and what is left in the tool library.

Run without arguments to open the desktop application.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ~/.toolcrib/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(convertCmd)
}

// setup loads the config and builds the logger. The default config file is
// written on first run.
func setup(cmd *cobra.Command, args []string) error {
	configPath = configFile
	if configPath == "" {
		configPath = project.DefaultConfigPath()
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			if err := project.SaveAppConfig(configPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to write default config: %w", err)
			}
		}
	}

	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	appConfig = cfg

	logger, err = newLogger(cfg.LogLevel, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("config loaded", zap.String("path", configPath), zap.String("backend", cfg.StateBackend))
	return nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		config.Level = lvl
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// openSession loads the saved state into a session. An unreadable state
// is logged and replaced by defaults.
func openSession() (*engine.Session, project.StateStore, error) {
	store, err := project.OpenStore(appConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("open state store: %w", err)
	}
	state, err := store.Load()
	if err != nil {
		logger.Warn("saved state unreadable, starting from defaults", zap.Error(err))
	}
	return engine.NewSession(state, logger), store, nil
}
