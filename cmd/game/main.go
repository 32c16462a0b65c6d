// plumber is a side-scrolling platformer.
//
// Usage:
//
//	plumber play                 - Open the game window
//	plumber simulate <replay>    - Run a recorded session headless
//	plumber progress show        - Show saved campaign progress
//	plumber progress reset       - Delete saved campaign progress
//
// Global flags:
//
//	--config <dir>     - Load configs from a directory instead of the built-in set
//	--store <kind>     - Progress store: gdata, sqlite or none (default: gdata)
//	--db <path>        - SQLite database path (default: ~/.plumber/progress.db)
//	--log-level <lvl>  - debug, info, warn or error (default: info)
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/plumber/internal/application/campaign"
	"github.com/younwookim/plumber/internal/application/controller"
	"github.com/younwookim/plumber/internal/infrastructure/config"
	"github.com/younwookim/plumber/internal/infrastructure/levelsource"
	"github.com/younwookim/plumber/internal/infrastructure/storage"
)

//go:embed configs
var configFS embed.FS

const appName = "plumber"

var (
	// Global flags
	flagConfigDir string
	flagStore     string
	flagDBPath    string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A side-scrolling platformer",
	Long: `Run, jump and stomp through a campaign of levels.

Available commands:
  play      - Open the game window
  simulate  - Replay a recorded session without a window
  progress  - Inspect or clear saved progress

Examples:
  plumber play
  plumber play --record run.json
  plumber play --config ./configs --watch
  plumber simulate run.json
  plumber progress show --store sqlite`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (empty = built-in configs)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "gdata", "Progress store: gdata, sqlite or none")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.plumber/progress.db", "Path to the SQLite progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(progressCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          appName,
		Level:           level,
	}), nil
}

// loadConfig reads tuning and campaign from --config, or from the embedded
// configs when the flag is empty. The returned FS also serves level files.
func loadConfig() (*config.GameConfig, fs.FS, error) {
	var loader *config.Loader
	if flagConfigDir != "" {
		loader = config.NewLoader(flagConfigDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, loader.FS(), nil
}

// openStore opens the progress store picked by --store. The returned close
// function is never nil.
func openStore() (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch flagStore {
	case "gdata":
		s, err := storage.OpenGData(appName)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case "sqlite":
		s, err := storage.OpenSQLite(flagDBPath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "none":
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q (want gdata, sqlite or none)", flagStore)
	}
}

// newController wires a campaign over the configured level sources
func newController(cfg *config.GameConfig, fsys fs.FS, store storage.Store, logger *log.Logger) *controller.Controller {
	levels := levelsource.NewFSLoader(fsys, cfg.Tuning)
	m := campaign.NewManager(levels, cfg.Campaign.Levels, logger)
	ctrl := controller.New(cfg.Tuning, m, store, logger)
	ctrl.SetAutoSave(cfg.Campaign.AutoSave && store != nil)
	return ctrl
}
