package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/younwookim/plumber/internal/application/controller"
	"github.com/younwookim/plumber/internal/application/game"
	"github.com/younwookim/plumber/internal/application/replay"
	"github.com/younwookim/plumber/internal/application/scene/playing"
	"github.com/younwookim/plumber/internal/application/system"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

var (
	flagRecord string
	flagReplay string
	flagWatch  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game window and play the campaign.

Progress is saved to the selected store when the campaign enables autoSave.

Examples:
  plumber play
  plumber play --record run.json
  plumber play --replay run.json
  plumber play --config ./configs --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g., --record replay.json)")
	playCmd.Flags().StringVar(&flagReplay, "replay", "", "Drive the game from a recorded input file")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload tuning.yaml from --config when it changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, fsys, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ctrl := newController(cfg, fsys, store, logger)

	var input system.InputSource = system.NewInputSystem()
	if flagReplay != "" {
		data, err := replay.LoadReplay(flagReplay)
		if err != nil {
			return err
		}
		input = replay.NewReplayer(*data)
		logger.Info("replaying", "path", flagReplay, "frames", len(data.Frames))
	}

	scn := playing.New(ctrl, input, cfg.Tuning.Display, logger, flagRecord)

	if flagWatch {
		if flagConfigDir == "" {
			return errors.New("--watch needs --config")
		}
		w, err := config.NewWatcher(flagConfigDir, logger)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()
		scn.WatchTuning(w.Updates)
	}

	err = game.New(scn, cfg.Tuning.Display).Run()
	if errors.Is(err, controller.ErrQuit) {
		// The scene already saved its recording
		return nil
	}
	scn.OnExit()
	return err
}
