package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/younwookim/plumber/internal/application/controller"
	"github.com/younwookim/plumber/internal/application/replay"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <replay.json>",
	Short: "Replay a recorded session without a window",
	Long: `Feed every frame of a recorded session to the game and print the
per-level results. Saved progress is never touched.

Examples:
  plumber simulate run.json
  plumber simulate run.json --config ./configs`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	cfg, fsys, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}

	ctrl := newController(cfg, fsys, nil, logger)
	dt := 1.0 / float64(cfg.Tuning.Display.Framerate)

	frames, err := simulate(ctrl, replay.NewReplayer(*data), dt)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulated %d frames (%.1fs)\n\n", frames, float64(frames)*dt)
	printResults(out, ctrl)
	return nil
}

// simulate feeds every recorded frame to ctrl and returns how many ran.
// A quit request ends the run early without error.
func simulate(ctrl *controller.Controller, r *replay.Replayer, dt float64) (int, error) {
	frames := 0
	for {
		in, ok := r.Next()
		if !ok {
			return frames, nil
		}
		frames++

		err := ctrl.Update(in, dt)
		if errors.Is(err, controller.ErrQuit) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
	}
}

func printResults(w io.Writer, ctrl *controller.Controller) {
	m := ctrl.Manager()
	fmt.Fprintf(w, "Final state: %s\n", ctrl.State())
	if lvl := ctrl.Level(); lvl != nil {
		fmt.Fprintf(w, "Current level: %s\n", lvl.Name)
	}
	fmt.Fprintln(w)

	history := m.History()
	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	slices.Sort(names)

	if len(names) == 0 {
		fmt.Fprintln(w, "No level completed.")
	}
	for _, name := range names {
		p := history[name]
		fmt.Fprintln(w, p.Summary())
	}

	fmt.Fprintf(w, "Total score: %d\n", m.TotalScore())
	fmt.Fprintf(w, "Stars: %d/%d\n", m.TotalStars(), m.MaxStars())
}
