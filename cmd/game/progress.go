package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/younwookim/plumber/internal/infrastructure/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or clear saved progress",
	Long: `Inspect or clear the campaign progress kept in the selected store.

Examples:
  plumber progress show
  plumber progress show --store sqlite --db ./progress.db
  plumber progress reset`,
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved campaign progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved campaign progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}

// openRequiredStore is openStore for commands that cannot run without one
func openRequiredStore() (storage.Store, func() error, error) {
	store, closeStore, err := openStore()
	if err != nil {
		return nil, closeStore, err
	}
	if store == nil {
		return nil, closeStore, errors.New("progress commands need a store (gdata or sqlite)")
	}
	return store, closeStore, nil
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openRequiredStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	snap, err := store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved progress.")
		return nil
	}
	if err != nil {
		return err
	}

	printProgress(cmd.OutOrStdout(), snap)
	return nil
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openRequiredStore()
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Progress cleared.")
	return nil
}

func printProgress(w io.Writer, snap storage.Snapshot) {
	fmt.Fprintf(w, "Current level: #%d\n", snap.CurrentIndex+1)
	fmt.Fprintf(w, "Total score:   %d\n", snap.TotalScore)
	fmt.Fprintln(w)

	if len(snap.Levels) == 0 {
		fmt.Fprintln(w, "No level completed yet.")
		return
	}

	names := make([]string, 0, len(snap.Levels))
	for name := range snap.Levels {
		names = append(names, name)
	}
	slices.Sort(names)

	// Print header
	fmt.Fprintf(w, "  %-12s  %-8s  %-6s  %-5s  %s\n", "Level", "Score", "Coins", "Stars", "Time")
	fmt.Fprintf(w, "  %-12s  %-8s  %-6s  %-5s  %s\n", "-----", "-----", "-----", "-----", "----")

	for _, name := range names {
		r := snap.Levels[name]
		fmt.Fprintf(w, "  %-12s  %-8d  %-6d  %-5d  %.1fs\n", name, r.Score, r.Coins, r.Stars, r.ElapsedTime)
	}
}
