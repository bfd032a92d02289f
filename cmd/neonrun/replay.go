package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var flagLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Work with recorded runs",
	Long: `Work with runs saved by 'neonrun play --record'.

A recording holds the config and every input of a session. Replaying it
re-simulates the session from scratch and reaches the same final state.

Examples:
  neonrun replay list
  neonrun replay show 3
  neonrun replay browse
  neonrun replay delete 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-simulate a recorded run and print the outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded runs interactively",
	Args:  cobra.NoArgs,
	Run:   runReplayBrowse,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of runs to list")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayBrowseCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// openStore opens the runs database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// parseRunID parses a run ID argument or exits.
func parseRunID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid run ID %q\n", arg)
		os.Exit(1)
	}
	return id
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	runs, err := store.ListRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neonrun play --record' to record one.")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-16s  %-8s  %s\n", "ID", "Recorded", "Events", "Length")
	fmt.Printf("  %-6s  %-16s  %-8s  %s\n", "--", "--------", "------", "------")

	for _, r := range runs {
		fmt.Printf("  %-6d  %-16s  %-8d  %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.EventCount,
			r.Duration.Round(time.Second/10),
		)
	}
}

func runReplayShow(cmd *cobra.Command, args []string) {
	id := parseRunID(args[0])

	store := openStore()
	trace, err := store.LoadRun(id)
	store.Close()
	if errors.Is(err, storage.ErrRunNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run with ID %d\n", id)
		fmt.Fprintln(os.Stderr, "Run 'neonrun replay list' to see recorded runs.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		os.Exit(1)
	}

	sum, err := replay.Summarize(trace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run #%d\n", id)
	fmt.Println()
	for _, line := range tui.SummaryLines(sum) {
		fmt.Printf("  %s\n", line)
	}
}

func runReplayBrowse(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	if err := tui.RunReplays(store, rc.ScreenW, rc.ScreenH); err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
	}
}

func runReplayDelete(cmd *cobra.Command, args []string) {
	id := parseRunID(args[0])

	store := openStore()
	defer store.Close()

	if err := store.DeleteRun(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Deleted run #%d\n", id)
}
