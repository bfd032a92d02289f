package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/core"
	"github.com/vovakirdan/neon-runner/internal/platform/tui"
	"github.com/vovakirdan/neon-runner/internal/replay"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/W/click - Jump (restarts after game over)
  R                - Restart
  ?                - More keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, slower speed-up
  normal - The config as written
  hard   - Faster start, faster speed-up
  fixed  - No speed-up, stays at the initial speed

Examples:
  neonrun play
  neonrun play --difficulty easy
  neonrun play --config ./my-runner.yaml
  neonrun play --record`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addConfigFlags(playCmd)
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session for replay")
}

// addConfigFlags registers the flags read by loadRunnerConfig.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// loadRunnerConfig resolves the config file and applies the difficulty preset.
func loadRunnerConfig() (config.RunnerConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, err
	}

	cfg, skipped, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	for _, s := range skipped {
		logger.Warn("config skipped", "path", s.Path, "error", s.Err)
	}

	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initial size; Bubble Tea sends the real one on start
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	model, err := tui.NewModel(cfg, rc, flagRecord, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	final, runErr := tui.Run(model)

	if trace, ok := final.Trace(); ok && len(trace.Events) > 0 {
		saveTrace(trace)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// saveTrace stores a recorded session. Failures are reported but not fatal.
func saveTrace(trace replay.Trace) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, recording discarded", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(trace)
	if err != nil {
		logger.Warn("could not save recording", "error", err)
		return
	}
	fmt.Printf("Run saved as #%d. Replay it with: neonrun replay show %d\n", id, id)
}
