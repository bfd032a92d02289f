// neonrun is a neon side-scrolling runner for the terminal.
//
// Usage:
//
//	neonrun play             - Play in the terminal
//	neonrun serve            - Start SSH server for remote play
//	neonrun replay list      - List recorded runs
//	neonrun replay show <id> - Re-simulate a recorded run and print the outcome
//	neonrun replay browse    - Browse recorded runs interactively
//	neonrun replay delete <id> - Delete a recorded run
//	neonrun config default   - Print the built-in config file
//	neonrun config show      - Print the resolved config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--db <path>     - Set database path (default: ~/.neonrun/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
)

// logger reports non-fatal problems on stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "neonrun",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonrun",
	Short: "Neon Runner - jump over obstacles in your terminal",
	Long: `Neon Runner is an endless side-scroller: a glowing box runs along the
ground, obstacles scroll in from the right, and every one you clear makes
the next one come faster.

Available commands:
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  replay   - Work with recorded runs
  config   - Inspect the configuration

Examples:
  neonrun play
  neonrun play --difficulty hard --record
  neonrun serve --ssh :2222
  neonrun replay list`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neonrun/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
