// zombiebird is a Flappy Bird-style game for the terminal.
//
// Usage:
//
//	zombiebird play              - Play a session (recorded as a replay)
//	zombiebird replay list       - List recorded sessions
//	zombiebird replay show <id>  - Show the runs of a recording
//	zombiebird replay watch <id> - Play a recording back
//	zombiebird replay verify <id> - Re-simulate a recording and compare scores
//	zombiebird replay rm <id>    - Delete a recording
//	zombiebird config dump       - Print the effective world config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.zombiebird/replays.db)
//	--config <path>      - Use a custom world config YAML
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zombiebird/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zombiebird",
	Short: "Zombie Bird - flap through the pipes in your terminal",
	Long: `Zombie Bird is a Flappy Bird-style game that runs in your terminal.

Every session is recorded. Recordings can be listed, watched again, and
verified: the simulation is deterministic, so re-running the recorded
input must reproduce every score.

Examples:
  zombiebird play
  zombiebird play --seed 42 --mute
  zombiebird replay list
  zombiebird replay watch 3
  zombiebird config dump > ~/.zombiebird/configs/flappy.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.zombiebird/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger writing to w at the --log-level.
func newLogger(w *os.File) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "zombiebird",
		Level:           level,
	})
}

// newSessionLogger logs to ~/.zombiebird/zombiebird.log, since the TUI owns
// the terminal. Falls back to stderr at error level so the TUI stays clean.
func newSessionLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".zombiebird")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "zombiebird.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err == nil {
				return newLogger(f), func() { f.Close() }
			}
		}
	}

	logger := newLogger(os.Stderr)
	logger.Warn("cannot open log file", "err", err)
	logger.SetLevel(log.ErrorLevel)
	return logger, func() {}
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// fatalf prints an error and exits, matching cobra's "Error: " prefix.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
