package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zombiebird/internal/audio"
	"github.com/vovakirdan/zombiebird/internal/config"
	"github.com/vovakirdan/zombiebird/internal/games/flappy"
	"github.com/vovakirdan/zombiebird/internal/platform/tui"
	"github.com/vovakirdan/zombiebird/internal/replay"
	"github.com/vovakirdan/zombiebird/internal/storage"
)

var (
	flagMute     bool
	flagVolume   float64
	flagNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Zombie Bird",
	Long: `Start a session. The session is saved as a replay when you quit.

Controls:
  Space/Up   - Flap (also starts a run and retries after game over)
  R/Enter    - Retry after game over
  P/Esc      - Pause
  Ctrl+S     - Save a text screenshot
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  zombiebird play
  zombiebird play --seed 42
  zombiebird play --mute --no-record
  zombiebird play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound volume between 0 and 1")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the session as a replay")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	rt := runtimeConfig()
	logger, closeLog := newSessionLogger()
	defer closeLog()

	game := flappy.New()
	game.ResetWithConfig(rt, cfg)

	var rec *replay.Recorder
	if !flagNoRecord {
		rec = replay.NewRecorder(game.ID(), rt, cfg)
	}

	player := audio.Open(flagMute, flagVolume, logger)
	defer player.Close()

	if err := tui.Run(game, rt, tui.Options{
		Audio:    player,
		Logger:   logger,
		Recorder: rec,
	}); err != nil {
		fatalf("running game: %v", err)
	}

	if rec == nil || rec.Ticks() == 0 {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("replay not saved", "err", err)
		fmt.Printf("Warning: could not save replay: %v\n", err)
		return
	}
	defer store.Close()

	r := rec.Finish()
	id, err := store.SaveReplay(r)
	if err != nil {
		logger.Warn("replay not saved", "err", err)
		fmt.Printf("Warning: could not save replay: %v\n", err)
		return
	}

	logger.Info("replay saved", "id", id, "ticks", r.TotalTicks, "runs", len(r.Runs))
	fmt.Printf("Best score: %d over %d run(s). Saved as replay #%d.\n", r.BestScore(), len(r.Runs), id)
}
