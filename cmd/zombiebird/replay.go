package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zombiebird/internal/audio"
	"github.com/vovakirdan/zombiebird/internal/platform/tui"
	"github.com/vovakirdan/zombiebird/internal/replay"
	"github.com/vovakirdan/zombiebird/internal/storage"
)

var (
	flagLimit     int
	flagPickLimit int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Manage recorded sessions",
	Long: `List, inspect, watch, verify and delete recorded sessions.

Examples:
  zombiebird replay list
  zombiebird replay show 3
  zombiebird replay watch 3
  zombiebird replay watch        # pick from a list
  zombiebird replay verify 3
  zombiebird replay rm 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	Args:  cobra.NoArgs,
	Run:   runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the runs of a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayWatchCmd = &cobra.Command{
	Use:   "watch [id]",
	Short: "Play a recording back in the terminal",
	Args:  cobra.MaximumNArgs(1),
	Run:   runReplayWatch,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a recording and compare every run",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayRm,
}

func init() {
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of recordings to list")
	replayWatchCmd.Flags().IntVar(&flagPickLimit, "limit", 50, "Maximum number of recordings to offer when no id is given")
	replayWatchCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	replayWatchCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound volume between 0 and 1")

	replayCmd.AddCommand(replayListCmd, replayShowCmd, replayWatchCmd, replayVerifyCmd, replayRmCmd)
}

// openStore opens the replay database or exits.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening replay database: %v", err)
	}
	return store
}

// loadReplay parses the ID argument and loads the recording or exits.
func loadReplay(store *storage.Store, arg string) replay.Replay {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fatalf("invalid replay id %q", arg)
	}

	r, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrReplayNotFound) {
		fatalf("no replay with id %d. Run 'zombiebird replay list' to see recordings.", id)
	}
	if err != nil {
		fatalf("%v", err)
	}
	return r
}

func runReplayList(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	entries, err := store.ListReplays(flagLimit)
	if err != nil {
		fatalf("%v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No recordings yet.")
		fmt.Println()
		fmt.Println("Play 'zombiebird play' to record your first session!")
		return
	}

	fmt.Printf("  %-5s  %-16s  %-8s  %-4s  %s\n", "ID", "Date", "Length", "Runs", "Best")
	fmt.Printf("  %-5s  %-16s  %-8s  %-4s  %s\n", "--", "----", "------", "----", "----")

	for _, e := range entries {
		r := replay.Replay{TickRate: e.TickRate, TotalTicks: e.TotalTicks}
		fmt.Printf("  %-5d  %-16s  %-8s  %-4d  %d\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), r.Duration().Round(100*time.Millisecond), e.Runs, e.BestScore)
	}
}

func runReplayShow(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	r := loadReplay(store, args[0])

	fmt.Printf("Replay #%d - %s\n", r.ID, r.GameID)
	fmt.Println()
	fmt.Printf("  Recorded:  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Seed:      %d\n", r.Seed)
	fmt.Printf("  Tick rate: %d\n", r.TickRate)
	fmt.Printf("  Length:    %d ticks (%s)\n", r.TotalTicks, r.Duration())
	fmt.Printf("  Inputs:    %d\n", len(r.Inputs))
	fmt.Println()

	if len(r.Runs) == 0 {
		fmt.Println("No finished runs.")
		return
	}

	fmt.Printf("  %-4s  %-6s  %s\n", "Run", "Score", "Ended at tick")
	fmt.Printf("  %-4s  %-6s  %s\n", "---", "-----", "-------------")
	for i, run := range r.Runs {
		fmt.Printf("  %-4d  %-6d  %d\n", i+1, run.Score, run.EndTick)
	}
	fmt.Println()
	fmt.Printf("Best score: %d\n", r.BestScore())
}

func runReplayWatch(cmd *cobra.Command, args []string) {
	store := openStore()

	var r replay.Replay
	if len(args) == 1 {
		r = loadReplay(store, args[0])
	} else {
		id, ok := pickReplay(store)
		if !ok {
			store.Close()
			return
		}
		r = loadReplay(store, strconv.FormatInt(id, 10))
	}
	store.Close()

	game, err := replay.NewGame(r)
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog := newSessionLogger()
	defer closeLog()

	player := audio.Open(flagMute, flagVolume, logger)
	defer player.Close()

	rt := runtimeConfig()
	rt.Seed = r.Seed
	rt.TickRate = r.TickRate

	if err := tui.Run(game, rt, tui.Options{
		Audio:    player,
		Logger:   logger,
		Replayer: replay.NewReplayer(r),
	}); err != nil {
		fatalf("running replay: %v", err)
	}
}

// pickReplay shows the recording browser and returns the chosen ID.
func pickReplay(store *storage.Store) (int64, bool) {
	entries, err := store.ListReplays(flagPickLimit)
	if err != nil {
		fatalf("%v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No recordings yet. Play 'zombiebird play' to record one.")
		return 0, false
	}

	rt := runtimeConfig()
	id, ok, err := tui.RunBrowser(entries, rt.ScreenW, rt.ScreenH)
	if err != nil {
		fatalf("running browser: %v", err)
	}
	return id, ok
}

func runReplayVerify(cmd *cobra.Command, args []string) {
	store := openStore()
	r := loadReplay(store, args[0])
	store.Close()

	logger := newLogger(os.Stderr)

	report, err := replay.Verify(r)
	if err != nil {
		fatalf("%v", err)
	}

	if report.OK() {
		logger.Info("replay verified", "id", r.ID, "runs", len(report.Actual), "ticks", report.Ticks)
		fmt.Printf("Replay #%d OK: %d run(s) reproduced over %d ticks.\n", r.ID, len(report.Actual), report.Ticks)
		return
	}

	logger.Error("replay diverged", "id", r.ID)
	fmt.Printf("Replay #%d diverged:\n", r.ID)
	for _, m := range report.Mismatches() {
		fmt.Printf("  %s\n", m)
	}
	os.Exit(1)
}

func runReplayRm(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fatalf("invalid replay id %q", args[0])
	}

	store := openStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrReplayNotFound) {
			fatalf("no replay with id %d", id)
		}
		fatalf("%v", err)
	}
	fmt.Printf("Deleted replay #%d.\n", id)
}
