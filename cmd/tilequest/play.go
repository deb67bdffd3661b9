package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/game"
	"github.com/vovakirdan/tilequest/internal/interactives"
	"github.com/vovakirdan/tilequest/internal/levels"
	"github.com/vovakirdan/tilequest/internal/mapfile"
	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagLevels     string
	flagMap        string
	flagStart      string
	flagDifficulty string
	flagSlot       string
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start playing the levels found in the levels directory, or a single
compiled map file.

Controls:
  Arrows/WASD - Move (walk into a block to push it)
  E/Enter     - Use the tile in front of you
  Space       - Strike the tile in front of you
  F           - Fire an arrow
  Tab         - Switch arrow element (none, fire, ice)
  B           - Throw a bomb
  Ctrl+S      - Save to the current slot
  Ctrl+L      - Load the current slot
  P/Esc       - Pause
  ?           - Show all keys
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - More health and bombs, slower turrets
  normal - Values from the engine config
  hard   - One hit point, one bomb, fast turrets, heavy blocks

Examples:
  tilequest play
  tilequest play --start 02-icehall
  tilequest play --difficulty hard --slot hardrun
  tilequest play --resume
  tilequest play --map ./build/gatehouse.tqm`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevels, "levels", "levels", "Directory of YAML level files")
	playCmd.Flags().StringVar(&flagMap, "map", "", "Play a single binary map file instead of a campaign")
	playCmd.Flags().StringVar(&flagStart, "start", "", "ID of the level to start on (default: first)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagSlot, "slot", tui.DefaultSlot, "Save slot for ctrl+s and ctrl+l")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Start from the latest save in the slot")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadEngineConfig()
	if err != nil {
		return err
	}

	logger, closeLog := sessionLogger()
	defer closeLog()

	maps, start, err := loadMaps(cfg, logger)
	if err != nil {
		return err
	}

	state, err := game.New(maps, start, cfg, logger)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open save storage
	var saver tui.Saver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open save database: %v\n", err)
		// Continue without storage - the game still works
	} else {
		defer store.Close()
		saver = store
		if flagResume {
			if err := resume(state, store, flagSlot); err != nil {
				return err
			}
		}
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Runtime.TickRate,
			Debug:    flagDebug,
		},
		Slot:   flagSlot,
		Logger: logger,
	}
	logger.Info("session started", "maps", len(maps), "start", start, "slot", flagSlot)
	if err := tui.Run(state, saver, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadEngineConfig loads the engine config and applies the global flags.
func loadEngineConfig() (config.EngineConfig, error) {
	cfg, err := config.LoadEngine(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	return cfg, nil
}

// loadMaps builds the maps to play and returns the starting map index.
func loadMaps(cfg config.EngineConfig, logger *log.Logger) ([]*mapfile.Level, int, error) {
	if flagMap != "" {
		lv, err := mapfile.Load(flagMap, interactives.New(cfg.Tuning()))
		if err != nil {
			return nil, 0, err
		}
		// A lone map is map 0 of its own session. Its exits lead nowhere.
		lv.Index = 0
		return []*mapfile.Level{lv}, 0, nil
	}

	loader := levels.NewLoader(flagLevels)
	campaign, err := loader.LoadCampaign()
	if err != nil {
		return nil, 0, fmt.Errorf("loading levels: %w", err)
	}
	for _, skipped := range loader.Skipped {
		logger.Warn("skipped level file", "err", skipped)
	}

	start := 0
	if flagStart != "" {
		i, ok := campaign.Index(flagStart)
		if !ok {
			return nil, 0, fmt.Errorf("unknown level %q (have %v)", flagStart, campaign.IDs())
		}
		start = i
	}

	maps, err := campaign.BuildAll(cfg.Tuning())
	if err != nil {
		return nil, 0, fmt.Errorf("building levels: %w", err)
	}
	return maps, start, nil
}

// resume restores the newest snapshot of slot into state, if there is one.
func resume(state *game.State, store *storage.Store, slot string) error {
	entry, err := store.LatestSnapshot(slot)
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "No save in slot %q, starting fresh.\n", slot)
		return nil
	}
	if err := state.Restore(game.Snapshot{MapIndex: entry.MapIndex, Data: entry.Data}); err != nil {
		return fmt.Errorf("resuming slot %q: %w", slot, err)
	}
	return nil
}
