package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/events"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing snake.

Controls:
  Arrows/WASD  - Steer
  P/Space      - Pause
  R            - Restart
  +/-          - Change speed (applies on restart)
  Q/Ctrl+C     - Quit

Without --speed (and without tick_ms in the config) a speed menu is
shown first.

Examples:
  snake play
  snake play --speed insane
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeed(flagSpeed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Speed = preset
		cfg.TickMS = 0
	}
	settings := config.NewSettings(cfg)

	logger, closeLog, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := terminalSize()

	// Let the player pick a speed unless it was fixed up front
	if flagSpeed == "" && cfg.TickMS == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		chosen, err := tui.RunSpeedSelector(settings, width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !chosen {
			return
		}
	}

	state := core.NewRunState()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("score history disabled", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		if best, err := store.HighScore(); err == nil {
			state.SeedHighscore(best)
		}
	}

	if err := play(cfg, settings, state, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// play wires one engine, controller and UI together and runs until quit.
func play(cfg config.SnakeConfig, settings *config.Settings, state *core.RunState, store *storage.Store, logger *log.Logger) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := snake.New(snake.Config{
		Width:         cfg.Board.Width,
		Height:        cfg.Board.Height,
		Walls:         cfg.Board.Walls,
		InitialLength: cfg.Snake.InitialLength,
		Seed:          seed,
	}, state)
	if err != nil {
		return err
	}

	bus := events.NewBus(logger.WithPrefix("bus"))
	renders := engine.NewRenderQueue(0)
	board := tui.NewBoardView(game)

	eng, err := engine.New(engine.Options{
		Stepper:    game,
		Renderer:   board,
		Dispatcher: renders,
		Events:     bus,
		Settings:   settings,
		State:      state,
		Logger:     logger.WithPrefix("engine"),
	})
	if err != nil {
		return err
	}

	// Subscribe the UI before the first session so it sees every event
	uiSub := bus.Subscribe(events.DefaultBufferSize)
	defer uiSub.Close()

	p := tui.NewProgram(tui.NewGameModel(tui.GameDeps{
		Game:     game,
		Board:    board,
		Renders:  renders,
		Events:   uiSub,
		Bus:      bus,
		Settings: settings,
		State:    state,
	}))

	ctrl := app.NewController(eng, bus, logger.WithPrefix("app"), p.Quit)
	defer ctrl.Close()
	if store != nil {
		ctrl.SetResultSaver(resultStore{store: store})
	}
	ctrl.WatchScore(state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	logger.Info("starting", "board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"walls", cfg.Board.Walls, "period", settings.Period(), "seed", seed)
	if err := ctrl.Start(); err != nil {
		return err
	}

	_, runErr := p.Run()

	// The window is gone; make sure no tick outlives it
	eng.Stop()
	logger.Info("stopped", "highscore", state.Highscore())
	return runErr
}

// terminalSize returns the size of stdout, or 80x24 if unknown.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
