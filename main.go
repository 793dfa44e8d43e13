package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/inspector"
	"github.com/pthm-cable/warren/renderer"
	"github.com/pthm-cable/warren/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N steps (0 = unlimited)")
	depth := flag.Int("depth", 0, "Field rows (0 = use config)")
	width := flag.Int("width", 0, "Field columns (0 = use config)")
	delay := flag.Int("delay", -1, "Viewer delay between steps in ms (-1 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rows, cols := cfg.Grid.Depth, cfg.Grid.Width
	if *depth != 0 {
		rows = *depth
	}
	if *width != 0 {
		cols = *width
	}
	if *delay >= 0 {
		cfg.Viewer.DelayMS = *delay
		if cfg.Viewer.MaxDelayMS < *delay {
			cfg.Viewer.MaxDelayMS = *delay
		}
	}

	opts := game.Options{
		Seed:        *seed,
		Config:      cfg,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
	}

	if *headless {
		os.Exit(runHeadless(rows, cols, opts, *maxTicks))
	}
	os.Exit(runGraphical(rows, cols, opts, *maxTicks))
}

func runHeadless(rows, cols int, opts game.Options, maxTicks int) int {
	sim, err := game.New(rows, cols, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		return 1
	}
	defer sim.Close()

	slog.Info("starting headless simulation",
		"seed", sim.Seed(),
		"depth", rows,
		"width", cols,
		"max_ticks", maxTicks,
	)

	for maxTicks <= 0 || sim.Step() < maxTicks {
		sim.SimulateOneStep()
	}
	slog.Info("max ticks reached", "tick", sim.Step())
	sim.LogWorldState()

	if opts.SnapshotDir != "" {
		if _, err := sim.SaveSnapshot(opts.SnapshotDir, nil); err != nil {
			slog.Error("failed to save final snapshot", "error", err)
		}
	}
	return 0
}

func runGraphical(rows, cols int, opts game.Options, maxTicks int) int {
	sim, err := game.New(rows, cols, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		return 1
	}
	defer sim.Close()
	cfg := sim.Config()

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Warren")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	panelH := float32(cfg.Viewer.PanelHeight)
	screenW := float32(cfg.Screen.Width)
	screenH := float32(cfg.Screen.Height)

	grid := renderer.NewGridRenderer(rl.Rectangle{Width: screenW, Height: screenH - panelH}, cfg.Colors.Empty)
	controls := ui.NewControls(
		rl.Rectangle{Y: screenH - panelH, Width: screenW, Height: panelH},
		time.Duration(cfg.Viewer.DelayMS)*time.Millisecond,
		time.Duration(cfg.Viewer.MaxDelayMS)*time.Millisecond,
	)
	ins := inspector.NewInspector(int32(screenW), cfg.Fox.RabbitFoodValue)
	var pacer ui.Pacer

	for !rl.WindowShouldClose() {
		sim.RecordFrame()

		ins.HandleInput(rl.GetMousePosition(), grid, sim)

		if controls.Running() && pacer.Due(time.Now(), controls.Delay()) {
			sim.SimulateOneStep()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		grid.Draw(sim)
		ins.Draw(grid, sim)
		action := controls.Draw(sim.Step(), sim.Census())
		rl.EndDrawing()

		switch action {
		case ui.ActionStep:
			sim.SimulateOneStep()
		case ui.ActionReset:
			sim.Reset()
			ins.Deselect()
		}

		if maxTicks > 0 && sim.Step() >= maxTicks {
			break
		}
	}
	return 0
}
