package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Citybus/config"
	"Citybus/route"
	"Citybus/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	spectate := flag.String("spectate", "", "watch a running bus at host:port instead of driving one")
	headless := flag.Bool("headless", false, "run the simulation without a window")
	ticks := flag.Int("ticks", 0, "stop after this many simulation ticks (0 = run until exit)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	noConfig := errors.Is(err, config.ErrNoConfig)
	if err != nil && !noConfig {
		slog.Error("failed to load config", "path", *configPath, "err", err)
		return 1
	}
	setupLogging(cfg.Log)
	if noConfig {
		slog.Info("no config file, using defaults", "path", *configPath)
	}

	r := route.Default()

	if *spectate != "" {
		if err := runSpectator(cfg, r, *spectate); err != nil {
			slog.Error("spectator failed", "addr", *spectate, "err", err)
			return 1
		}
		return 0
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game := NewGame(r, seed, cfg.Window.TargetFPS)

	if cfg.Telemetry.Enabled {
		game.server = telemetry.NewServer()
		if err := game.server.Start(cfg.Telemetry.Port); err != nil {
			slog.Error("failed to start telemetry", "err", err)
			return 1
		}
		defer game.server.Stop()
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		game.RunHeadless(ctx, *ticks)
		return 0
	}

	assets, closeWindow, err := openWindow(cfg)
	if err != nil {
		slog.Error("failed to start", "err", err)
		return 1
	}
	defer closeWindow()

	slog.Info("bus running", "stations", r.Len(), "seed", seed,
		"controls", "left click board, right click leave, K inspector, ESC exit")
	game.Run(NewRenderer(r, assets, cfg.Window.Caption), *ticks)
	return 0
}
