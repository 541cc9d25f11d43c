package main

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/route"
	"Citybus/sim"
	"Citybus/telemetry"
)

// Game owns the one simulation state and drives it from the frame loop.
type Game struct {
	route   *route.Route
	sim     *sim.Simulator
	state   sim.State
	intents sim.Intents
	fps     float64
	server  *telemetry.Server
	ticks   int
}

func NewGame(r *route.Route, seed int64, fps float64) *Game {
	return &Game{
		route: r,
		sim:   sim.NewSimulator(r, seed),
		state: sim.NewState(r),
		fps:   fps,
	}
}

func (g *Game) tick(now time.Time, dt float32) {
	events := g.sim.Step(&g.state, &g.intents, dt)
	for _, e := range events {
		sim.LogEvent(slog.Default(), e)
	}
	if g.server != nil {
		g.server.Publish(now, g.sim.Snapshot(&g.state), events)
	}
	g.ticks++
}

func (g *Game) done(maxTicks int) bool {
	return g.intents.Exit || (maxTicks > 0 && g.ticks >= maxTicks)
}

// Run polls input every pass but only ticks and draws once the gate opens.
func (g *Game) Run(renderer *Renderer, maxTicks int) {
	gate := sim.NewGate(g.fps, time.Now())
	for !g.done(maxTicks) && !rl.WindowShouldClose() {
		latchInput(&g.intents)

		now := time.Now()
		dt, ok := gate.Advance(now)
		if !ok {
			time.Sleep(gate.Remaining(now))
			rl.PollInputEvents()
			continue
		}

		g.tick(now, dt)
		renderer.Draw(g.sim.Snapshot(&g.state), "")
	}
	slog.Info("simulation stopped", "ticks", g.ticks, "passengers", g.state.Passengers, "total_fines", g.state.TotalFines)
}

// RunHeadless drives the bus without a window or input, for telemetry-only runs.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int) {
	gate := sim.NewGate(g.fps, time.Now())
	for ctx.Err() == nil && !g.done(maxTicks) {
		now := time.Now()
		dt, ok := gate.Advance(now)
		if !ok {
			time.Sleep(gate.Remaining(now))
			continue
		}
		g.tick(now, dt)
	}
	slog.Info("simulation stopped", "ticks", g.ticks, "passengers", g.state.Passengers, "total_fines", g.state.TotalFines)
}
