package main

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/config"
	"Citybus/route"
	"Citybus/sim"
	"Citybus/telemetry"
)

func runSpectator(cfg config.AppConfig, r *route.Route, address string) error {
	client := telemetry.NewClient(r)
	if err := client.Connect(address); err != nil {
		return err
	}
	defer client.Disconnect()

	assets, closeWindow, err := openWindow(cfg)
	if err != nil {
		return err
	}
	defer closeWindow()

	renderer := NewRenderer(r, assets, cfg.Window.Caption)
	idle := sim.NewSimulator(r, 0)
	parked := sim.NewState(r)

	gate := sim.NewGate(cfg.Window.TargetFPS, time.Now())
	var in sim.Intents
	for !in.Exit && !rl.WindowShouldClose() {
		latchInput(&in)
		in.Clear()

		now := time.Now()
		if _, ok := gate.Advance(now); !ok {
			time.Sleep(gate.Remaining(now))
			rl.PollInputEvents()
			continue
		}

		snap, ok := client.Snapshot()
		if !ok {
			snap = idle.Snapshot(&parked)
		}
		renderer.Draw(snap, spectatorStatus(client, address, ok))
	}
	return nil
}

func spectatorStatus(client *telemetry.Client, address string, haveState bool) string {
	if !client.Connected() {
		return "Disconnected from " + address
	}
	if !haveState {
		return "Waiting for bus at " + address
	}
	session := client.Session()
	if len(session) > 8 {
		session = session[:8]
	}
	status := "Watching " + session
	if recent := client.Recent(); len(recent) > 0 {
		status += " | " + describeEvent(recent[len(recent)-1])
	}
	return status
}

func describeEvent(e sim.Event) string {
	switch ev := e.(type) {
	case sim.Boarded:
		return fmt.Sprintf("passenger boarded at %d", ev.Station)
	case sim.Deboarded:
		return fmt.Sprintf("passenger left at %d", ev.Station)
	case sim.InspectorBoarded:
		return fmt.Sprintf("inspector boarded at %d", ev.Station)
	case sim.InspectorExited:
		return fmt.Sprintf("inspector wrote %d fines at %d", ev.Fines, ev.Station)
	case sim.Departed:
		return fmt.Sprintf("departing for %d", ev.To)
	case sim.Arrived:
		return fmt.Sprintf("arrived at %d", ev.Station)
	default:
		return ""
	}
}
