package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/sim"
)

// latchInput records button and key presses since the last poll. Presses are
// only ever set here; Simulator.Step clears them.
func latchInput(in *sim.Intents) {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		in.Board = true
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		in.Deboard = true
	}
	if rl.IsKeyPressed(rl.KeyK) {
		in.Inspector = true
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		in.Exit = true
	}
}
