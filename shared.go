package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/route"
)

const (
	ROAD_THICKNESS    = 3.0
	STATION_RADIUS    = 0.06
	STATION_LABEL_W   = 0.05
	STATION_LABEL_H   = 0.06
	BUS_W             = 0.15
	BUS_H             = 0.08
	DIGIT_W           = 0.08
	DIGIT_H           = 0.1
	LABEL_W           = 0.20
	LABEL_H           = 0.08
	ICON_SIZE         = 0.12
	DOOR_H            = 0.18
	CAPTION_W         = 0.3
	CAPTION_H         = 0.1
	CAPTION_ALPHA     = 0.7
	HUD_TEXT_SIZE     = 24
	STATION_TEXT_SIZE = 20
	CURSOR_SIZE       = 32
)

var (
	backgroundColor = rl.NewColor(38, 51, 64, 255)
	roadColor       = rl.NewColor(204, 26, 26, 255)
	busColor        = rl.NewColor(240, 190, 40, 255)
	doorOpenColor   = rl.NewColor(60, 180, 75, 255)
	doorClosedColor = rl.NewColor(120, 120, 120, 255)
)

// HUD anchors, centre of each element in device coordinates.
var (
	doorAnchor            = route.NewPoint(-0.85, 0.75)
	passengerLabelAnchor  = route.NewPoint(-0.90, -0.65)
	passengerDigitsAnchor = route.NewPoint(-0.90, -0.75)
	finesLabelAnchor      = route.NewPoint(-0.90, -0.83)
	finesDigitsAnchor     = route.NewPoint(-0.90, -0.93)
	inspectorAnchor       = route.NewPoint(0.85, 0.75)
	captionAnchor         = route.NewPoint(0.65, 0.88)
)

func screenSize() (float32, float32) {
	return float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
}

// toScreen maps device coordinates, y up, onto window pixels, y down.
func toScreen(p route.Point) rl.Vector2 {
	w, h := screenSize()
	return rl.NewVector2((p.X+1)/2*w, (1-p.Y)/2*h)
}

// sizeToScreen converts a device-space extent into pixels.
func sizeToScreen(w, h float32) rl.Vector2 {
	sw, sh := screenSize()
	return rl.NewVector2(w/2*sw, h/2*sh)
}

// rectAround is the pixel rectangle of a w×h device-space box centred on p.
func rectAround(p route.Point, w, h float32) rl.Rectangle {
	center := toScreen(p)
	size := sizeToScreen(w, h)
	return rl.NewRectangle(center.X-size.X/2, center.Y-size.Y/2, size.X, size.Y)
}
