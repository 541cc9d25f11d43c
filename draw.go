package main

import (
	"fmt"
	"strconv"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/route"
	"Citybus/sim"
)

// Renderer draws a sim.Snapshot. The road polyline is sampled once, since the
// route never changes.
type Renderer struct {
	assets  *Assets
	path    [][]route.Point
	caption string
}

func NewRenderer(r *route.Route, assets *Assets, caption string) *Renderer {
	return &Renderer{
		assets:  assets,
		path:    r.Path(),
		caption: caption,
	}
}

// Draw renders one frame. status, when non-empty, is shown along the top edge.
func (r *Renderer) Draw(snap sim.Snapshot, status string) {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	gui.SetFont(r.assets.Font)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, HUD_TEXT_SIZE)

	r.drawRoad()
	r.drawStations(snap.Stations)
	r.drawBus(snap.Bus)
	r.drawDoors(snap.DoorsOpen)
	r.drawCounter(PassengersLabelTexture, "Passengers", passengerLabelAnchor, passengerDigitsAnchor, snap.Passengers)
	r.drawCounter(FinesLabelTexture, "Fines", finesLabelAnchor, finesDigitsAnchor, snap.TotalFines)
	if snap.InspectorAboard {
		r.drawInspector(snap.InspectorExitStation)
	}
	r.drawCaption()

	w, h := screenSize()
	if status != "" {
		gui.Label(rl.NewRectangle(w/2-300, 10, 600, 30), status)
	}
	gui.Label(rl.NewRectangle(w-620, h-40, 610, 30), "Left click: board | Right click: leave | K: inspector | ESC: exit")

	r.drawCursor()
	rl.EndDrawing()
}

func (r *Renderer) drawRoad() {
	for _, segment := range r.path {
		for j := 0; j < len(segment)-1; j++ {
			rl.DrawLineEx(toScreen(segment[j]), toScreen(segment[j+1]), ROAD_THICKNESS, roadColor)
		}
	}
}

func (r *Renderer) drawStations(stations []route.Point) {
	_, h := screenSize()
	radius := STATION_RADIUS / 2 * h
	for i, p := range stations {
		center := toScreen(p)
		rl.DrawCircleV(center, radius, roadColor)

		if tex, ok := r.assets.Digit(i % 10); ok {
			drawTextureIn(tex, rectAround(p, STATION_LABEL_W, STATION_LABEL_H), 1)
			continue
		}
		label := strconv.Itoa(i)
		size := rl.MeasureTextEx(r.assets.Font, label, STATION_TEXT_SIZE, 1)
		pos := rl.NewVector2(center.X-size.X/2, center.Y-size.Y/2)
		rl.DrawTextEx(r.assets.Font, label, pos, STATION_TEXT_SIZE, 1, rl.White)
	}
}

func (r *Renderer) drawBus(p route.Point) {
	rect := rectAround(p, BUS_W, BUS_H)
	if tex, ok := r.assets.Texture(BusTexture); ok {
		drawTextureIn(tex, rect, 1)
		return
	}
	rl.DrawRectangleRec(rect, busColor)
	rl.DrawRectangleLinesEx(rect, 2, rl.Black)
}

func (r *Renderer) drawDoors(open bool) {
	rect := rectAround(doorAnchor, ICON_SIZE, DOOR_H)
	id, color, text := DoorsClosedTexture, doorClosedColor, "Closed"
	if open {
		id, color, text = DoorsOpenTexture, doorOpenColor, "Open"
	}
	if tex, ok := r.assets.Texture(id); ok {
		drawTextureIn(tex, rect, 1)
		return
	}

	rl.DrawRectangleRec(rect, color)
	rl.DrawRectangleLinesEx(rect, 2, rl.Black)
	if open {
		gap := rect.Width / 4
		rl.DrawRectangleRec(rl.NewRectangle(rect.X+rect.Width/2-gap/2, rect.Y, gap, rect.Height), backgroundColor)
	}
	gui.Label(rl.NewRectangle(rect.X, rect.Y+rect.Height+4, rect.Width*2, 24), text)
}

// drawCounter shows n as two digits under its label. Values wrap at 100.
func (r *Renderer) drawCounter(labelID TextureID, label string, labelAt, digitsAt route.Point, n int) {
	labelRect := rectAround(labelAt, LABEL_W, LABEL_H)
	if tex, ok := r.assets.Texture(labelID); ok {
		drawTextureIn(tex, labelRect, 1)
	} else {
		gui.Label(labelRect, label)
	}

	tens, ones := sim.Digits(n)
	first, okFirst := r.assets.Digit(tens)
	second, okSecond := r.assets.Digit(ones)
	if okFirst && okSecond {
		drawTextureIn(first, rectAround(digitsAt, DIGIT_W, DIGIT_H), 1)
		drawTextureIn(second, rectAround(route.NewPoint(digitsAt.X+0.1, digitsAt.Y), DIGIT_W, DIGIT_H), 1)
		return
	}
	digitsRect := rectAround(route.NewPoint(digitsAt.X+0.05, digitsAt.Y), LABEL_W, DIGIT_H)
	gui.Label(digitsRect, fmt.Sprintf("%d%d", tens, ones))
}

func (r *Renderer) drawInspector(exitStation int) {
	rect := rectAround(inspectorAnchor, ICON_SIZE, ICON_SIZE)
	if tex, ok := r.assets.Texture(InspectorTexture); ok {
		drawTextureIn(tex, rect, 1)
	} else {
		center := rl.NewVector2(rect.X+rect.Width/2, rect.Y+rect.Height/2)
		rl.DrawCircleV(center, rect.Height/2, rl.Maroon)
		rl.DrawCircleLines(int32(center.X), int32(center.Y), rect.Height/2, rl.White)
	}
	gui.Label(rl.NewRectangle(rect.X-rect.Width, rect.Y+rect.Height+4, rect.Width*3, 24),
		fmt.Sprintf("Inspector off at %d", exitStation))
}

func (r *Renderer) drawCaption() {
	rect := rectAround(captionAnchor, CAPTION_W, CAPTION_H)
	if tex, ok := r.assets.Texture(CaptionTexture); ok {
		drawTextureIn(tex, rect, CAPTION_ALPHA)
		return
	}
	if r.caption == "" {
		return
	}
	rl.DrawTextEx(r.assets.Font, r.caption, rl.NewVector2(rect.X, rect.Y), HUD_TEXT_SIZE, 1, rl.Fade(rl.White, CAPTION_ALPHA))
}

func (r *Renderer) drawCursor() {
	tex, ok := r.assets.Texture(CursorTexture)
	if !ok {
		return
	}
	mouse := rl.GetMousePosition()
	drawTextureIn(tex, rl.NewRectangle(mouse.X, mouse.Y, CURSOR_SIZE, CURSOR_SIZE), 1)
}

func drawTextureIn(tex rl.Texture2D, dst rl.Rectangle, alpha float32) {
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.Fade(rl.White, alpha))
}
