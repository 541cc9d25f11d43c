package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/config"
)

type TextureID int

const (
	BusTexture TextureID = iota
	InspectorTexture
	DoorsClosedTexture
	DoorsOpenTexture
	CaptionTexture
	PassengersLabelTexture
	FinesLabelTexture
	CursorTexture
)

var textureFiles = map[TextureID]string{
	BusTexture:             "Textures/2d_bus.png",
	InspectorTexture:       "Textures/bus_control.png",
	DoorsClosedTexture:     "Textures/closed_doors.png",
	DoorsOpenTexture:       "Textures/opened_doors.png",
	CaptionTexture:         "Textures/author_text.png",
	PassengersLabelTexture: "Textures/passengers_label.png",
	FinesLabelTexture:      "Textures/fines.png",
	CursorTexture:          "Cursors/stop_cursor.png",
}

// Without these the scene cannot be drawn as designed; assets.required makes
// them fatal.
var mandatoryTextures = []TextureID{
	BusTexture,
	DoorsClosedTexture,
	PassengersLabelTexture,
	FinesLabelTexture,
}

type Assets struct {
	textures map[TextureID]rl.Texture2D
	digits   [10]rl.Texture2D
	hasDigit [10]bool
	Font     rl.Font
	hasFont  bool
}

func loadTexture(path string) (rl.Texture2D, bool) {
	if _, err := os.Stat(path); err != nil {
		slog.Debug("texture missing", "path", path)
		return rl.Texture2D{}, false
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		slog.Warn("texture failed to load", "path", path)
		return rl.Texture2D{}, false
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex, true
}

// LoadAssets loads whatever textures exist under cfg.Dir. Missing ones are
// drawn with primitives instead, unless cfg.Required is set.
func LoadAssets(cfg config.AssetsConfig) (*Assets, error) {
	a := &Assets{textures: make(map[TextureID]rl.Texture2D)}

	for id, file := range textureFiles {
		if tex, ok := loadTexture(filepath.Join(cfg.Dir, file)); ok {
			a.textures[id] = tex
		}
	}
	for i := range a.digits {
		path := filepath.Join(cfg.Dir, "Textures", fmt.Sprintf("number_%d.png", i))
		a.digits[i], a.hasDigit[i] = loadTexture(path)
	}

	if cfg.Font != "" {
		if _, err := os.Stat(cfg.Font); err == nil {
			a.Font = rl.LoadFontEx(cfg.Font, HUD_TEXT_SIZE*2, nil)
			a.hasFont = a.Font.Texture.ID != 0
		}
	}
	if !a.hasFont {
		a.Font = rl.GetFontDefault()
	}

	var missing []string
	for _, id := range mandatoryTextures {
		if _, ok := a.textures[id]; !ok {
			missing = append(missing, textureFiles[id])
		}
	}
	if len(missing) > 0 {
		if cfg.Required {
			a.Unload()
			return nil, fmt.Errorf("missing textures in %s: %s", cfg.Dir, strings.Join(missing, ", "))
		}
		slog.Info("drawing without textures", "missing", missing)
	}

	slog.Info("assets loaded", "textures", len(a.textures), "dir", cfg.Dir)
	return a, nil
}

func (a *Assets) Texture(id TextureID) (rl.Texture2D, bool) {
	tex, ok := a.textures[id]
	return tex, ok
}

func (a *Assets) Digit(d int) (rl.Texture2D, bool) {
	if d < 0 || d > 9 || !a.hasDigit[d] {
		return rl.Texture2D{}, false
	}
	return a.digits[d], true
}

func (a *Assets) Unload() {
	for id, tex := range a.textures {
		rl.UnloadTexture(tex)
		delete(a.textures, id)
	}
	for i := range a.digits {
		if a.hasDigit[i] {
			rl.UnloadTexture(a.digits[i])
			a.hasDigit[i] = false
		}
	}
	if a.hasFont {
		rl.UnloadFont(a.Font)
		a.hasFont = false
	}
}
