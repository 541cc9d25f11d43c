package main

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"Citybus/config"
)

var ErrNoWindow = errors.New("window could not be created")

// openWindow creates the window and loads assets. The returned func releases
// both and must be called before exit.
func openWindow(cfg config.AppConfig) (*Assets, func(), error) {
	if cfg.Window.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
	}
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return nil, nil, ErrNoWindow
	}
	rl.SetExitKey(0)

	assets, err := LoadAssets(cfg.Assets)
	if err != nil {
		rl.CloseWindow()
		return nil, nil, err
	}
	if _, ok := assets.Texture(CursorTexture); ok {
		rl.HideCursor()
	}

	closeFn := func() {
		assets.Unload()
		rl.CloseWindow()
	}
	return assets, closeFn, nil
}
