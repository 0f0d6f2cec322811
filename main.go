package main

import (
	"embed"

	"github.com/chazu/cogworks/pkg/config"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	log := logger.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration: " + err.Error())
	}

	app := NewApp(cfg, log)

	err = wails.Run(&options.App{
		Title:  "Cogworks",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 24, G: 24, B: 28, A: 255},
		OnStartup:        app.startup,
		Logger:           log,
		LogLevel:         logger.INFO,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Error("wails: " + err.Error())
	}
}
