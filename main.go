package main

import (
	"context"
	"embed"
	"log"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"pkt.systems/pslog"

	"github.com/zjregee/tibr/internal/app"
	"github.com/zjregee/tibr/internal/config"
)

//go:embed all:frontend/src
var assets embed.FS

func main() {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	configPath := os.Getenv("TIBR_CONFIG")
	if configPath == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			logger.Error("resolve config path failed", "err", err)
			os.Exit(1)
		}
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("load config failed", "path", configPath, "err", err)
		os.Exit(1)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("initialize app failed", "err", err)
		os.Exit(1)
	}

	err = wails.Run(&options.App{
		Title:     "tibr",
		Width:     1024,
		Height:    720,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 19, G: 23, B: 31, A: 255},
		OnStartup:        application.Startup,
		OnShutdown:       application.Shutdown,
		Bind: []any{
			application,
		},
		Mac: &mac.Options{
			TitleBar:             mac.TitleBarDefault(),
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
		},
	})

	if err != nil {
		log.Fatal(err)
	}
}
