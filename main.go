package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/lorebox/internal/audio"
	"github.com/ytget/lorebox/internal/config"
	"github.com/ytget/lorebox/internal/content"
	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/lore"
	"github.com/ytget/lorebox/internal/music"
	"github.com/ytget/lorebox/internal/platform"
	"github.com/ytget/lorebox/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.lorebox"
	AppName = "Lorebox"

	WindowWidth  = 900
	WindowHeight = 640
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lorebox: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lorebox: build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("lorebox starting", "version", version, "origin", cfg.Origin)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewRuneTheme())
	settings := config.NewSettings(myApp)

	origin := settings.GetContentOrigin(cfg.Origin)
	src, err := platform.NewSource(origin, cfg.FetchTimeout)
	if err != nil {
		logger.Warn("content origin unusable, using default", "origin", origin, "error", err)
		if src, err = platform.NewSource(cfg.Origin, cfg.FetchTimeout); err != nil {
			logger.Error("default content origin unusable", "origin", cfg.Origin, "error", err)
			os.Exit(1)
		}
	}
	source := platform.NewSwitchSource(src)
	loader := content.NewService(source, contentOptions(cfg), logger)

	element := audio.NewElement(source, settings.GetVolume(), logger)
	defer element.Close()

	pageCue := audio.NewCue(source, cfg.PageTurnCuePath, logger)
	slashCue := audio.NewCue(source, cfg.SlashCuePath, logger)
	pageCue.SetEnabled(settings.GetCuesEnabled())
	slashCue.SetEnabled(settings.GetCuesEnabled())

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := ui.NewRootUI(ctx, window, myApp, ui.RootOptions{
		Settings:      settings,
		Media:         ui.SourceResolver{Source: source},
		Renderer:      lore.Renderer{LegacyMarkup: cfg.LegacyMarkup},
		PageCue:       pageCue,
		DefaultOrigin: cfg.Origin,
		Log:           logger,
	})

	controller := music.NewController(element, root.MusicView(), slashCue, music.Options{
		MediaRoot:      cfg.MediaRoot,
		EffectsEnabled: settings.GetEffectsEnabled(),
		Reload:         loader.LoadMusic,
		ReloadInterval: cfg.ReloadInterval,
		Log:            logger,
	})
	root.BindMusic(controller)

	go func() {
		if err := controller.Run(ctx, element.Events()); err != nil && ctx.Err() == nil {
			logger.Error("music box stopped", "error", err)
		}
	}()

	lb := &lorebox{
		ctx:        ctx,
		cfg:        cfg,
		log:        logger,
		source:     source,
		loader:     loader,
		root:       root,
		controller: controller,
		element:    element,
		cues:       []*audio.Cue{pageCue, slashCue},
	}
	root.OnReload = lb.reload
	root.OnSettingsApplied = lb.applySettings

	go lb.load(false)
	lb.watch()
	defer lb.stopWatch()

	window.ShowAndRun()
}

// contentOptions maps the startup configuration onto the content loader
func contentOptions(cfg config.Config) content.Options {
	opts := content.DefaultOptions()
	opts.LoreManifest = cfg.LoreManifest
	opts.LegacyDir = cfg.LoreLegacyDir
	opts.Legacy = cfg.LoreLegacy
	opts.Playlist = cfg.Playlist
	opts.TracksManifest = cfg.TracksManifest
	opts.RotationMinutes = cfg.RotationMinutes
	opts.FeaturedCount = cfg.FeaturedCount
	return opts
}
