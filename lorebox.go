package main

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/lorebox/internal/audio"
	"github.com/ytget/lorebox/internal/config"
	"github.com/ytget/lorebox/internal/content"
	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/music"
	"github.com/ytget/lorebox/internal/platform"
	"github.com/ytget/lorebox/internal/ui"
)

// Content file extensions that trigger a reload when watched
var watchedExts = []string{".json", ".md", ".m3u"}

var (
	_ music.Audio  = (*audio.Element)(nil)
	_ music.Loader = (*audio.Element)(nil)
)

// lorebox ties content loading and origin changes to the window
type lorebox struct {
	ctx        context.Context
	cfg        config.Config
	log        *logging.Logger
	source     *platform.SwitchSource
	loader     *content.Service
	root       *ui.RootUI
	controller *music.Controller
	element    *audio.Element
	cues       []*audio.Cue

	watchMu sync.Mutex
	watcher *platform.Watcher
}

// load fetches both widgets' content and hands it to them
func (l *lorebox) load(reload bool) {
	l.root.ShowLoading()

	book, library := l.loader.LoadAll(l.ctx)
	l.log.Info("content loaded",
		"origin", l.source.Origin(),
		"lore_format", book.Format,
		"pages", len(book.Pages),
		"music_format", library.Format,
		"tracks", len(library.Tracks))

	l.root.HideNotice()
	l.root.ShowLore(book)
	l.controller.Post(l.ctx, music.PoolLoaded{Library: library, Reload: reload})
}

// reload is triggered from the menu
func (l *lorebox) reload() {
	go l.load(true)
}

func (l *lorebox) reloadLore() {
	book := l.loader.LoadLore(l.ctx)
	l.log.Debug("lore reloaded", "format", book.Format, "pages", len(book.Pages))
	l.root.ShowLore(book)
}

// applySettings pushes saved settings into the running components
func (l *lorebox) applySettings(change ui.SettingsChange) {
	l.element.SetVolume(change.Volume)
	for _, cue := range l.cues {
		cue.SetEnabled(change.Cues)
	}

	if !change.OriginChanged {
		return
	}

	src, err := platform.NewSource(change.Origin, l.cfg.FetchTimeout)
	if err != nil {
		l.log.Warn("content origin rejected", "origin", change.Origin, "error", err)
		return
	}
	l.source.Set(src)
	l.log.Info("content origin changed", "origin", src.Origin())

	l.stopWatch()
	l.watch()
	go l.load(true)
}

// watch follows local content directories so edits show up without a restart
func (l *lorebox) watch() {
	if !l.cfg.WatchContent {
		return
	}
	dir, ok := l.source.Current().(*platform.DirSource)
	if !ok {
		return
	}

	dirs := watchDirs(dir.Root(), l.cfg)
	if len(dirs) == 0 {
		return
	}

	w, err := platform.NewWatcher(watchedExts, dirs...)
	if err != nil {
		l.log.Warn("content watch unavailable", "root", dir.Root(), "error", err)
		return
	}

	l.watchMu.Lock()
	l.watcher = w
	l.watchMu.Unlock()

	l.log.Debug("watching content", "dirs", dirs)
	go l.followChanges(w)
}

func (l *lorebox) followChanges(w *platform.Watcher) {
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			l.log.Debug("content changed", "file", name)
			if isMusicFile(name) {
				l.controller.Post(l.ctx, music.ReloadTick{})
			} else {
				l.reloadLore()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.log.Warn("content watch error", "error", err)
		case <-l.ctx.Done():
			return
		}
	}
}

func (l *lorebox) stopWatch() {
	l.watchMu.Lock()
	w := l.watcher
	l.watcher = nil
	l.watchMu.Unlock()

	if w != nil {
		_ = w.Close()
	}
}

// watchDirs returns the existing directories that hold manifests
func watchDirs(root string, cfg config.Config) []string {
	candidates := []string{
		path.Dir(cfg.LoreManifest),
		cfg.LoreLegacyDir,
		path.Dir(cfg.Playlist),
		path.Dir(cfg.TracksManifest),
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, rel := range candidates {
		dir := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func isMusicFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".m3u" || strings.EqualFold(filepath.Base(name), "tracks.json")
}
