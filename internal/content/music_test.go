package content

import (
	"context"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/ytget/lorebox/internal/model"
)

func TestLoadMusic(t *testing.T) {
	tests := []struct {
		name        string
		files       fstest.MapFS
		wantFormat  model.LibraryFormat
		wantTracks  []model.Track
		wantMinutes int
		wantCount   int
		wantNotice  bool
	}{
		{
			name: "playlist first with configured defaults",
			files: fstest.MapFS{
				"assets/playlist.m3u": {Data: []byte("#EXTM3U\n/music/A.mp3\n")},
				"assets/tracks.json":  {Data: []byte(`{"tracks":[{"title":"B","file":"tracks/b.mp3"}],"featured_count":2}`)},
			},
			wantFormat:  model.LibraryFormatPlaylist,
			wantTracks:  []model.Track{{Title: "A", File: "tracks/A.mp3"}},
			wantMinutes: 30,
			wantCount:   7,
		},
		{
			name: "empty playlist falls through to manifest",
			files: fstest.MapFS{
				"assets/playlist.m3u": {Data: []byte("#EXTM3U\n\n")},
				"assets/tracks.json":  {Data: []byte(`{"tracks":[{"title":"B","file":"tracks/b.mp3"}],"rotation_minutes":"5","featured_count":9}`)},
			},
			wantFormat:  model.LibraryFormatTracks,
			wantTracks:  []model.Track{{Title: "B", File: "tracks/b.mp3"}},
			wantMinutes: 5,
			wantCount:   7,
		},
		{
			name: "missing playlist uses manifest",
			files: fstest.MapFS{
				"assets/tracks.json": {Data: []byte(`{"tracks":[{"title":"B","file":"tracks/b.mp3"}],"rotation_minutes":0,"featured_count":0}`)},
			},
			wantFormat:  model.LibraryFormatTracks,
			wantTracks:  []model.Track{{Title: "B", File: "tracks/b.mp3"}},
			wantMinutes: 1,
			wantCount:   1,
		},
		{
			name:        "nothing loads",
			files:       fstest.MapFS{},
			wantFormat:  model.LibraryFormatNone,
			wantMinutes: 30,
			wantCount:   7,
			wantNotice:  true,
		},
		{
			name: "broken manifest",
			files: fstest.MapFS{
				"assets/tracks.json": {Data: []byte(`{"tracks":`)},
			},
			wantFormat:  model.LibraryFormatNone,
			wantMinutes: 30,
			wantCount:   7,
			wantNotice:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(tt.files, DefaultOptions())

			lib := service.LoadMusic(context.Background())

			if lib.Format != tt.wantFormat {
				t.Errorf("expected format %s, got %s", tt.wantFormat, lib.Format)
			}
			if len(lib.Tracks) != len(tt.wantTracks) || (len(tt.wantTracks) > 0 && !reflect.DeepEqual(lib.Tracks, tt.wantTracks)) {
				t.Errorf("expected tracks %+v, got %+v", tt.wantTracks, lib.Tracks)
			}
			if lib.RotationMinutes != tt.wantMinutes {
				t.Errorf("expected %d rotation minutes, got %d", tt.wantMinutes, lib.RotationMinutes)
			}
			if lib.FeaturedCount != tt.wantCount {
				t.Errorf("expected featured count %d, got %d", tt.wantCount, lib.FeaturedCount)
			}
			if (lib.Notice != "") != tt.wantNotice {
				t.Errorf("expected notice=%v, got %q", tt.wantNotice, lib.Notice)
			}
		})
	}
}

func TestParseTracksManifest(t *testing.T) {
	lib, err := ParseTracksManifest([]byte(`{"tracks":"nope","rotation_minutes":12.9}`), 30, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Tracks) != 0 {
		t.Errorf("expected empty pool, got %d tracks", len(lib.Tracks))
	}
	if lib.RotationMinutes != 12 {
		t.Errorf("expected truncated minutes 12, got %d", lib.RotationMinutes)
	}
	if lib.FeaturedCount != 7 {
		t.Errorf("expected default count 7, got %d", lib.FeaturedCount)
	}
}

func TestLoadAll(t *testing.T) {
	service := newTestService(fstest.MapFS{
		"content/lore.json":   {Data: []byte(`{"pages":[{"pg":1}]}`)},
		"assets/playlist.m3u": {Data: []byte("tracks/a.mp3\ntracks/b.mp3\n")},
	}, DefaultOptions())

	lore, lib := service.LoadAll(context.Background())

	if lore.Format != model.LoreFormatManifest || len(lore.Pages) != 1 {
		t.Errorf("unexpected lore %+v", lore)
	}
	if lib.Format != model.LibraryFormatPlaylist || len(lib.Tracks) != 2 {
		t.Errorf("unexpected library %+v", lib)
	}
}

func TestNewServiceDefaults(t *testing.T) {
	service := NewService(nil, Options{}, nil)

	if service.opts != (Options{
		LoreManifest:    DefaultLoreManifest,
		LegacyDir:       DefaultLegacyDir,
		Playlist:        DefaultPlaylist,
		TracksManifest:  DefaultTracksManifest,
		RotationMinutes: model.DefaultRotationMinutes,
		FeaturedCount:   model.DefaultFeaturedCount,
		MaxParallel:     DefaultMaxParallel,
	}) {
		t.Errorf("unexpected defaults %+v", service.opts)
	}
	if service.log == nil {
		t.Error("expected a no-op logger")
	}
}
