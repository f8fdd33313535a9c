package content

import (
	"context"

	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/platform"
)

// User facing notices
const (
	NoticeNoLibrary = "No playlist found. Save a playlist as assets/playlist.m3u or add assets/tracks.json."
)

// LoadMusic loads the track pool: the playlist first, then the tracks
// manifest. When both fail the library is empty and carries a notice.
func (s *Service) LoadMusic(ctx context.Context) model.Library {
	lib, err := s.loadPlaylist(ctx)
	if err == nil {
		s.log.Info("playlist loaded", "tracks", len(lib.Tracks))
		return lib
	}
	s.log.Debug("playlist unavailable", "path", s.opts.Playlist, "error", err)

	lib, err = s.loadTracksManifest(ctx)
	if err != nil {
		s.log.Warn("no music library", "playlist", s.opts.Playlist, "tracks", s.opts.TracksManifest, "error", err)
		return model.Library{
			RotationMinutes: model.ClampRotationMinutes(s.opts.RotationMinutes),
			FeaturedCount:   model.ClampFeaturedCount(s.opts.FeaturedCount),
			Format:          model.LibraryFormatNone,
			Notice:          NoticeNoLibrary,
		}
	}

	s.log.Info("tracks manifest loaded", "tracks", len(lib.Tracks))
	return lib
}

// loadPlaylist fetches and parses the playlist. A playlist without usable
// entries counts as a failure so the manifest gets a chance.
func (s *Service) loadPlaylist(ctx context.Context) (model.Library, error) {
	data, err := s.source.Fetch(ctx, s.opts.Playlist)
	if err != nil {
		return model.Library{}, err
	}

	tracks := platform.ParsePlaylist(string(data))
	if len(tracks) == 0 {
		return model.Library{}, errorf(s.opts.Playlist, errNoPlaylistItems)
	}

	return model.Library{
		Tracks:          tracks,
		RotationMinutes: model.ClampRotationMinutes(s.opts.RotationMinutes),
		FeaturedCount:   model.ClampFeaturedCount(s.opts.FeaturedCount),
		Format:          model.LibraryFormatPlaylist,
	}, nil
}

// loadTracksManifest fetches and parses the tracks manifest
func (s *Service) loadTracksManifest(ctx context.Context) (model.Library, error) {
	data, err := s.source.Fetch(ctx, s.opts.TracksManifest)
	if err != nil {
		return model.Library{}, err
	}
	return ParseTracksManifest(data, s.opts.RotationMinutes, s.opts.FeaturedCount)
}

// ParseTracksManifest decodes {tracks:[{title,file}], rotation_minutes?,
// featured_count?}. A tracks field that is not an array yields an empty pool.
func ParseTracksManifest(data []byte, defaultMinutes, defaultCount int) (model.Library, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return model.Library{}, errorf("tracks manifest", err)
	}
	root, ok := v.(map[string]any)
	if !ok {
		return model.Library{}, errorf("tracks manifest", errNotObject)
	}

	lib := model.Library{
		Tracks:          []model.Track{},
		RotationMinutes: defaultMinutes,
		FeaturedCount:   defaultCount,
		Format:          model.LibraryFormatTracks,
	}

	if rawTracks, ok := root["tracks"].([]any); ok {
		for _, rawTrack := range rawTracks {
			entry, ok := rawTrack.(map[string]any)
			if !ok {
				continue
			}
			lib.Tracks = append(lib.Tracks, model.Track{
				Title: scalarString(entry["title"]),
				File:  scalarString(entry["file"]),
			})
		}
	}

	if minutes, ok := parseIntLoose(root["rotation_minutes"]); ok {
		lib.RotationMinutes = minutes
	}
	if count, ok := parseIntLoose(root["featured_count"]); ok {
		lib.FeaturedCount = count
	}
	lib.RotationMinutes = model.ClampRotationMinutes(lib.RotationMinutes)
	lib.FeaturedCount = model.ClampFeaturedCount(lib.FeaturedCount)

	return lib, nil
}
