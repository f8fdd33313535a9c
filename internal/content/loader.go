package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/platform"
)

// Default content locations relative to the origin
const (
	DefaultLoreManifest   = "content/lore.json"
	DefaultLegacyDir      = "content/lore/"
	DefaultPlaylist       = "assets/playlist.m3u"
	DefaultTracksManifest = "assets/tracks.json"
)

// DefaultMaxParallel bounds concurrent fetches of legacy lore files
const DefaultMaxParallel = 4

// Options configures where the loader looks for content
type Options struct {
	LoreManifest   string
	LegacyDir      string
	Legacy         bool
	Playlist       string
	TracksManifest string

	// Defaults applied in playlist mode and for missing manifest fields
	RotationMinutes int
	FeaturedCount   int

	MaxParallel int
}

// DefaultOptions returns the stock content layout
func DefaultOptions() Options {
	return Options{
		LoreManifest:    DefaultLoreManifest,
		LegacyDir:       DefaultLegacyDir,
		Legacy:          true,
		Playlist:        DefaultPlaylist,
		TracksManifest:  DefaultTracksManifest,
		RotationMinutes: model.DefaultRotationMinutes,
		FeaturedCount:   model.DefaultFeaturedCount,
		MaxParallel:     DefaultMaxParallel,
	}
}

// Service loads content from a platform.Source
type Service struct {
	source platform.Source
	opts   Options
	log    *logging.Logger
}

var _ Loader = (*Service)(nil)

// NewService creates a new content loader
func NewService(source platform.Source, opts Options, log *logging.Logger) *Service {
	defaults := DefaultOptions()
	if opts.LoreManifest == "" {
		opts.LoreManifest = defaults.LoreManifest
	}
	if opts.LegacyDir == "" {
		opts.LegacyDir = defaults.LegacyDir
	}
	if opts.Playlist == "" {
		opts.Playlist = defaults.Playlist
	}
	if opts.TracksManifest == "" {
		opts.TracksManifest = defaults.TracksManifest
	}
	if opts.RotationMinutes == 0 {
		opts.RotationMinutes = defaults.RotationMinutes
	}
	if opts.FeaturedCount == 0 {
		opts.FeaturedCount = defaults.FeaturedCount
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = defaults.MaxParallel
	}

	return &Service{
		source: source,
		opts:   opts,
		log:    logging.OrNop(log),
	}
}

// Source returns the content source the loader reads from
func (s *Service) Source() platform.Source {
	return s.source
}

// LoadAll loads the lore book and the music pool concurrently
func (s *Service) LoadAll(ctx context.Context) (model.Lore, model.Library) {
	var (
		lore    model.Lore
		library model.Library
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lore = s.LoadLore(gctx)
		return nil
	})
	g.Go(func() error {
		library = s.LoadMusic(gctx)
		return nil
	})
	_ = g.Wait() // loaders substitute defaults instead of failing

	return lore, library
}

// decodeJSON decodes data keeping numbers as json.Number
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// scalarString stringifies a JSON scalar. Missing values, objects and arrays
// become the empty string.
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

var leadingIntPattern = regexp.MustCompile(`^\s*([+-]?\d+)`)

// parseIntLoose reads an integer the way a lenient parser would: numbers are
// truncated and strings use their leading digits
func parseIntLoose(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	case string:
		m := leadingIntPattern.FindStringSubmatch(x)
		if m == nil {
			return 0, false
		}
		i, err := strconv.Atoi(m[1])
		return i, err == nil
	default:
		return 0, false
	}
}

// parseNumber reads a JSON number or a fully numeric string
func parseNumber(v any) (int, bool) {
	switch x := v.(type) {
	case json.Number:
		return parseIntLoose(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// errorf wraps loader errors with the content path
func errorf(p string, err error) error {
	return fmt.Errorf("load %s: %w", p, err)
}
