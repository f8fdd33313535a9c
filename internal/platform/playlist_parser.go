package platform

import (
	"bufio"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ytget/lorebox/internal/model"
)

// Playlist conventions
const (
	PlaylistCommentPrefix = "#"
	TracksMarker          = "tracks/"
	FileURIScheme         = "file://"
)

// audioExtPattern matches the extensions stripped from titles
var audioExtPattern = regexp.MustCompile(`(?i)\.(mp3|wav|ogg|m4a)$`)

// ParsePlaylist converts the text of a line oriented playlist (m3u as saved by
// common media players) into tracks rooted below the tracks directory.
//
// Blank and comment lines are skipped. Entries that already contain a tracks/
// segment keep everything from its last occurrence; any other entry is reduced
// to its base name and re-rooted as tracks/<base>.
func ParsePlaylist(text string) []model.Track {
	var tracks []model.Track

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if track, ok := ParsePlaylistLine(scanner.Text()); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

// ParsePlaylistLine converts one playlist line into a track
func ParsePlaylistLine(raw string) (model.Track, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, PlaylistCommentPrefix) {
		return model.Track{}, false
	}

	// file:// URIs are percent encoded by most players
	if strings.HasPrefix(strings.ToLower(line), FileURIScheme) {
		line = line[len(FileURIScheme):]
		if unescaped, err := url.PathUnescape(line); err == nil {
			line = unescaped
		}
	}

	file := strings.ReplaceAll(line, "\\", "/")

	if idx := strings.LastIndex(file, TracksMarker); idx != -1 {
		file = file[idx:]
	} else {
		base := baseName(file)
		if base == "" {
			return model.Track{}, false
		}
		file = TracksMarker + base
	}

	return model.Track{
		Title: TitleFromFile(file),
		File:  file,
	}, true
}

// TitleFromFile derives a display title from a media path: the base name with
// the audio extension removed, NFC normalized
func TitleFromFile(file string) string {
	title := audioExtPattern.ReplaceAllString(baseName(file), "")
	return norm.NFC.String(title)
}

// baseName returns the last slash separated segment, which may be empty
func baseName(p string) string {
	if idx := strings.LastIndex(p, "/"); idx != -1 {
		return p[idx+1:]
	}
	return p
}
