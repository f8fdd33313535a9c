package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested content does not exist at the origin
var ErrNotFound = errors.New("content not found")

// Timeout constants
const (
	DefaultFetchTimeout = 10 * time.Second
)

// Request headers
const (
	HeaderCacheControl = "Cache-Control"
	NoCache            = "no-cache"
)

// Source reads static content addressed by slash separated paths relative to
// the site origin.
type Source interface {
	// Fetch returns the full content at p
	Fetch(ctx context.Context, p string) ([]byte, error)

	// List returns the file names found in the directory dir
	List(ctx context.Context, dir string) ([]string, error)

	// Origin returns the origin this source reads from
	Origin() string
}

// NewSource returns an HTTP source for http(s) origins and a directory source
// for everything else.
func NewSource(origin string, timeout time.Duration) (Source, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, fmt.Errorf("empty origin")
	}

	if IsRemoteOrigin(origin) {
		return NewHTTPSource(origin, timeout)
	}
	return NewDirSource(origin)
}

// IsRemoteOrigin returns true for http and https origins
func IsRemoteOrigin(origin string) bool {
	lower := strings.ToLower(strings.TrimSpace(origin))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// HTTPSource fetches content from a web server
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source rooted at the base URL
func NewHTTPSource(base string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse origin %q: %w", base, err)
	}

	// Relative paths resolve below the base only when it ends with a slash
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &HTTPSource{
		base:   u,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Origin returns the base URL
func (s *HTTPSource) Origin() string {
	return s.base.String()
}

// Resolve returns the absolute URL for a relative content path
func (s *HTTPSource) Resolve(p string) string {
	ref := &url.URL{Path: strings.TrimPrefix(p, "/")}
	return s.base.ResolveReference(ref).String()
}

// Fetch performs a GET request that bypasses intermediate caches
func (s *HTTPSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	target := s.Resolve(p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	req.Header.Set(HeaderCacheControl, NoCache)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", target, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	return data, nil
}

// List fetches the server generated index page of dir and returns the linked
// file names
func (s *HTTPSource) List(ctx context.Context, dir string) ([]string, error) {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	data, err := s.Fetch(ctx, dir)
	if err != nil {
		return nil, err
	}

	links, err := ParseListing(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse listing %s: %w", dir, err)
	}
	return links, nil
}

// DirSource reads content from a local directory
type DirSource struct {
	root string
	fsys fs.FS
}

// NewDirSource creates a source rooted at a local directory
func NewDirSource(root string) (*DirSource, error) {
	root = strings.TrimPrefix(root, "file://")

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve origin %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat origin %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("origin %q is not a directory", abs)
	}

	return &DirSource{root: abs, fsys: os.DirFS(abs)}, nil
}

// NewFSSource wraps an arbitrary file system, mostly useful in tests
func NewFSSource(name string, fsys fs.FS) *DirSource {
	return &DirSource{root: name, fsys: fsys}
}

// Origin returns the root directory
func (s *DirSource) Origin() string {
	return s.root
}

// Root returns the local directory path of the source
func (s *DirSource) Root() string {
	return s.root
}

// Fetch reads a file below the root
func (s *DirSource) Fetch(_ context.Context, p string) ([]byte, error) {
	name, err := cleanFSPath(p)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// List returns the regular files of dir in lexical order
func (s *DirSource) List(_ context.Context, dir string) ([]string, error) {
	name, err := cleanFSPath(dir)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("list %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("list %s: %w", name, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// cleanFSPath turns a content path into a valid fs.FS name
func cleanFSPath(p string) (string, error) {
	name := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid content path %q", p)
	}
	return name, nil
}
