package content

import "errors"

var (
	errNotObject       = errors.New("document is not an object")
	errPagesNotArray   = errors.New("pages is not an array")
	errNoLegacyPages   = errors.New("no pages with front matter")
	errNoPlaylistItems = errors.New("playlist has no usable entries")
)
