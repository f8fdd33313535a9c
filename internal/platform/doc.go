package platform

// Package platform contains the glue to the outside world: reading static site
// content from an http(s) origin or a local directory, parsing directory
// listings, playlists and Markdown front matter, and watching local content
// for changes.
