package content

// Package content loads the lore book and the music pool from the site origin.
// Loading never fails: missing or malformed manifests are logged and replaced
// with safe defaults, so the widgets always have something to show.
