package lore

// Package lore implements the two page lore book: a circular cursor over the
// loaded pages for each half, and a renderer that turns authored blocks into
// surface independent nodes.
