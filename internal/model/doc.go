package model

// Package model defines domain data structures shared by the lore book and the
// music box: pages and their blocks, tracks and the music library, and the
// enums that describe block kinds, page sides and audio playback state.
