package music

// Package music implements the music box: the feature rotator that maps part
// of the track pool onto a fixed set of slots, the playback controller state
// machine, and the rune effects shown while audio plays.
//
// The controller is driven by messages. UI callbacks and the audio element
// post messages; a single goroutine running Controller.Run applies them and
// owns every periodic timer.
