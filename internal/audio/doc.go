package audio

// Package audio plays music and sound cues through a shared ebiten audio
// context. Media is fetched from the content source and decoded by extension.
