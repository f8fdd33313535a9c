package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (symbols)
const (
	IconSettings = "⚙"
	IconPrev     = "◀"
	IconNext     = "▶"
	IconClose    = "×"
	IconReload   = "⟳"
	IconSlot     = "ᛟ"
	IconVideo    = "🎬"
)

// Text fragments
const (
	PageLabelFormat     = "pg %d"
	PageMissingLabel    = "-"
	SlotTooltipFormat   = "Play %s"
	PlaceholderText     = "·"
	ProgressLabelFormat = "%.1f%%"
)

// Layout sizing
const (
	BookMinWidth  float32 = 640
	BookMinHeight float32 = 420
	HalfSplit             = 0.5

	SlotButtonMinWidth float32 = 56
	RuneLayerHeight    float32 = 260
	GlyphTextSize      float32 = 22

	ImageMinHeight float32 = 160

	// Touch target minimum size (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Notice bar behavior
const (
	NoticeAutoHide = 3200 * time.Millisecond
)

// Glyph fade out
const (
	GlyphFadeDuration = 400 * time.Millisecond
)
