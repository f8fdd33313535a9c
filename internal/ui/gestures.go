package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// ClassifyGesture turns a pointer movement into a gesture. Movement shorter
// than threshold is a tap, or a long press when held long enough.
func ClassifyGesture(dx, dy float32, held time.Duration, threshold float32) GestureType {
	absDx, absDy := abs32(dx), abs32(dy)

	if absDx < threshold && absDy < threshold {
		if held >= DefaultLongPressDuration {
			return GestureLongPress
		}
		return GestureTap
	}

	// Determine primary direction
	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// SwipeArea wraps content and reports swipes made with a mouse drag or a touch
type SwipeArea struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	onGesture func(GestureType)
	threshold float32

	// Drag tracking
	dragging bool
	started  time.Time
	dx, dy   float32
	touchPos fyne.Position
}

var (
	_ fyne.Draggable    = (*SwipeArea)(nil)
	_ mobile.Touchable  = (*SwipeArea)(nil)
	_ fyne.CanvasObject = (*SwipeArea)(nil)
)

// NewSwipeArea creates a new swipe area around content
func NewSwipeArea(content fyne.CanvasObject, onGesture func(GestureType)) *SwipeArea {
	s := &SwipeArea{
		content:   content,
		onGesture: onGesture,
		threshold: DefaultSwipeThreshold,
	}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer draws the wrapped content
func (s *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// Dragged accumulates mouse drag movement
func (s *SwipeArea) Dragged(event *fyne.DragEvent) {
	if !s.dragging {
		s.dragging = true
		s.started = time.Now()
		s.dx, s.dy = 0, 0
	}
	s.dx += event.Dragged.DX
	s.dy += event.Dragged.DY
}

// DragEnd classifies the finished drag
func (s *SwipeArea) DragEnd() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.trigger(ClassifyGesture(s.dx, s.dy, time.Since(s.started), s.threshold))
}

// TouchDown handles touch down events for gesture detection
func (s *SwipeArea) TouchDown(event *mobile.TouchEvent) {
	s.started = time.Now()
	s.touchPos = event.Position
}

// TouchUp handles touch up events for gesture detection
func (s *SwipeArea) TouchUp(event *mobile.TouchEvent) {
	dx := event.Position.X - s.touchPos.X
	dy := event.Position.Y - s.touchPos.Y
	s.trigger(ClassifyGesture(dx, dy, time.Since(s.started), s.threshold))
}

// TouchCancel handles touch cancel events
func (s *SwipeArea) TouchCancel(*mobile.TouchEvent) {
	s.started = time.Time{}
}

// trigger reports a gesture to the callback
func (s *SwipeArea) trigger(gesture GestureType) {
	if s.onGesture != nil && gesture != GestureNone {
		s.onGesture(gesture)
	}
}
