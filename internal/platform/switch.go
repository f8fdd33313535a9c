package platform

import (
	"context"
	"sync/atomic"
)

// SwitchSource forwards to a source that can be replaced while readers are
// running. Loads already in flight finish against the source they started on.
type SwitchSource struct {
	current atomic.Pointer[Source]
}

// NewSwitchSource creates a switch pointing at src
func NewSwitchSource(src Source) *SwitchSource {
	s := &SwitchSource{}
	s.Set(src)
	return s
}

// Set replaces the underlying source
func (s *SwitchSource) Set(src Source) {
	s.current.Store(&src)
}

// Current returns the underlying source
func (s *SwitchSource) Current() Source {
	return *s.current.Load()
}

func (s *SwitchSource) Fetch(ctx context.Context, p string) ([]byte, error) {
	return s.Current().Fetch(ctx, p)
}

func (s *SwitchSource) List(ctx context.Context, dir string) ([]string, error) {
	return s.Current().List(ctx, dir)
}

func (s *SwitchSource) Origin() string {
	return s.Current().Origin()
}
