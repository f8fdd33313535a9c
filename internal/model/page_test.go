package model

import (
	"testing"
	"time"
)

func TestBlockDefaults(t *testing.T) {
	b := Block{}
	if b.EffectiveType() != BlockText {
		t.Errorf("EffectiveType() = %s, expected text", b.EffectiveType())
	}
	if b.EffectiveSide() != SideLeft {
		t.Errorf("EffectiveSide() = %s, expected left", b.EffectiveSide())
	}

	b = Block{Type: BlockVideo, Side: SideRight}
	if b.EffectiveType() != BlockVideo || b.EffectiveSide() != SideRight {
		t.Errorf("explicit values should be kept, got %s/%s", b.EffectiveType(), b.EffectiveSide())
	}
}

func TestPageBlocksOn(t *testing.T) {
	page := Page{Pg: 3, Blocks: []Block{
		{Type: BlockText, Text: "a"},
		{Type: BlockImage, Side: SideRight, Src: "b.png"},
		{Type: BlockText, Side: SideLeft, Text: "c"},
		{Type: BlockText, Side: Side("top"), Text: "d"},
	}}

	left := page.BlocksOn(SideLeft)
	if len(left) != 2 || left[0].Text != "a" || left[1].Text != "c" {
		t.Errorf("unexpected left blocks: %+v", left)
	}

	right := page.BlocksOn(SideRight)
	if len(right) != 1 || right[0].Src != "b.png" {
		t.Errorf("unexpected right blocks: %+v", right)
	}
}

func TestSortPagesIsStable(t *testing.T) {
	pages := []Page{
		{Pg: 3, Blocks: []Block{{Text: "three"}}},
		{Pg: 1, Blocks: []Block{{Text: "one-a"}}},
		{Pg: 2},
		{Pg: 1, Blocks: []Block{{Text: "one-b"}}},
	}

	SortPages(pages)

	expected := []int{1, 1, 2, 3}
	for i, pg := range expected {
		if pages[i].Pg != pg {
			t.Fatalf("pages[%d].Pg = %d, expected %d", i, pages[i].Pg, pg)
		}
	}
	if pages[0].Blocks[0].Text != "one-a" || pages[1].Blocks[0].Text != "one-b" {
		t.Error("duplicate page numbers should keep loaded order")
	}
}

func TestFallbackLore(t *testing.T) {
	lore := FallbackLore()
	if len(lore.Pages) != 1 || lore.Pages[0].Pg != 1 || len(lore.Pages[0].Blocks) != 0 {
		t.Errorf("unexpected fallback lore: %+v", lore)
	}
	if lore.Format != LoreFormatFallback {
		t.Errorf("Format = %s, expected fallback", lore.Format)
	}
}

func TestTrackDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		track    *Track
		slot     int
		expected string
	}{
		{name: "title wins", track: &Track{Title: "Song", File: "tracks/a.mp3"}, slot: 0, expected: "Song"},
		{name: "empty title", track: &Track{File: "tracks/a.mp3"}, slot: 2, expected: "Track 3"},
		{name: "nil track", track: nil, slot: 6, expected: "Track 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.DisplayTitle(tt.slot); got != tt.expected {
				t.Errorf("DisplayTitle() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestTrackPlayable(t *testing.T) {
	var missing *Track
	if missing.Playable() {
		t.Error("nil track should not be playable")
	}
	if (&Track{Title: "x"}).Playable() {
		t.Error("track without file should not be playable")
	}
	if !(&Track{File: "tracks/x.mp3"}).Playable() {
		t.Error("track with file should be playable")
	}
}

func TestClampFeaturedCount(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {4, 4}, {7, 7}, {12, 7},
	}
	for _, tt := range tests {
		if got := ClampFeaturedCount(tt.in); got != tt.expected {
			t.Errorf("ClampFeaturedCount(%d) = %d, expected %d", tt.in, got, tt.expected)
		}
	}
}

func TestRotationInterval(t *testing.T) {
	if got := (Library{RotationMinutes: 0}).RotationInterval(); got != time.Minute {
		t.Errorf("RotationInterval() = %v, expected 1m minimum", got)
	}
	if got := (Library{RotationMinutes: 30}).RotationInterval(); got != 30*time.Minute {
		t.Errorf("RotationInterval() = %v, expected 30m", got)
	}
}
