package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/music"
)

func newTestMusicView(t *testing.T) (*MusicBoxView, *[]music.Msg, *[]music.Notice) {
	t.Helper()
	test.NewApp()

	var posted []music.Msg
	var notices []music.Notice
	v := NewMusicBoxView(NewLocalization(),
		func(msg music.Msg) { posted = append(posted, msg) },
		func(n music.Notice) { notices = append(notices, n) },
		nil)
	return v, &posted, &notices
}

func TestMusicViewSlots(t *testing.T) {
	v, posted, _ := newTestMusicView(t)

	v.SetSlots([]*model.Track{{Title: "Ballad", File: "tracks/a.mp3"}, nil})

	buttons := v.SlotButtons()
	if len(buttons) != 2 {
		t.Fatalf("Expected 2 slot buttons, got %d", len(buttons))
	}
	if buttons[0].Text != IconSlot+" Ballad" {
		t.Errorf("Expected titled slot, got %q", buttons[0].Text)
	}
	if buttons[1].Text != IconSlot+" Track 2" {
		t.Errorf("Expected fallback title, got %q", buttons[1].Text)
	}

	test.Tap(buttons[1])
	if len(*posted) != 1 {
		t.Fatalf("Expected 1 posted message, got %d", len(*posted))
	}
	if click, ok := (*posted)[0].(music.SlotClicked); !ok || click.Slot != 1 {
		t.Errorf("Expected SlotClicked{1}, got %#v", (*posted)[0])
	}
}

func TestMusicViewMarkActive(t *testing.T) {
	v, _, _ := newTestMusicView(t)
	v.SetSlots([]*model.Track{{Title: "a"}, {Title: "b"}, {Title: "c"}})

	v.MarkActive(1)
	for i, btn := range v.SlotButtons() {
		want := widget.MediumImportance
		if i == 1 {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			t.Errorf("slot %d: expected importance %v, got %v", i, want, btn.Importance)
		}
	}

	v.MarkActive(music.NoSlot)
	for i, btn := range v.SlotButtons() {
		if btn.Importance != widget.MediumImportance {
			t.Errorf("slot %d: expected cleared highlight", i)
		}
	}

	// Relabeling keeps the highlight
	v.MarkActive(2)
	v.SetSlots([]*model.Track{{Title: "d"}, {Title: "e"}, {Title: "f"}})
	if v.SlotButtons()[2].Importance != widget.HighImportance {
		t.Error("Expected highlight to survive relabel")
	}
}

func TestMusicViewProgress(t *testing.T) {
	v, _, _ := newTestMusicView(t)

	if v.ProgressVisible() {
		t.Fatal("Expected progress hidden initially")
	}

	v.ShowProgress("Ballad")
	v.SetProgress(42.5)
	value, title := v.Progress()
	if !v.ProgressVisible() || title != "Ballad" || value != 42.5 {
		t.Errorf("Expected visible progress for Ballad at 42.5, got %v %q %v", v.ProgressVisible(), title, value)
	}

	v.HideProgress()
	if v.ProgressVisible() {
		t.Error("Expected progress hidden")
	}

	v.ShowProgress("")
	if _, title := v.Progress(); title != "Unknown Track" {
		t.Errorf("Expected unknown track title, got %q", title)
	}
}

func TestMusicViewGlyphs(t *testing.T) {
	v, _, _ := newTestMusicView(t)
	glyphs := music.NewEffects(nil).Burst()

	v.SpawnGlyphs(glyphs)
	if v.GlyphCount() != 0 {
		t.Fatalf("Expected no glyphs while effects are off, got %d", v.GlyphCount())
	}

	v.SetEffectsActive(true)
	v.SpawnGlyphs(glyphs)
	if v.GlyphCount() != len(glyphs) {
		t.Errorf("Expected %d glyphs, got %d", len(glyphs), v.GlyphCount())
	}

	v.SetEffectsActive(false)
	if v.GlyphCount() != 0 {
		t.Errorf("Expected glyphs cleared, got %d", v.GlyphCount())
	}
}

func TestMusicViewNotify(t *testing.T) {
	v, _, notices := newTestMusicView(t)

	v.Notify(music.NewNotice("hello"))
	if len(*notices) != 1 || (*notices)[0].Text != "hello" {
		t.Errorf("Expected notice forwarded, got %v", *notices)
	}
}
