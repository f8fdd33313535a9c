package ui

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/music"
)

// MusicBoxView is the music box surface. It implements music.View; every
// call may come from the controller goroutine and is marshalled with fyne.Do.
type MusicBoxView struct {
	texts  *Localization
	log    *logging.Logger
	post   func(music.Msg)
	notify func(music.Notice)

	slotBox *fyne.Container
	buttons []*widget.Button
	active  int

	popup *fyne.Container
	title *widget.Label
	bar   *widget.ProgressBar

	runeLayer *fyne.Container
	glyphsMu  sync.Mutex
	glyphs    map[string]*canvas.Text
	effectsOn bool

	content fyne.CanvasObject
}

var _ music.View = (*MusicBoxView)(nil)

// NewMusicBoxView builds the music box widgets. post receives slot clicks,
// notify shows notices in the window wide notice bar.
func NewMusicBoxView(texts *Localization, post func(music.Msg), notify func(music.Notice), log *logging.Logger) *MusicBoxView {
	v := &MusicBoxView{
		texts:  texts,
		log:    logging.OrNop(log),
		post:   post,
		notify: notify,
		active: music.NoSlot,
		glyphs: make(map[string]*canvas.Text),
	}
	v.createUI()
	return v
}

// Content returns the root canvas object of the music box
func (v *MusicBoxView) Content() fyne.CanvasObject {
	return v.content
}

func (v *MusicBoxView) createUI() {
	v.slotBox = container.NewGridWrap(fyne.NewSize(SlotButtonMinWidth*3, MinTouchTargetSize))

	v.title = widget.NewLabel(v.texts.GetText(KeyNothingPlaying))
	v.title.Alignment = fyne.TextAlignCenter
	v.title.Truncation = fyne.TextTruncateEllipsis

	v.bar = widget.NewProgressBar()
	v.bar.Max = 100
	v.bar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, v.bar.Value)
	}

	v.popup = container.NewVBox(v.title, v.bar)
	v.popup.Hide()

	backdrop := canvas.NewRectangle(color.NRGBA{R: 0x0b, G: 0x10, B: 0x1e, A: 0xff})
	backdrop.SetMinSize(fyne.NewSize(BookMinWidth, RuneLayerHeight))
	v.runeLayer = container.NewWithoutLayout()

	stage := container.NewStack(backdrop, v.runeLayer)
	v.content = container.NewBorder(v.popup, container.NewVScroll(v.slotBox), nil, nil, stage)
}

// SetSlots relabels the slot buttons
func (v *MusicBoxView) SetSlots(slots []*model.Track) {
	labels := make([]string, len(slots))
	for i, track := range slots {
		labels[i] = IconSlot + " " + track.DisplayTitle(i)
	}

	fyne.Do(func() {
		v.buttons = make([]*widget.Button, len(labels))
		objects := make([]fyne.CanvasObject, len(labels))
		for i, label := range labels {
			slot := i
			btn := widget.NewButton(label, func() { v.clicked(slot) })
			btn.Alignment = widget.ButtonAlignLeading
			v.buttons[i] = btn
			objects[i] = btn
		}
		v.slotBox.Objects = objects
		v.slotBox.Refresh()
		v.applyActive()
	})
}

func (v *MusicBoxView) clicked(slot int) {
	if v.post != nil {
		v.post(music.SlotClicked{Slot: slot})
	}
}

// MarkActive highlights one slot button
func (v *MusicBoxView) MarkActive(slot int) {
	fyne.Do(func() {
		v.active = slot
		v.applyActive()
	})
}

// applyActive must run on the UI thread
func (v *MusicBoxView) applyActive() {
	for i, btn := range v.buttons {
		want := widget.MediumImportance
		if i == v.active {
			want = widget.HighImportance
		}
		if btn.Importance != want {
			btn.Importance = want
			btn.Refresh()
		}
	}
}

// Flash pulses a slot button for FlashDuration
func (v *MusicBoxView) Flash(slot int) {
	fyne.Do(func() {
		btn := v.button(slot)
		if btn == nil {
			return
		}
		btn.Importance = widget.DangerImportance
		btn.Refresh()
	})

	time.AfterFunc(music.FlashDuration, func() {
		fyne.Do(v.applyActive)
	})
}

func (v *MusicBoxView) button(slot int) *widget.Button {
	if slot < 0 || slot >= len(v.buttons) {
		return nil
	}
	return v.buttons[slot]
}

// Notify forwards the notice to the notice bar
func (v *MusicBoxView) Notify(n music.Notice) {
	if v.notify != nil {
		v.notify(n)
	}
}

// ShowProgress opens the progress popup for a track
func (v *MusicBoxView) ShowProgress(title string) {
	if title == "" {
		title = v.texts.GetText(KeyUnknownTrack)
	}
	fyne.Do(func() {
		v.title.SetText(title)
		v.bar.SetValue(0)
		v.popup.Show()
	})
}

// SetProgress moves the progress bar, percent is in [0,100]
func (v *MusicBoxView) SetProgress(percent float64) {
	fyne.Do(func() {
		v.bar.SetValue(percent)
	})
}

// HideProgress closes the progress popup
func (v *MusicBoxView) HideProgress() {
	fyne.Do(func() {
		v.popup.Hide()
		v.title.SetText(v.texts.GetText(KeyNothingPlaying))
	})
}

// SetEffectsActive starts or stops the rune layer. Stopping clears it.
func (v *MusicBoxView) SetEffectsActive(active bool) {
	fyne.Do(func() {
		v.effectsOn = active
		if active {
			return
		}
		v.glyphsMu.Lock()
		clear(v.glyphs)
		v.glyphsMu.Unlock()
		v.runeLayer.Objects = nil
		v.runeLayer.Refresh()
	})
}

// SpawnGlyphs adds a burst of drifting runes to the layer
func (v *MusicBoxView) SpawnGlyphs(glyphs []music.Glyph) {
	fyne.Do(func() {
		if !v.effectsOn {
			return
		}
		for _, g := range glyphs {
			v.spawn(g)
		}
	})
}

func (v *MusicBoxView) spawn(g music.Glyph) {
	size := v.runeLayer.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = fyne.NewSize(BookMinWidth, RuneLayerHeight)
	}

	text := canvas.NewText(string(g.Rune), g.Color)
	text.TextSize = GlyphTextSize
	text.Resize(text.MinSize())

	start := fyne.NewPos(size.Width*float32(g.X)/100, size.Height*float32(g.Y)/100)
	stop := start.Add(fyne.NewPos(float32(g.DX), float32(g.DY)))
	text.Move(start)

	v.glyphsMu.Lock()
	v.glyphs[g.ID] = text
	v.glyphsMu.Unlock()
	v.runeLayer.Add(text)

	canvas.NewPositionAnimation(start, stop, g.Lifetime, text.Move).Start()

	faded := g.Color
	faded.A = 0
	fade := canvas.NewColorRGBAAnimation(g.Color, faded, GlyphFadeDuration, func(c color.Color) {
		text.Color = c
		text.Refresh()
	})
	if delay := g.Lifetime - GlyphFadeDuration; delay > 0 {
		time.AfterFunc(delay, func() { fyne.Do(fade.Start) })
	} else {
		fade.Start()
	}

	time.AfterFunc(g.RemoveAfter(), func() {
		fyne.Do(func() { v.removeGlyph(g.ID) })
	})
}

func (v *MusicBoxView) removeGlyph(id string) {
	v.glyphsMu.Lock()
	text, ok := v.glyphs[id]
	delete(v.glyphs, id)
	v.glyphsMu.Unlock()

	if ok {
		v.runeLayer.Remove(text)
	}
}

// GlyphCount returns the number of runes on the layer
func (v *MusicBoxView) GlyphCount() int {
	v.glyphsMu.Lock()
	defer v.glyphsMu.Unlock()
	return len(v.glyphs)
}

// SlotButtons returns the current slot buttons
func (v *MusicBoxView) SlotButtons() []*widget.Button {
	return v.buttons
}

// ProgressVisible reports whether the progress popup is shown
func (v *MusicBoxView) ProgressVisible() bool {
	return v.popup.Visible()
}

// Progress returns the progress bar value and the popup title
func (v *MusicBoxView) Progress() (float64, string) {
	return v.bar.Value, v.title.Text
}
