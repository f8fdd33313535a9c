package lore

import (
	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/model"
)

// Msg is a navigation request
type Msg interface {
	isMsg()
}

// Previous turns the left half back one page
type Previous struct{}

// Next turns the right half forward one page
type Next struct{}

func (Previous) isMsg() {}
func (Next) isMsg()     {}

// View draws one half of the book
type View interface {
	// ShowHalf replaces the content of a half. page is nil past the end.
	ShowHalf(side model.Side, page *model.Page, nodes []Node)
}

// Cue plays the page turn sound, best effort
type Cue interface {
	Play()
}

// Initial cursor positions
const (
	InitialLeft  = 0
	InitialRight = 1
)

// Book holds the pages and the two independent half cursors. It runs on the
// UI thread and is not safe for concurrent use.
type Book struct {
	pages    []model.Page
	left     int
	right    int
	renderer Renderer
	view     View
	cue      Cue
	log      *logging.Logger
}

// NewBook creates an empty book. cue may be nil.
func NewBook(renderer Renderer, view View, cue Cue, log *logging.Logger) *Book {
	return &Book{
		left:     InitialLeft,
		right:    InitialRight,
		renderer: renderer,
		view:     view,
		cue:      cue,
		log:      logging.OrNop(log),
	}
}

// Load replaces the pages, resets both cursors and renders both halves
func (b *Book) Load(pages []model.Page) {
	b.pages = pages
	b.left = InitialLeft
	b.right = InitialRight

	b.log.Debug("lore book loaded", "pages", len(pages))
	b.render(model.SideLeft)
	b.render(model.SideRight)
}

// Handle applies one navigation message. Only the turned half is redrawn.
func (b *Book) Handle(msg Msg) {
	n := b.size()

	switch msg.(type) {
	case Previous:
		b.left = (b.left - 1 + n) % n
		b.playCue()
		b.render(model.SideLeft)
	case Next:
		b.right = (b.right + 1) % n
		b.playCue()
		b.render(model.SideRight)
	}
}

// Cursors returns the left and right page indices
func (b *Book) Cursors() (left, right int) {
	return b.left, b.right
}

// PageCount returns the number of loaded pages
func (b *Book) PageCount() int {
	return len(b.pages)
}

// PageAt returns the page shown on side, or nil when its cursor is past the end
func (b *Book) PageAt(side model.Side) *model.Page {
	idx := b.left
	if side == model.SideRight {
		idx = b.right
	}
	if idx < 0 || idx >= len(b.pages) {
		return nil
	}
	return &b.pages[idx]
}

// size is the modulus for cursor arithmetic, at least 1
func (b *Book) size() int {
	return max(len(b.pages), 1)
}

func (b *Book) render(side model.Side) {
	if b.view == nil {
		return
	}
	page := b.PageAt(side)
	b.view.ShowHalf(side, page, b.renderer.RenderHalf(page, side))
}

func (b *Book) playCue() {
	if b.cue != nil {
		b.cue.Play()
	}
}
