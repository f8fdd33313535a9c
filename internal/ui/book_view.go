package ui

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/lorebox/internal/logging"
	"github.com/ytget/lorebox/internal/lore"
	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/platform"
)

// MediaResolver turns content paths into something the surface can use
type MediaResolver interface {
	// Fetch reads media bytes
	Fetch(ctx context.Context, p string) ([]byte, error)
	// URL returns an address an external player can open
	URL(p string) (*url.URL, error)
}

// SourceResolver resolves media against a platform.Source
type SourceResolver struct {
	Source platform.Source
}

// Fetch reads media bytes from the source
func (r SourceResolver) Fetch(ctx context.Context, p string) ([]byte, error) {
	return r.Source.Fetch(ctx, p)
}

// URL returns an http(s) URL for remote origins and a file URL for local ones
func (r SourceResolver) URL(p string) (*url.URL, error) {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return u, nil
	}

	source := r.Source
	if sw, ok := source.(*platform.SwitchSource); ok {
		source = sw.Current()
	}

	switch src := source.(type) {
	case *platform.HTTPSource:
		return url.Parse(src.Resolve(p))
	case *platform.DirSource:
		return &url.URL{Scheme: "file", Path: path.Join(src.Root(), p)}, nil
	default:
		return nil, fmt.Errorf("cannot address %q", p)
	}
}

// BookView draws the two halves of the lore book. It implements lore.View.
type BookView struct {
	texts    *Localization
	media    MediaResolver
	log      *logging.Logger
	ctx      context.Context
	openURL  func(*url.URL) error
	onTurn   func(lore.Msg)
	mobileUI *MobileUI

	halves map[model.Side]*fyne.Container
	labels map[model.Side]*widget.Label

	// Lazy image loads are dropped when the half is redrawn first
	mu         sync.Mutex
	generation map[model.Side]int

	content fyne.CanvasObject
}

var _ lore.View = (*BookView)(nil)

// NewBookView builds the book widgets. onTurn receives Previous and Next from
// the buttons and swipes.
func NewBookView(ctx context.Context, texts *Localization, media MediaResolver, openURL func(*url.URL) error, mobileUI *MobileUI, onTurn func(lore.Msg), log *logging.Logger) *BookView {
	v := &BookView{
		texts:      texts,
		media:      media,
		log:        logging.OrNop(log),
		ctx:        ctx,
		openURL:    openURL,
		onTurn:     onTurn,
		mobileUI:   mobileUI,
		halves:     make(map[model.Side]*fyne.Container),
		labels:     make(map[model.Side]*widget.Label),
		generation: make(map[model.Side]int),
	}
	v.createUI()
	return v
}

// Content returns the root canvas object of the book
func (v *BookView) Content() fyne.CanvasObject {
	return v.content
}

// createUI lays out both halves and the page turn buttons
func (v *BookView) createUI() {
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		v.halves[side] = container.NewVBox()
		v.labels[side] = widget.NewLabel(PageMissingLabel)
		v.labels[side].Alignment = fyne.TextAlignCenter
	}

	prevBtn := widget.NewButton(IconPrev, func() { v.turn(lore.Previous{}) })
	nextBtn := widget.NewButton(IconNext, func() { v.turn(lore.Next{}) })

	left := container.NewBorder(nil, container.NewBorder(nil, nil, prevBtn, nil, v.labels[model.SideLeft]), nil, nil,
		container.NewVScroll(v.padded(v.halves[model.SideLeft])))
	right := container.NewBorder(nil, container.NewBorder(nil, nil, nil, nextBtn, v.labels[model.SideRight]), nil, nil,
		container.NewVScroll(v.padded(v.halves[model.SideRight])))

	book := v.mobileUI.BookLayout(left, right)
	v.content = NewSwipeArea(book, v.onGesture)
}

// padded surrounds a half with the device margin
func (v *BookView) padded(half fyne.CanvasObject) fyne.CanvasObject {
	s := v.mobileUI.Spacing()
	return container.New(layout.NewCustomPaddedLayout(s, s, s, s), half)
}

// onGesture maps horizontal swipes to page turns: a swipe to the left moves
// forward like turning a paper page
func (v *BookView) onGesture(g GestureType) {
	switch g {
	case GestureSwipeLeft:
		v.turn(lore.Next{})
	case GestureSwipeRight:
		v.turn(lore.Previous{})
	}
}

func (v *BookView) turn(msg lore.Msg) {
	if v.onTurn != nil {
		v.onTurn(msg)
	}
}

// ShowHalf replaces one half. It must run on the UI thread.
func (v *BookView) ShowHalf(side model.Side, page *model.Page, nodes []lore.Node) {
	half, ok := v.halves[side]
	if !ok {
		return
	}

	v.mu.Lock()
	v.generation[side]++
	gen := v.generation[side]
	v.mu.Unlock()

	objects := make([]fyne.CanvasObject, 0, len(nodes))
	for _, node := range nodes {
		objects = append(objects, v.renderNode(side, gen, node))
	}
	half.Objects = objects
	half.Refresh()

	if page == nil {
		v.labels[side].SetText(PageMissingLabel)
	} else {
		v.labels[side].SetText(fmt.Sprintf(PageLabelFormat, page.Pg))
	}
}

// HalfObjects returns the objects currently drawn on a side
func (v *BookView) HalfObjects(side model.Side) []fyne.CanvasObject {
	if half, ok := v.halves[side]; ok {
		return half.Objects
	}
	return nil
}

// PageLabel returns the page number label text of a side
func (v *BookView) PageLabel(side model.Side) string {
	if label, ok := v.labels[side]; ok {
		return label.Text
	}
	return ""
}

func (v *BookView) renderNode(side model.Side, gen int, node lore.Node) fyne.CanvasObject {
	var body fyne.CanvasObject

	switch node.Kind {
	case lore.NodePlaceholder:
		placeholder := widget.NewLabel(PlaceholderText)
		placeholder.Alignment = fyne.TextAlignCenter
		placeholder.Importance = widget.LowImportance
		return placeholder
	case lore.NodeText:
		// Labels never interpret their text
		label := widget.NewLabel(node.Text)
		label.Wrapping = fyne.TextWrapWord
		body = label
	case lore.NodeMarkup:
		rich := widget.NewRichTextFromMarkdown(node.Text)
		rich.Wrapping = fyne.TextWrapWord
		body = rich
	case lore.NodeImage:
		body = v.renderImage(side, gen, node.Src)
	case lore.NodeVideo:
		body = v.renderVideo(node.Src)
	default:
		return container.NewVBox()
	}

	if node.Caption == "" {
		return body
	}
	caption := widget.NewLabel(node.Caption)
	caption.Wrapping = fyne.TextWrapWord
	caption.TextStyle = fyne.TextStyle{Italic: true}
	caption.Importance = widget.LowImportance
	return container.NewVBox(body, caption)
}

// renderImage returns a frame that is filled once the image has been fetched
func (v *BookView) renderImage(side model.Side, gen int, src string) fyne.CanvasObject {
	frame := container.NewStack(widget.NewProgressBarInfinite())
	if src == "" || v.media == nil {
		frame.Objects = []fyne.CanvasObject{widget.NewLabel(v.texts.GetText(KeyImageFailed))}
		return frame
	}

	go func() {
		data, err := v.media.Fetch(v.ctx, src)

		fyne.Do(func() {
			if !v.current(side, gen) {
				return
			}
			if err != nil {
				v.log.Debug("lore image unavailable", "src", src, "error", err)
				frame.Objects = []fyne.CanvasObject{widget.NewLabel(v.texts.GetText(KeyImageFailed))}
				frame.Refresh()
				return
			}
			img := canvas.NewImageFromResource(bytesResource(path.Base(src), data))
			img.FillMode = canvas.ImageFillContain
			img.SetMinSize(fyne.NewSize(0, ImageMinHeight))
			frame.Objects = []fyne.CanvasObject{img}
			frame.Refresh()
		})
	}()

	return frame
}

// renderVideo links to the clip; playback happens in the system player
func (v *BookView) renderVideo(src string) fyne.CanvasObject {
	label := IconVideo + " " + v.texts.GetText(KeyOpenVideo)

	target, err := v.resolve(src)
	if err != nil {
		v.log.Debug("lore video unavailable", "src", src, "error", err)
		return widget.NewLabel(label)
	}

	link := widget.NewHyperlink(label, target)
	if v.openURL != nil {
		link.OnTapped = func() {
			if err := v.openURL(target); err != nil {
				v.log.Warn("open video failed", "url", target.String(), "error", err)
			}
		}
	}
	return link
}

func (v *BookView) resolve(src string) (*url.URL, error) {
	if src == "" || v.media == nil {
		return nil, fmt.Errorf("no media source")
	}
	return v.media.URL(src)
}

// current reports whether gen is still the latest render of side
func (v *BookView) current(side model.Side, gen int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.generation[side] == gen
}
