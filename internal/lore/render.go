package lore

import (
	"github.com/ytget/lorebox/internal/model"
)

// NodeKind identifies what a surface should draw for a node
type NodeKind int

const (
	// NodePlaceholder fills a half that has nothing to show
	NodePlaceholder NodeKind = iota
	// NodeText is literal text, never interpreted
	NodeText
	// NodeMarkup is text the surface renders as Markdown (legacy mode)
	NodeMarkup
	// NodeImage is a lazily loaded picture
	NodeImage
	// NodeVideo is a playable clip with controls
	NodeVideo
	// NodeEmpty is the container left for unknown block types
	NodeEmpty
)

// String returns a short name for logs and tests
func (k NodeKind) String() string {
	switch k {
	case NodePlaceholder:
		return "placeholder"
	case NodeText:
		return "text"
	case NodeMarkup:
		return "markup"
	case NodeImage:
		return "image"
	case NodeVideo:
		return "video"
	case NodeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Node is one rendered block
type Node struct {
	Kind NodeKind

	// Type is the authored block type, kept verbatim for unknown types
	Type model.BlockType

	Text    string
	Src     string
	Caption string

	// Media hints
	LazyLoad    bool
	Controls    bool
	PlaysInline bool
}

// Renderer converts blocks into nodes
type Renderer struct {
	// LegacyMarkup renders text blocks as Markdown. It lets authored content
	// inject formatting and links, so it is off unless explicitly enabled.
	//
	// Deprecated: use plain text blocks.
	LegacyMarkup bool
}

// Render converts a single block
func (r Renderer) Render(b model.Block) Node {
	blockType := b.EffectiveType()

	// Unknown types keep their container but show nothing
	if !blockType.IsKnown() {
		return Node{Kind: NodeEmpty, Type: blockType}
	}

	node := Node{Type: blockType, Caption: b.Caption}
	if blockType.IsMedia() {
		node.Src = b.Src
	}

	switch blockType {
	case model.BlockText:
		node.Kind = NodeText
		if r.LegacyMarkup {
			node.Kind = NodeMarkup
		}
		node.Text = b.Text
	case model.BlockImage:
		node.Kind = NodeImage
		node.LazyLoad = true
	case model.BlockVideo:
		node.Kind = NodeVideo
		node.Controls = true
		node.PlaysInline = true
	}
	return node
}

func (r Renderer) RenderHalf(page *model.Page, side model.Side) []Node {
	if page == nil {
		return []Node{placeholder()}
	}

	var nodes []Node
	for _, b := range page.BlocksOn(side) {
		nodes = append(nodes, r.Render(b))
	}
	if len(nodes) == 0 {
		return []Node{placeholder()}
	}
	return nodes
}

func placeholder() Node {
	return Node{Kind: NodePlaceholder}
}
