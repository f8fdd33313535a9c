package model

import (
	"sort"
)

// LoreFormat records where a lore book came from
type LoreFormat string

const (
	LoreFormatManifest LoreFormat = "manifest"
	LoreFormatLegacy   LoreFormat = "legacy"
	LoreFormatFallback LoreFormat = "fallback"
)

// Block is an atomic renderable unit within a lore page
type Block struct {
	Type    BlockType `json:"type"`
	Side    Side      `json:"side,omitempty"`
	Text    string    `json:"text,omitempty"`
	Src     string    `json:"src,omitempty"`
	Caption string    `json:"caption,omitempty"`
}

// EffectiveType returns the block type, treating a missing type as text
func (b Block) EffectiveType() BlockType {
	if b.Type == "" {
		return BlockText
	}
	return b.Type
}

// EffectiveSide returns the block side, treating a missing side as left
func (b Block) EffectiveSide() Side {
	if b.Side == "" {
		return SideLeft
	}
	return b.Side
}

// Page is one authored page of the lore book
type Page struct {
	Pg     int     `json:"pg"`
	Blocks []Block `json:"blocks"`
}

// DefaultPage returns the page used when no content could be loaded
func DefaultPage() Page {
	return Page{Pg: 1, Blocks: []Block{}}
}

// BlocksOn returns the blocks that belong to the given side, in authored order
func (p Page) BlocksOn(side Side) []Block {
	var out []Block
	for _, b := range p.Blocks {
		if b.EffectiveSide() == side {
			out = append(out, b)
		}
	}
	return out
}

// Lore is the normalized lore book content
type Lore struct {
	Pages  []Page
	Format LoreFormat
}

// FallbackLore returns the single blank page book
func FallbackLore() Lore {
	return Lore{Pages: []Page{DefaultPage()}, Format: LoreFormatFallback}
}

// SortPages orders pages by page number. Equal numbers keep their loaded order.
func SortPages(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Pg < pages[j].Pg
	})
}
