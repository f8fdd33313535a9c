package content

import (
	"context"

	"github.com/ytget/lorebox/internal/model"
)

// LoadLore fetches and normalizes the lore manifest. When the manifest cannot
// be fetched and the legacy layout is enabled, pages are rebuilt from the
// Markdown directory instead.
func (s *Service) LoadLore(ctx context.Context) model.Lore {
	data, err := s.source.Fetch(ctx, s.opts.LoreManifest)
	if err != nil {
		s.log.Warn("lore manifest unavailable", "path", s.opts.LoreManifest, "error", err)
		if s.opts.Legacy {
			return s.loadLegacyLore(ctx)
		}
		return model.FallbackLore()
	}

	pages, err := ParseLoreManifest(data)
	if err != nil {
		s.log.Warn("lore manifest invalid", "path", s.opts.LoreManifest, "error", err)
		return model.FallbackLore()
	}

	s.log.Info("lore loaded", "pages", len(pages))
	return model.Lore{Pages: pages, Format: model.LoreFormatManifest}
}

// ParseLoreManifest decodes {pages:[{pg,blocks:[...]}]} with per entry
// defaults and returns the pages sorted by page number.
func ParseLoreManifest(data []byte) ([]model.Page, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, errorf("lore manifest", err)
	}

	root, ok := v.(map[string]any)
	if !ok {
		return nil, errorf("lore manifest", errNotObject)
	}
	rawPages, ok := root["pages"].([]any)
	if !ok {
		return nil, errorf("lore manifest", errPagesNotArray)
	}

	pages := make([]model.Page, 0, len(rawPages))
	for i, rawPage := range rawPages {
		pages = append(pages, parsePage(i, rawPage))
	}
	model.SortPages(pages)
	return pages, nil
}

// parsePage normalizes one manifest entry
func parsePage(index int, v any) model.Page {
	page := model.Page{Pg: index + 1, Blocks: []model.Block{}}

	entry, ok := v.(map[string]any)
	if !ok {
		return page
	}

	if pg, ok := parseNumber(entry["pg"]); ok {
		page.Pg = pg
	}

	rawBlocks, ok := entry["blocks"].([]any)
	if !ok {
		return page
	}
	for _, rawBlock := range rawBlocks {
		block, ok := rawBlock.(map[string]any)
		if !ok {
			continue
		}
		page.Blocks = append(page.Blocks, model.Block{
			Type:    model.BlockType(scalarString(block["type"])),
			Side:    model.Side(scalarString(block["side"])),
			Text:    scalarString(block["text"]),
			Src:     scalarString(block["src"]),
			Caption: scalarString(block["caption"]),
		})
	}
	return page
}
