package content

import (
	"context"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/lorebox/internal/model"
	"github.com/ytget/lorebox/internal/platform"
)

// MarkdownExt is the extension of legacy lore entries
const MarkdownExt = ".md"

// loadLegacyLore rebuilds the book from content/lore/*.md front matter.
//
// Deprecated: kept for sites that have not published a lore manifest yet.
func (s *Service) loadLegacyLore(ctx context.Context) model.Lore {
	pages, err := s.LoadLegacyPages(ctx)
	if err != nil {
		s.log.Warn("legacy lore unavailable", "dir", s.opts.LegacyDir, "error", err)
		return model.FallbackLore()
	}

	s.log.Info("legacy lore loaded", "pages", len(pages))
	return model.Lore{Pages: pages, Format: model.LoreFormatLegacy}
}

// LoadLegacyPages lists the legacy directory and turns every Markdown file
// with front matter into a single left side text page.
func (s *Service) LoadLegacyPages(ctx context.Context) ([]model.Page, error) {
	links, err := s.source.List(ctx, s.opts.LegacyDir)
	if err != nil {
		return nil, errorf(s.opts.LegacyDir, err)
	}
	files := platform.FilterByExt(links, MarkdownExt)

	// Keep listing order for pages that share a number
	found := make([]*model.Page, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxParallel)

	for i, file := range files {
		g.Go(func() error {
			p := legacyPath(s.opts.LegacyDir, file)
			data, err := s.source.Fetch(gctx, p)
			if err != nil {
				// One unreadable entry does not hide the others
				s.log.Debug("legacy lore entry skipped", "path", p, "error", err)
				return nil
			}

			fm, ok := platform.ParseFrontMatter(data)
			if !ok {
				s.log.Debug("legacy lore entry has no front matter", "path", p)
				return nil
			}

			page := model.Page{
				Pg: fm.Pg,
				Blocks: []model.Block{{
					Type: model.BlockText,
					Side: model.SideLeft,
					Text: fm.Text,
				}},
			}

			mu.Lock()
			found[i] = &page
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pages []model.Page
	for _, page := range found {
		if page != nil {
			pages = append(pages, *page)
		}
	}
	if len(pages) == 0 {
		return nil, errNoLegacyPages
	}

	model.SortPages(pages)
	return pages, nil
}

// legacyPath joins the legacy directory and a listed file name
func legacyPath(dir, file string) string {
	return path.Join(strings.TrimSuffix(dir, "/"), file)
}
