package content

import (
	"context"

	"github.com/ytget/lorebox/internal/model"
)

// Loader defines the interface for the content loader.
type Loader interface {
	// LoadLore returns the normalized lore book, falling back to a blank page
	LoadLore(ctx context.Context) model.Lore

	// LoadMusic returns the track pool, with Notice set when nothing loaded
	LoadMusic(ctx context.Context) model.Library

	// LoadAll loads both widgets concurrently
	LoadAll(ctx context.Context) (model.Lore, model.Library)
}
