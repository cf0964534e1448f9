package quill

import (
	"context"
	"fmt"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/logger"
)

// fileSource returns the markdown source described by cfg.
func fileSource(cfg SiteConfig) *content.FileSource {
	return content.NewFileSource(cfg.ContentDir,
		content.WithThumbnailPrefix(cfg.RootPath()+"thumbs/"),
		content.WithThumbnailSize(cfg.ThumbnailSize),
	)
}

// OpenSource returns the content source selected by cfg.Source: the markdown
// files under ContentDir, or the SQLite index at IndexPath. Close the result
// with App.Close or, for the index, Store.Close.
func OpenSource(cfg SiteConfig) (content.Source, error) {
	cfg.setDefaults()
	switch cfg.Source {
	case SourceFiles:
		return fileSource(cfg), nil
	case SourceIndex:
		s, err := content.OpenStore(cfg.IndexPath)
		if err != nil {
			return nil, fmt.Errorf("open index: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %q or %q)", cfg.Source, SourceFiles, SourceIndex)
	}
}

// Reindex loads every post from ContentDir and replaces the SQLite index with
// them. It returns the number of indexed posts.
func Reindex(ctx context.Context, cfg SiteConfig) (int, error) {
	cfg.setDefaults()
	posts, err := fileSource(cfg).Load(ctx)
	if err != nil {
		return 0, err
	}
	store, err := content.OpenStore(cfg.IndexPath)
	if err != nil {
		return 0, fmt.Errorf("open index: %w", err)
	}
	defer store.Close()

	if err := store.Replace(ctx, posts); err != nil {
		return 0, fmt.Errorf("replace index: %w", err)
	}
	logger.L().Info("index.replaced", "path", cfg.IndexPath, "posts", len(posts))
	return len(posts), nil
}
