package quill

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/logger"
	"github.com/eringen/quill/typography"
)

// BuildStats counts what a Build wrote.
type BuildStats struct {
	Posts      int
	Thumbnails int
	Assets     int
}

// Build renders the whole site into cfg.OutputDir, replacing its previous
// contents: index.html, <slug>/index.html per post, 404.html, feed.xml,
// sitemap.xml, typography.css, thumbs/<slug>.jpg and a copy of StaticDir
// under public/.
func Build(ctx context.Context, cfg SiteConfig, src content.Source, typo *typography.Typography, opts ...Option) (BuildStats, error) {
	a := New(cfg, src, typo, opts...)
	return a.build(ctx, a.Config.OutputDir)
}

// ErrUnsafeOutputDir is returned by Build when replacing the output directory
// would delete the site's own sources.
var ErrUnsafeOutputDir = errors.New("unsafe output directory")

// build renders into a fresh directory next to out and swaps it in only after
// every file was written, so a failed build leaves the previous output alone.
func (a *App) build(ctx context.Context, out string) (stats BuildStats, err error) {
	if err := checkOutputDir(a.Config, out); err != nil {
		return stats, err
	}
	log := logger.L().With("out", out)

	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return stats, fmt.Errorf("build: %w", err)
	}

	parent := filepath.Dir(filepath.Clean(out))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return stats, fmt.Errorf("build: %w", err)
	}
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(out)+"-build-")
	if err != nil {
		return stats, fmt.Errorf("build: %w", err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()
	if err := os.Chmod(tmp, 0o755); err != nil {
		return stats, fmt.Errorf("build: %w", err)
	}

	stats, err = a.render(ctx, tmp, posts)
	if err != nil {
		return stats, err
	}

	if err := os.RemoveAll(out); err != nil {
		return stats, fmt.Errorf("build: clean %s: %w", out, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		return stats, fmt.Errorf("build: %w", err)
	}
	log.Info("build.done", "posts", stats.Posts, "thumbnails", stats.Thumbnails, "assets", stats.Assets)
	return stats, nil
}

// render writes every page and asset of the site into out.
func (a *App) render(ctx context.Context, out string, posts []content.PostSummary) (BuildStats, error) {
	var stats BuildStats

	if err := writePage(ctx, filepath.Join(out, "index.html"), a.homePage(posts)); err != nil {
		return stats, err
	}

	for _, summary := range posts {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		post, err := a.Cache.Post(ctx, summary.Slug)
		if err != nil {
			return stats, fmt.Errorf("build: post %q: %w", summary.Slug, err)
		}
		prev, next, err := a.Cache.Neighbours(ctx, summary.Slug)
		if err != nil {
			return stats, fmt.Errorf("build: post %q: %w", summary.Slug, err)
		}
		page := filepath.Join(out, summary.Slug, "index.html")
		if err := writePage(ctx, page, a.postPage(post, prev, next)); err != nil {
			return stats, err
		}
		stats.Posts++

		thumb, ok := post.Thumbnail.Get()
		if !ok || thumb.Source == "" {
			continue
		}
		b, err := thumbnailFile(thumb, a.Config.ThumbnailSize)
		if err != nil {
			return stats, fmt.Errorf("build: thumbnail %q: %w", summary.Slug, err)
		}
		if err := writeBytes(filepath.Join(out, "thumbs", summary.Slug+".jpg"), b); err != nil {
			return stats, err
		}
		stats.Thumbnails++
	}

	if err := writePage(ctx, filepath.Join(out, "404.html"), a.notFoundPage("/404.html", nil)); err != nil {
		return stats, err
	}
	if err := writeWith(filepath.Join(out, "feed.xml"), func(w io.Writer) error {
		return writeRSS(w, a.Config, posts)
	}); err != nil {
		return stats, err
	}
	if err := writeWith(filepath.Join(out, "sitemap.xml"), func(w io.Writer) error {
		return writeSitemap(w, a.Config, posts)
	}); err != nil {
		return stats, err
	}
	if err := writeBytes(filepath.Join(out, "typography.css"), []byte(a.stylesheet)); err != nil {
		return stats, err
	}

	n, err := copyDir(a.Config.StaticDir, filepath.Join(out, "public"))
	if err != nil {
		return stats, fmt.Errorf("build: copy static assets: %w", err)
	}
	stats.Assets = n
	return stats, nil
}

// checkOutputDir refuses output directories whose removal would take the
// working directory, a filesystem root or the site's sources with them. It
// also refuses an output inside the static directory, which is copied into it.
func checkOutputDir(cfg SiteConfig, out string) error {
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if absOut == filepath.Dir(absOut) || isWithin(absOut, wd) {
		return fmt.Errorf("build: %w: %s contains the working directory", ErrUnsafeOutputDir, out)
	}

	sources := []struct{ key, path string }{
		{"contentDir", cfg.ContentDir},
		{"staticDir", cfg.StaticDir},
		{"indexPath", cfg.IndexPath},
	}
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		abs, err := filepath.Abs(src.path)
		if err != nil {
			return fmt.Errorf("build: %w", err)
		}
		if isWithin(absOut, abs) {
			return fmt.Errorf("build: %w: %s contains %s %s", ErrUnsafeOutputDir, out, src.key, src.path)
		}
		if src.key == "staticDir" && isWithin(abs, absOut) {
			return fmt.Errorf("build: %w: %s is inside staticDir %s", ErrUnsafeOutputDir, out, src.path)
		}
	}
	return nil
}

// isWithin reports whether path is dir or below it. Both must be absolute.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func writePage(ctx context.Context, path string, cmp templ.Component) error {
	return writeWith(path, func(w io.Writer) error {
		return cmp.Render(ctx, w)
	})
}

func writeBytes(path string, b []byte) error {
	return writeWith(path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

// writeWith creates path and its parent directories and fills it with fn.
func writeWith(path string, fn func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("build: %w", cerr)
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("build: write %s: %w", path, err)
	}
	return nil
}

// copyDir copies the files under src into dst and returns how many it copied.
// A missing src copies nothing.
func copyDir(src, dst string) (int, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeWith(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}
