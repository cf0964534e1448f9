package quill

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eringen/quill/content"
)

// fakeSource serves fixed posts and counts how often it is asked for the list.
type fakeSource struct {
	mu    sync.Mutex
	posts []content.Post
	err   error
	calls int
}

func (f *fakeSource) Posts(ctx context.Context) ([]content.PostSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]content.PostSummary, len(f.posts))
	for i, p := range f.posts {
		out[i] = p.PostSummary
	}
	return out, nil
}

func (f *fakeSource) Post(ctx context.Context, slug string) (content.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, content.ErrNotFound
}

func (f *fakeSource) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testPosts() []content.Post {
	return []content.Post{
		{
			PostSummary: content.PostSummary{
				Slug:               "hello-world",
				Title:              "Hello World",
				Date:               "May 04, 2019",
				ExcerptHTML:        "This is my first post.",
				ReadingTimeMinutes: 1,
				PublishedAt:        time.Date(2019, 5, 4, 22, 12, 3, 0, time.UTC),
				Tags:               []string{"go"},
			},
			BodyHTML: "<p>This is my <strong>first</strong> post.</p>",
		},
		{
			PostSummary: content.PostSummary{
				Slug:        "second-post",
				Description: "A post without a title",
				PublishedAt: time.Date(2018, 1, 10, 0, 0, 0, 0, time.UTC),
			},
			BodyHTML: "<p>Second.</p>",
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// writePNG writes a w×h PNG to path.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}
