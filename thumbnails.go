package quill

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/quill/content"
)

const thumbnailQuality = 90

// MakeThumbnail decodes an image from src, crops the centered square and
// scales it to size×size. The result is JPEG encoded.
func MakeThumbnail(src io.Reader, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("thumbnail size %d: must be positive", size)
	}
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	side := min(bounds.Dx(), bounds.Dy())
	crop := image.Rect(0, 0, side, side).Add(image.Point{
		X: bounds.Min.X + (bounds.Dx()-side)/2,
		Y: bounds.Min.Y + (bounds.Dy()-side)/2,
	})

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailFile renders the thumbnail of one post from its source image.
func thumbnailFile(thumb content.Thumbnail, fallbackSize int) ([]byte, error) {
	f, err := os.Open(thumb.Source)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	size := thumb.Width
	if size <= 0 {
		size = fallbackSize
	}
	return MakeThumbnail(f, size)
}

// thumbnailCache keeps encoded thumbnails by slug.
type thumbnailCache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func newThumbnailCache() *thumbnailCache {
	return &thumbnailCache{data: make(map[string][]byte)}
}

func (c *thumbnailCache) get(slug string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.data[slug]
	return b, ok
}

func (c *thumbnailCache) put(slug string, b []byte) {
	c.mu.Lock()
	c.data[slug] = b
	c.mu.Unlock()
}

// Invalidate drops every cached thumbnail.
func (c *thumbnailCache) Invalidate() {
	c.mu.Lock()
	c.data = make(map[string][]byte)
	c.mu.Unlock()
}

func (a *App) handleThumbnail(c echo.Context) error {
	file := c.Param("file")
	slug, ok := strings.CutSuffix(file, ".jpg")
	if !ok || slug == "" {
		return echo.ErrNotFound
	}
	if b, ok := a.thumbs.get(slug); ok {
		return c.Blob(http.StatusOK, "image/jpeg", b)
	}

	post, err := a.Cache.Post(c.Request().Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	thumb, ok := post.Thumbnail.Get()
	if !ok || thumb.Source == "" {
		return echo.ErrNotFound
	}

	b, err := thumbnailFile(thumb, a.Config.ThumbnailSize)
	if err != nil {
		return fmt.Errorf("thumbnail %q: %w", slug, err)
	}
	a.thumbs.put(slug, b)
	return c.Blob(http.StatusOK, "image/jpeg", b)
}
