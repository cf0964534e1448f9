package content

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/eringen/quill/markdown"
)

// DisplayDateFormat is how post dates are shown on pages.
const DisplayDateFormat = "January 02, 2006"

var dateFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Media       string   `yaml:"media"`
	MediaAlt    string   `yaml:"mediaAlt"`
}

// FileSource reads posts from markdown files under a content directory.
// A post is either <dir>/<slug>/index.md or <dir>/<slug>.md. Every call
// re-reads the directory; wrap it in a cache for serving.
type FileSource struct {
	dir         string
	thumbPrefix string
	thumbSize   int
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithThumbnailPrefix sets the URL prefix of generated thumbnails (default "/thumbs/").
func WithThumbnailPrefix(prefix string) FileOption {
	return func(s *FileSource) {
		s.thumbPrefix = prefix
	}
}

// WithThumbnailSize sets the rendered thumbnail edge length in px (default 100).
func WithThumbnailSize(px int) FileOption {
	return func(s *FileSource) {
		s.thumbSize = px
	}
}

// NewFileSource returns a FileSource rooted at dir.
func NewFileSource(dir string, opts ...FileOption) *FileSource {
	s := &FileSource{dir: dir, thumbPrefix: "/thumbs/", thumbSize: 100}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the content directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// Load reads every published post, newest first.
func (s *FileSource) Load(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}
		post, ok, err := s.readPost(path)
		if err != nil {
			return err
		}
		if ok {
			posts = append(posts, post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", s.dir, err)
	}

	summaries := make([]PostSummary, len(posts))
	for i := range posts {
		summaries[i] = posts[i].PostSummary
	}
	if err := ValidatePosts(summaries); err != nil {
		return nil, fmt.Errorf("load content from %s: %w", s.dir, err)
	}
	sortPosts(posts)
	return posts, nil
}

// Posts implements Source.
func (s *FileSource) Posts(ctx context.Context) ([]PostSummary, error) {
	posts, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PostSummary, len(posts))
	for i := range posts {
		out[i] = posts[i].PostSummary
	}
	return out, nil
}

// Post implements Source.
func (s *FileSource) Post(ctx context.Context, slug string) (Post, error) {
	posts, err := s.Load(ctx)
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// readPost parses one markdown file. ok is false for drafts.
func (s *FileSource) readPost(path string) (Post, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Post{}, false, &LoadError{Op: "content.read", Path: path, Err: err}
	}
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Post{}, false, &LoadError{Op: "content.front_matter", Path: path, Err: err}
	}
	if fm.Draft {
		return Post{}, false, nil
	}

	slug := Slugify(fm.Slug)
	if slug == "" {
		slug = slugFromPath(path)
	}
	if slug == "" {
		return Post{}, false, &LoadError{Op: "content.slug", Path: path, Err: ErrEmptySlug}
	}

	bodyHTML, err := markdown.ToHTML(body)
	if err != nil {
		return Post{}, false, &LoadError{Op: "content.markdown", Path: path, Err: err}
	}

	summary := PostSummary{
		Slug:               slug,
		Title:              strings.TrimSpace(fm.Title),
		Description:        strings.TrimSpace(fm.Description),
		ExcerptHTML:        html.EscapeString(markdown.Excerpt(body)),
		ReadingTimeMinutes: markdown.ReadingTime(body),
		Tags:               cleanTags(fm.Tags),
	}
	summary.Date, summary.PublishedAt = parseDate(fm.Date)

	if media := strings.TrimSpace(fm.Media); media != "" {
		thumb, err := s.thumbnail(path, slug, media)
		if err != nil {
			return Post{}, false, &LoadError{Op: "content.media", Path: path, Err: err}
		}
		thumb.Alt = firstNonEmpty(fm.MediaAlt, summary.Title, slug)
		summary.Thumbnail = Some(thumb)
	}

	return Post{PostSummary: summary, BodyHTML: bodyHTML}, true, nil
}

func (s *FileSource) thumbnail(postPath, slug, media string) (Thumbnail, error) {
	if markdown.SafeURL(media) != "" && strings.Contains(media, "://") {
		return Thumbnail{Src: media, Width: s.thumbSize, Height: s.thumbSize}, nil
	}
	source := media
	if !filepath.IsAbs(source) {
		source = filepath.Join(filepath.Dir(postPath), media)
	}
	if _, err := os.Stat(source); err != nil {
		return Thumbnail{}, err
	}
	return Thumbnail{
		Src:    s.thumbPrefix + slug + ".jpg",
		Source: source,
		Width:  s.thumbSize,
		Height: s.thumbSize,
	}, nil
}

// parseDate returns the display date and the parsed time. Unparseable dates
// are displayed as written and sort last.
func parseDate(raw string) (string, time.Time) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DisplayDateFormat), t
		}
	}
	return raw, time.Time{}
}

func slugFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.EqualFold(name, "index") {
		name = filepath.Base(filepath.Dir(path))
	}
	return Slugify(name)
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
