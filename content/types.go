// Package content resolves blog posts from markdown files or from a SQLite
// content index and hands them to the views as plain records.
package content

import (
	"context"
	"time"
)

// PostSummary is what the index page needs to list a post without its body.
// Only Slug is required; views substitute defaults for the other fields.
type PostSummary struct {
	Slug               string
	Title              string
	Date               string // preformatted for display
	Description        string // front matter description, shown instead of the excerpt
	ExcerptHTML        string
	Thumbnail          Maybe[Thumbnail]
	ReadingTimeMinutes int
	PublishedAt        time.Time // zero when the post has no parseable date
	Tags               []string
}

// Thumbnail is an image shown next to a post summary.
type Thumbnail struct {
	Src    string // public URL
	Source string // image file on disk the thumbnail is generated from
	Alt    string
	Width  int
	Height int
}

// Post is a full post.
type Post struct {
	PostSummary
	BodyHTML string
}

// Author describes the blog's author for the bio card.
type Author struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Summary string `mapstructure:"summary" yaml:"summary"`
	Avatar  string `mapstructure:"avatar" yaml:"avatar"`
}

// SiteMeta is site-wide metadata shared by every page.
type SiteMeta struct {
	Title       string
	Description string
	SiteURL     string
	Author      Author
	Social      map[string]string // platform name -> handle or URL
}

// Source supplies resolved posts to the site.
type Source interface {
	// Posts returns published posts, newest first.
	Posts(ctx context.Context) ([]PostSummary, error)
	// Post returns one published post or ErrNotFound.
	Post(ctx context.Context, slug string) (Post, error)
}
