package views

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
)

// PostEntry is one resolved entry of the post list. Every field holds a
// display value; defaults are already applied.
type PostEntry struct {
	Slug        string
	Title       string
	Date        string
	SummaryHTML string
	ReadingTime int
	Thumbnail   content.Maybe[content.Thumbnail]
}

// IndexDocument is the post list ready for rendering.
type IndexDocument struct {
	SiteTitle string
	Entries   []PostEntry
}

// RenderPostList resolves posts into entries, one per post in the given order.
// A missing title falls back to the slug. The description, escaped, takes
// precedence over the excerpt as the summary.
func RenderPostList(siteTitle string, posts []content.PostSummary) IndexDocument {
	doc := IndexDocument{SiteTitle: siteTitle, Entries: make([]PostEntry, 0, len(posts))}
	for _, p := range posts {
		summary := p.ExcerptHTML
		if d := strings.TrimSpace(p.Description); d != "" {
			summary = html.EscapeString(d)
		}
		doc.Entries = append(doc.Entries, PostEntry{
			Slug:        p.Slug,
			Title:       displayTitle(p),
			Date:        p.Date,
			SummaryHTML: summary,
			ReadingTime: p.ReadingTimeMinutes,
			Thumbnail:   p.Thumbnail,
		})
	}
	return doc
}

// Index renders the home page: the bio card followed by the post list.
func Index(props LayoutProps, site content.SiteMeta, doc IndexDocument) templ.Component {
	return Layout(props, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.component(ctx, Bio(site, props.Typo))
		if h.err != nil {
			return h.err
		}
		return PostList(props, doc).Render(ctx, w)
	}))
}

// PostList renders the entries of doc without the surrounding layout.
func PostList(props LayoutProps, doc IndexDocument) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := props.typo()
		h := &htmlWriter{w: w}
		for _, e := range doc.Entries {
			h.raw(`<article class="post-summary"><header><a class="post-link"`)
			h.attr("style", style("box-shadow", "none"))
			h.attr("href", PostPath(props.root(), e.Slug))
			h.raw("><h3")
			h.attr("style", style("margin-bottom", t.Rhythm(1.0/4).String()))
			h.raw(">")
			h.text(e.Title)
			h.raw("</h3></a><small>")
			h.text(e.Date)
			if e.ReadingTime > 0 {
				if e.Date != "" {
					h.raw(" · ")
				}
				h.text(strconv.Itoa(e.ReadingTime) + " min read")
			}
			h.raw("</small></header><section")
			h.attr("style", style("display", "flex", "align-items", "center"))
			h.raw("><p")
			h.attr("style", style("margin-bottom", "0"))
			h.raw(">", e.SummaryHTML, "</p>")
			if thumb, ok := e.Thumbnail.Get(); ok {
				writeThumbnail(h, thumb)
			}
			h.raw("</section></article>")
		}
		return h.err
	})
}

func writeThumbnail(h *htmlWriter, thumb content.Thumbnail) {
	h.raw(`<img class="post-thumbnail"`)
	h.attr("src", thumb.Src)
	h.attr("alt", thumb.Alt)
	if thumb.Width > 0 && thumb.Height > 0 {
		h.attr("width", strconv.Itoa(thumb.Width))
		h.attr("height", strconv.Itoa(thumb.Height))
	}
	minWidth := "100px"
	if thumb.Width > 0 {
		minWidth = strconv.Itoa(thumb.Width) + "px"
	}
	h.attr("style", style("min-width", minWidth, "margin-left", "10px", "border-radius", "50%"))
	h.raw(">")
}
