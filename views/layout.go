package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/markdown"
	"github.com/eringen/quill/typography"
)

// LayoutProps carries the page-level values every page needs.
type LayoutProps struct {
	Typo           *typography.Typography
	SiteTitle      string
	CurrentPath    string
	RootPath       string // compared with CurrentPath as given; links treat "" as "/"
	Year           int // shown in the footer
	PageTitle      string
	Description    string
	CanonicalURL   string
	StylesheetHref string
	FeedHref       string
	SourceURL      string
}

func (p LayoutProps) root() string {
	if p.RootPath == "" {
		return "/"
	}
	return p.RootPath
}

func (p LayoutProps) typo() *typography.Typography {
	if p.Typo != nil {
		return p.Typo
	}
	if t := typography.Default(); t != nil {
		return t
	}
	t, _ := typography.New(typography.DefaultConfig())
	return t
}

func (p LayoutProps) documentTitle() string {
	switch {
	case p.PageTitle == "":
		return p.SiteTitle
	case p.SiteTitle == "":
		return p.PageTitle
	}
	return p.PageTitle + " | " + p.SiteTitle
}

// PostPath returns the URL path of the post page for slug.
func PostPath(rootPath, slug string) string {
	return strings.TrimSuffix(rootPath, "/") + "/" + url.PathEscape(slug) + "/"
}

// Layout wraps body in the HTML document shell, the site header and the footer.
func Layout(props LayoutProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := props.typo()
		h := &htmlWriter{w: w}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(props.documentTitle())
		h.raw("</title>")
		if props.Description != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", props.Description)
			h.raw(">")
		}
		if props.CanonicalURL != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", props.CanonicalURL)
			h.raw(">")
		}
		if props.StylesheetHref != "" {
			h.raw(`<link rel="stylesheet"`)
			h.attr("href", props.StylesheetHref)
			h.raw(">")
		}
		if props.FeedHref != "" {
			h.raw(`<link rel="alternate" type="application/rss+xml"`)
			h.attr("title", props.SiteTitle)
			h.attr("href", props.FeedHref)
			h.raw(">")
		}
		h.raw("</head><body>")

		h.raw(`<div class="site"`)
		h.attr("style", style(
			"margin-left", "auto",
			"margin-right", "auto",
			"max-width", t.Rhythm(24).String(),
			"padding", t.Rhythm(1.5).String()+" "+t.Rhythm(3.0/4).String(),
		))
		h.raw("><header>")
		writeSiteHeader(h, props, t)
		h.raw("</header><main>")
		h.component(ctx, body)
		h.raw("</main><footer><p>© ")
		h.text(strconv.Itoa(props.Year))
		h.raw(`, Built with <a href="https://github.com/eringen/quill">quill</a></p>`)
		if src := markdown.SafeURL(props.SourceURL); src != "" {
			h.raw("<p><a")
			h.attr("href", src)
			h.raw(">Source</a></p>")
		}
		h.raw("</footer></div></body></html>")
		return h.err
	})
}

func writeSiteHeader(h *htmlWriter, props LayoutProps, t *typography.Typography) {
	tag, css := "h2", ""
	if SelectHeader(props.CurrentPath, props.RootPath) == HeaderPrimary {
		tag, css = "h1", style("margin-bottom", t.Rhythm(0).String())
	}
	h.raw("<", tag)
	if css != "" {
		h.attr("style", css)
	}
	h.raw("><a")
	h.attr("href", props.root())
	h.raw(">")
	h.text(props.SiteTitle)
	h.raw("</a></", tag, ">")
}

// displayTitle is the post title, or its slug when the title is missing.
func displayTitle(p content.PostSummary) string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	return p.Slug
}
