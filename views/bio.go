package views

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/markdown"
	"github.com/eringen/quill/typography"
)

var profileBase = map[string]string{
	"twitter":  "https://twitter.com/",
	"github":   "https://github.com/",
	"linkedin": "https://www.linkedin.com/in/",
}

type socialLink struct {
	Label string
	URL   string
}

// socialLinks resolves the configured social accounts in platform order.
// Handles of known platforms become profile URLs; full URLs are kept if safe;
// anything else is dropped.
func socialLinks(social map[string]string) []socialLink {
	platforms := make([]string, 0, len(social))
	for p := range social {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	title := cases.Title(language.English)
	var links []socialLink
	for _, p := range platforms {
		href := profileURL(p, social[p])
		if href == "" {
			continue
		}
		links = append(links, socialLink{Label: title.String(p), URL: href})
	}
	return links
}

func profileURL(platform, handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return ""
	}
	if strings.Contains(handle, "://") || strings.HasPrefix(handle, "mailto:") {
		return markdown.SafeURL(handle)
	}
	base, ok := profileBase[strings.ToLower(platform)]
	if !ok {
		return ""
	}
	return base + strings.TrimPrefix(handle, "@")
}

// Bio renders the author card: avatar, name, summary and social links.
func Bio(site content.SiteMeta, typo *typography.Typography) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := LayoutProps{Typo: typo}.typo()
		h := &htmlWriter{w: w}
		flat := style("margin-bottom", "0")

		h.raw(`<div class="bio"`)
		h.attr("style", style("display", "flex", "align-items", "center", "margin-bottom", t.Rhythm(2.5).String()))
		h.raw(">")
		if avatar := markdown.SafeURL(site.Author.Avatar); avatar != "" {
			h.raw(`<img class="bio-avatar"`)
			h.attr("src", avatar)
			h.attr("alt", site.Author.Name)
			h.attr("style", style(
				"margin-right", t.Rhythm(1.0/2).String(),
				"margin-bottom", "0",
				"min-width", "50px",
				"max-width", "50px",
				"border-radius", "50%",
			))
			h.raw(">")
		}
		h.raw("<div>")
		if site.Author.Name != "" || site.Author.Summary != "" {
			h.raw("<p")
			h.attr("style", flat)
			h.raw(">Written by <strong>")
			h.text(site.Author.Name)
			h.raw("</strong> ")
			h.text(site.Author.Summary)
			h.raw("</p>")
		}
		if links := socialLinks(site.Social); len(links) > 0 {
			h.raw(`<p class="social"`)
			h.attr("style", flat)
			h.raw(">")
			for i, l := range links {
				if i > 0 {
					h.raw(" · ")
				}
				h.raw("<a")
				h.attr("href", l.URL)
				h.raw(">")
				h.text(l.Label)
				h.raw("</a>")
			}
			h.raw("</p>")
		}
		h.raw("</div></div>")
		return h.err
	})
}
