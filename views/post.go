package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
)

// Post renders a full post page. prev is the older neighbour and next the
// newer one; either may be None.
func Post(props LayoutProps, site content.SiteMeta, post content.Post, prev, next content.Maybe[content.PostSummary]) templ.Component {
	return Layout(props, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := props.typo()
		small := t.Scale(-1.0 / 5)
		h := &htmlWriter{w: w}

		h.raw("<article><header><h1")
		h.attr("style", style("margin-top", t.Rhythm(1).String(), "margin-bottom", "0"))
		h.raw(">")
		h.text(displayTitle(post.PostSummary))
		h.raw("</h1><p")
		h.attr("style", style(
			"font-size", small.FontSize.String(),
			"line-height", small.LineHeight.String(),
			"display", "block",
			"margin-bottom", t.Rhythm(1).String(),
		))
		h.raw(">")
		h.text(post.Date)
		if post.ReadingTimeMinutes > 0 {
			if post.Date != "" {
				h.raw(" · ")
			}
			h.text(strconv.Itoa(post.ReadingTimeMinutes) + " min read")
		}
		h.raw("</p></header><section>", post.BodyHTML, "</section><hr")
		h.attr("style", style("margin-bottom", t.Rhythm(1).String()))
		h.raw("><footer>")
		h.component(ctx, Bio(site, props.Typo))
		h.raw("</footer></article>")

		h.raw("<nav><ul")
		h.attr("style", style(
			"display", "flex",
			"flex-wrap", "wrap",
			"justify-content", "space-between",
			"list-style", "none",
			"padding", "0",
		))
		h.raw("><li>")
		if p, ok := prev.Get(); ok {
			h.raw("<a")
			h.attr("href", PostPath(props.root(), p.Slug))
			h.raw(` rel="prev">← `)
			h.text(displayTitle(p))
			h.raw("</a>")
		}
		h.raw("</li><li>")
		if n, ok := next.Get(); ok {
			h.raw("<a")
			h.attr("href", PostPath(props.root(), n.Slug))
			h.raw(` rel="next">`)
			h.text(displayTitle(n))
			h.raw(" →</a>")
		}
		h.raw("</li></ul></nav>")
		return h.err
	}))
}
