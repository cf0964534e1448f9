package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
)

// MaxSuggestions caps the "did you mean" list on the not found page.
const MaxSuggestions = 3

// NotFound renders the 404 page with links to posts whose slugs are close to
// the requested path.
func NotFound(props LayoutProps, suggestions []content.PostSummary) templ.Component {
	return Layout(props, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>Not Found</h1><p>You just hit a route that doesn't exist... the sadness.</p>")
		if len(suggestions) > MaxSuggestions {
			suggestions = suggestions[:MaxSuggestions]
		}
		if len(suggestions) > 0 {
			h.raw(`<p>Did you mean:</p><ul class="suggestions">`)
			for _, s := range suggestions {
				h.raw("<li><a")
				h.attr("href", PostPath(props.root(), s.Slug))
				h.raw(">")
				h.text(displayTitle(s))
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		return h.err
	}))
}

// ServerError renders the page shown when a request fails on our side.
func ServerError(props LayoutProps) templ.Component {
	return Layout(props, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<h1>Something went wrong</h1><p>The page could not be rendered. Please try again later.</p>")
		return h.err
	}))
}
