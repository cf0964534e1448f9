package quill

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/quill/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// pageMeta describes one page for the layout.
type pageMeta struct {
	Path        string // URL path, compared with the root to pick the header
	Title       string
	Description string
	Canonical   string
}

func (a *App) layoutProps(m pageMeta) views.LayoutProps {
	root := a.Config.RootPath()
	description := m.Description
	if description == "" {
		description = a.Config.Description
	}
	return views.LayoutProps{
		Typo:           a.Typo,
		SiteTitle:      a.Config.Title,
		CurrentPath:    m.Path,
		RootPath:       root,
		Year:           a.now().Year(),
		PageTitle:      m.Title,
		Description:    description,
		CanonicalURL:   m.Canonical,
		StylesheetHref: root + "typography.css",
		FeedHref:       root + "feed.xml",
		SourceURL:      a.Config.SourceURL,
	}
}
