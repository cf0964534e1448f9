package quill

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/logger"
	"github.com/eringen/quill/views"
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.homePage(posts))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	post, err := a.Cache.Post(ctx, slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return a.renderNotFound(c)
		}
		return err
	}
	prev, next, err := a.Cache.Neighbours(ctx, slug)
	if err != nil {
		return err
	}
	return Render(c, a.postPage(post, prev, next))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, posts)
}

func (a *App) handleStylesheet(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(a.stylesheet))
}

func (a *App) renderNotFound(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		logger.L().Warn("not_found.suggestions", "path", c.Request().URL.Path, "err", err)
	}
	return RenderStatus(c, http.StatusNotFound, a.notFoundPage(c.Request().URL.Path, posts))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderNotFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		logger.L().Error("server.error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"err", err,
		)
		_ = RenderStatus(c, code, views.ServerError(a.layoutProps(pageMeta{Title: "Error"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
