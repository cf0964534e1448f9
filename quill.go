// Package quill serves and builds a personal blog. Posts come from a
// content.Source, pages are templ components from package views, and every
// spacing and font size on them is derived from one typography.Typography.
package quill

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/logger"
	"github.com/eringen/quill/typography"
)

// App is the central quill application. It wires together the content
// source, cache, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *PostCache
	Typo   *typography.Typography

	src          content.Source
	thumbs       *thumbnailCache
	stylesheet   string
	customRoutes []func(*App)
	now          func() time.Time
}

// New creates an App serving posts from src with the given typography. The
// routes are registered immediately, so a.Echo can be used as an http.Handler
// without calling Start. A nil typo falls back to the process-wide instance,
// or else to one built from cfg.Typography.
func New(cfg SiteConfig, src content.Source, typo *typography.Typography, opts ...Option) *App {
	cfg.setDefaults()
	if typo == nil {
		typo = defaultTypography(cfg.Typography)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Cache:  NewPostCache(src, cfg.CacheTTL),
		Typo:   typo,
		src:    src,
		thumbs: newThumbnailCache(),
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	a.stylesheet = typo.Stylesheet()

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start runs the HTTP server until it is shut down.
func (a *App) Start() error {
	logger.L().Info("server.start", "addr", a.Config.Addr, "root", a.Config.RootPath(), "source", a.Config.Source)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Invalidate drops cached posts and thumbnails after the content changed.
func (a *App) Invalidate() {
	a.Cache.Invalidate()
	a.thumbs.Invalidate()
}

func (a *App) setupRoutes() {
	e := a.Echo
	root := a.Config.RootPath()
	g := e.Group(root[:len(root)-1])

	e.Static("/public", a.Config.StaticDir)

	g.GET("/", a.handleHome)
	g.GET("/feed.xml", a.handleFeed)
	g.GET("/sitemap.xml", a.handleSitemap)
	g.GET("/typography.css", a.handleStylesheet)
	g.GET("/thumbs/:file", a.handleThumbnail)
	g.GET("/:slug/", a.handlePost)
}

func defaultTypography(cfg typography.Config) *typography.Typography {
	if t := typography.Default(); t != nil {
		return t
	}
	t, err := typography.New(cfg)
	if err == nil {
		return t
	}
	logger.L().Warn("typography.invalid", "err", err)
	t, _ = typography.New(typography.DefaultConfig())
	return t
}

// Close releases the content source when it holds resources (the SQLite index).
func (a *App) Close() error {
	if c, ok := a.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
