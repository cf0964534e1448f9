package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/eringen/quill"
	"github.com/eringen/quill/logger"
)

var (
	serveAddr   string
	serveStatic string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	Long: `Serve renders pages on request from the configured content source.
With --watch, edits under the content directory show up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typo, err := initTypography()
		if err != nil {
			return err
		}
		cfg := siteCfg
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		src, err := quill.OpenSource(cfg)
		if err != nil {
			return err
		}
		opts := []quill.Option{quill.WithCustomRoutes(healthRoute)}
		if serveStatic != "" {
			opts = append(opts, quill.WithStaticDir(serveStatic))
		}
		app := quill.New(cfg, src, typo, opts...)
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveWatch {
			go watchContent(ctx, cfg, app)
		}

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		logger.L().Info("server.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory served under /public (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload content when files change")
}

// healthRoute answers /health.json with the number of published posts.
func healthRoute(a *quill.App) {
	a.Echo.GET("/health.json", func(c echo.Context) error {
		posts, err := a.Cache.Posts(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{"status": "error", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "posts": len(posts)})
	})
}

// watchContent invalidates the app's caches whenever the content directory
// changes, rebuilding the index first when the site is served from it.
func watchContent(ctx context.Context, cfg quill.SiteConfig, app *quill.App) {
	err := quill.Watch(ctx, cfg.ContentDir, func() {
		if cfg.Source == quill.SourceIndex {
			n, err := quill.Reindex(ctx, cfg)
			if err != nil {
				logger.L().Error("content.reindex", "err", err)
				return
			}
			logger.L().Info("content.reindex", "posts", n)
		}
		app.Invalidate()
		logger.L().Info("content.reload", "dir", cfg.ContentDir)
	})
	if err != nil {
		logger.L().Error("content.watch", "dir", cfg.ContentDir, "err", err)
	}
}
