package quill

import (
	"encoding/xml"
	"errors"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/typography"
)

func newTestApp(t *testing.T, posts []content.Post, cfg SiteConfig) *App {
	t.Helper()
	if cfg.SiteURL == "" {
		cfg.SiteURL = "https://example.com"
	}
	cfg.Title = "My Blog"
	cfg.StaticDir = t.TempDir()
	return New(cfg, &fakeSource{posts: posts}, nil, WithClock(fixedClock))
}

func serve(a *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleHome(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>All posts | My Blog</title>",
		`<h1 style="margin-bottom:0"><a href="/">My Blog</a></h1>`,
		">Hello World</h3>",
		">second-post</h3>",
		"A post without a title",
		"© 2026",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Index(body, "hello-world") > strings.Index(body, "second-post") {
		t.Error("posts should keep the source order")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandlePost(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/hello-world/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>Hello World | My Blog</title>",
		`<h2><a href="/">My Blog</a></h2>`,
		"<p>This is my <strong>first</strong> post.</p>",
		`<a href="/second-post/" rel="prev">`,
		`<link rel="canonical" href="https://example.com/hello-world/">`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("post page missing %q", want)
		}
	}
}

func TestHandlePostNotFoundSuggests(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/hello-wrld/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Not Found") || !strings.Contains(body, `<a href="/hello-world/">Hello World</a>`) {
		t.Errorf("404 page should suggest hello-world: %s", body)
	}
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/a/b/c/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not Found") {
		t.Error("expected the not found view")
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/hello-world")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/hello-world/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleFeed(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{Description: "Thoughts"})
	rec := serve(a, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var feed rssXML
	if err := xml.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("invalid RSS: %v", err)
	}
	if feed.Version != "2.0" || feed.Channel.Title != "My Blog" || feed.Channel.Description != "Thoughts" {
		t.Errorf("channel = %+v", feed.Channel)
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed.Channel.Items))
	}
	first := feed.Channel.Items[0]
	if first.Link != "https://example.com/hello-world/" || first.PubDate != "Sat, 04 May 2019 22:12:03 +0000" {
		t.Errorf("first item = %+v", first)
	}
	if second := feed.Channel.Items[1]; second.Title != "second-post" || second.Description != "A post without a title" {
		t.Errorf("second item = %+v", second)
	}
}

func TestHandleSitemap(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	rec := serve(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var set sitemapURLSet
	if err := xml.Unmarshal(rec.Body.Bytes(), &set); err != nil {
		t.Fatalf("invalid sitemap: %v", err)
	}
	if len(set.URLs) != 3 {
		t.Fatalf("expected 3 URLs, got %d", len(set.URLs))
	}
	if set.URLs[1].Loc != "https://example.com/hello-world/" || set.URLs[1].LastMod != "2019-05-04" {
		t.Errorf("post URL = %+v", set.URLs[1])
	}
}

func TestHandleStylesheet(t *testing.T) {
	a := newTestApp(t, nil, SiteConfig{})
	rec := serve(a, "/typography.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "h1 {") {
		t.Errorf("stylesheet missing heading rules: %s", rec.Body.String())
	}
}

func TestHandleThumbnail(t *testing.T) {
	src := filepath.Join(t.TempDir(), "cover.png")
	writePNG(t, src, 300, 200)
	posts := testPosts()
	posts[0].Thumbnail = content.Some(content.Thumbnail{Src: "/thumbs/hello-world.jpg", Source: src, Width: 50, Height: 50})
	a := newTestApp(t, posts, SiteConfig{})

	rec := serve(a, "/thumbs/hello-world.jpg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := jpeg.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("thumbnail is %dx%d, want 50x50", b.Dx(), b.Dy())
	}
	if _, ok := a.thumbs.get("hello-world"); !ok {
		t.Error("thumbnail should be cached")
	}

	if rec := serve(a, "/thumbs/second-post.jpg"); rec.Code != http.StatusNotFound {
		t.Errorf("post without thumbnail: status = %d, want 404", rec.Code)
	}
	if rec := serve(a, "/thumbs/hello-world.png"); rec.Code != http.StatusNotFound {
		t.Errorf("non-jpg name: status = %d, want 404", rec.Code)
	}
}

func TestPathPrefixRoutes(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{PathPrefix: "/blog"})
	home := serve(a, "/blog/")
	if home.Code != http.StatusOK {
		t.Fatalf("home status = %d, want 200", home.Code)
	}
	body := home.Body.String()
	if !strings.Contains(body, `<h1 style="margin-bottom:0"><a href="/blog/">My Blog</a></h1>`) {
		t.Errorf("prefixed home should use the primary header: %s", body)
	}
	if !strings.Contains(body, `href="/blog/hello-world/"`) || !strings.Contains(body, `href="/blog/typography.css"`) {
		t.Error("links should carry the path prefix")
	}
	if rec := serve(a, "/blog/hello-world/"); rec.Code != http.StatusOK {
		t.Errorf("post status = %d, want 200", rec.Code)
	}
}

func TestCacheControlHeaders(t *testing.T) {
	a := newTestApp(t, testPosts(), SiteConfig{})
	if cc := serve(a, "/feed.xml").Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("feed Cache-Control = %q", cc)
	}
	if cc := serve(a, "/").Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("page Cache-Control = %q", cc)
	}
}

func TestInvalidateReloadsPosts(t *testing.T) {
	src := &fakeSource{posts: testPosts()}
	a := New(SiteConfig{}, src, nil)
	serve(a, "/")
	serve(a, "/")
	a.Invalidate()
	serve(a, "/")
	if n := src.listCalls(); n != 2 {
		t.Errorf("source listed %d times, want 2", n)
	}
}

func TestOptionsStaticDirAndCustomRoutes(t *testing.T) {
	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "hello.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(SiteConfig{SiteURL: "https://example.com"}, &fakeSource{posts: testPosts()}, nil,
		WithStaticDir(static),
		WithCustomRoutes(func(a *App) {
			a.Echo.GET("/version.txt", func(c echo.Context) error {
				return c.String(http.StatusOK, "v1")
			})
		}),
	)

	rec := serve(a, "/public/hello.txt")
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Errorf("static: status %d body %q", rec.Code, rec.Body.String())
	}
	rec = serve(a, "/version.txt")
	if rec.Code != http.StatusOK || rec.Body.String() != "v1" {
		t.Errorf("custom route: status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestSourceErrorRendersServerError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk on fire")}
	a := New(SiteConfig{SiteURL: "https://example.com", StaticDir: t.TempDir()}, src, nil, WithClock(fixedClock))

	rec := serve(a, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Something went wrong") {
		t.Errorf("body should render the error page: %s", body)
	}
	if strings.Contains(body, "disk on fire") {
		t.Error("error details should not leak into the page")
	}
}

func TestNewWithoutTypographyUsesConfig(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(*SiteConfig)
		want   string
		absent string
	}{
		{"configured", func(c *SiteConfig) {
			c.Typography.BaseFontSize = 16
			c.Typography.RhythmUnit = typography.UnitPx
		}, "margin: 0 0 28.8px;", "1.8rem"},
		{"invalid falls back to defaults", func(c *SiteConfig) {
			c.Typography.ScaleRatio = 1
		}, "margin: 0 0 1.8rem;", "28.8px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SiteConfig{SiteURL: "https://example.com", StaticDir: t.TempDir(), Typography: typography.DefaultConfig()}
			tt.edit(&cfg)
			a := New(cfg, &fakeSource{posts: testPosts()}, nil)

			rec := serve(a, "/typography.css")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			css := rec.Body.String()
			if !strings.Contains(css, tt.want) {
				t.Errorf("stylesheet missing %q:\n%s", tt.want, css)
			}
			if strings.Contains(css, tt.absent) {
				t.Errorf("stylesheet should not contain %q", tt.absent)
			}
		})
	}
}
