package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/typography"
)

func testProps(t *testing.T) LayoutProps {
	t.Helper()
	typo, err := typography.New(typography.DefaultConfig())
	if err != nil {
		t.Fatalf("typography.New: %v", err)
	}
	return LayoutProps{
		Typo:        typo,
		SiteTitle:   "My Blog",
		CurrentPath: "/",
		RootPath:    "/",
		Year:        2026,
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestSelectHeader(t *testing.T) {
	tests := []struct {
		current, root string
		want          HeaderVariant
	}{
		{"/", "/", HeaderPrimary},
		{"/blog/", "/blog/", HeaderPrimary},
		{"/hello-world/", "/", HeaderSecondary},
		{"", "/", HeaderSecondary},
		{"/blog", "/blog/", HeaderSecondary},
	}
	for _, tt := range tests {
		if got := SelectHeader(tt.current, tt.root); got != tt.want {
			t.Errorf("SelectHeader(%q, %q) = %v, want %v", tt.current, tt.root, got, tt.want)
		}
	}
}

func TestRenderPostListFallbacks(t *testing.T) {
	doc := RenderPostList("My Blog", []content.PostSummary{
		{Slug: "a", Title: "Hello"},
		{Slug: "b"},
	})
	if doc.SiteTitle != "My Blog" {
		t.Errorf("SiteTitle = %q", doc.SiteTitle)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(doc.Entries))
	}
	if doc.Entries[0].Title != "Hello" {
		t.Errorf("first title = %q, want Hello", doc.Entries[0].Title)
	}
	second := doc.Entries[1]
	if second.Title != "b" {
		t.Errorf("second title = %q, want slug fallback b", second.Title)
	}
	if second.Date != "" || second.SummaryHTML != "" || second.ReadingTime != 0 {
		t.Errorf("second entry defaults = %+v", second)
	}
	if second.Thumbnail.IsSome() {
		t.Error("second entry should have no thumbnail")
	}
}

func TestRenderPostListKeepsOrder(t *testing.T) {
	posts := []content.PostSummary{{Slug: "z"}, {Slug: "a"}, {Slug: "m"}}
	doc := RenderPostList("", posts)
	for i, e := range doc.Entries {
		if e.Slug != posts[i].Slug {
			t.Fatalf("entry %d = %q, want %q", i, e.Slug, posts[i].Slug)
		}
	}
}

func TestRenderPostListSummary(t *testing.T) {
	doc := RenderPostList("", []content.PostSummary{
		{Slug: "a", ExcerptHTML: "An <em>excerpt</em>"},
		{Slug: "b", ExcerptHTML: "ignored", Description: "Tips & tricks"},
	})
	if doc.Entries[0].SummaryHTML != "An <em>excerpt</em>" {
		t.Errorf("excerpt summary = %q", doc.Entries[0].SummaryHTML)
	}
	if doc.Entries[1].SummaryHTML != "Tips &amp; tricks" {
		t.Errorf("description summary = %q", doc.Entries[1].SummaryHTML)
	}
}

func TestPostListThumbnail(t *testing.T) {
	props := testProps(t)
	without := RenderPostList("", []content.PostSummary{{Slug: "plain"}})
	if n := strings.Count(render(t, PostList(props, without)), `class="post-thumbnail"`); n != 0 {
		t.Errorf("expected no thumbnail element, found %d", n)
	}

	with := RenderPostList("", []content.PostSummary{{
		Slug:      "pic",
		Thumbnail: content.Some(content.Thumbnail{Src: "/thumbs/pic.jpg", Alt: "A cat", Width: 100, Height: 100}),
	}})
	out := render(t, PostList(props, with))
	if n := strings.Count(out, `class="post-thumbnail"`); n != 1 {
		t.Errorf("expected exactly one thumbnail element, found %d", n)
	}
	if !strings.Contains(out, `src="/thumbs/pic.jpg"`) || !strings.Contains(out, `alt="A cat"`) {
		t.Errorf("thumbnail attributes missing: %s", out)
	}
}

func TestPostListMarkup(t *testing.T) {
	props := testProps(t)
	doc := RenderPostList("", []content.PostSummary{
		{Slug: "a", Title: "Hello", Date: "May 04, 2019", ReadingTimeMinutes: 2},
		{Slug: "b"},
	})
	out := render(t, PostList(props, doc))
	if n := strings.Count(out, "<article"); n != 2 {
		t.Errorf("expected 2 articles, got %d", n)
	}
	for _, want := range []string{
		`href="/a/"`,
		`<h3 style="margin-bottom:0.45rem">Hello</h3>`,
		`<small>May 04, 2019 · 2 min read</small>`,
		`<h3 style="margin-bottom:0.45rem">b</h3>`,
		`<small></small>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPostListEscapesTitle(t *testing.T) {
	doc := RenderPostList("", []content.PostSummary{{Slug: "x", Title: "<script>alert(1)</script>"}})
	out := render(t, PostList(testProps(t), doc))
	if strings.Contains(out, "<script>") {
		t.Errorf("title was not escaped: %s", out)
	}
}

func TestIndexIsIdempotent(t *testing.T) {
	props := testProps(t)
	site := content.SiteMeta{
		Title:  "My Blog",
		Author: content.Author{Name: "Pablo", Summary: "writes code."},
		Social: map[string]string{"twitter": "pablo"},
	}
	posts := []content.PostSummary{
		{Slug: "a", Title: "Hello", Thumbnail: content.Some(content.Thumbnail{Src: "/thumbs/a.jpg"})},
		{Slug: "b"},
	}
	first := render(t, Index(props, site, RenderPostList(site.Title, posts)))
	second := render(t, Index(props, site, RenderPostList(site.Title, posts)))
	if first != second {
		t.Error("rendering the same list twice produced different output")
	}
	if !strings.Contains(first, "Written by <strong>Pablo</strong> writes code.") {
		t.Errorf("bio missing from index: %s", first)
	}
}

func TestLayoutHeaderVariant(t *testing.T) {
	props := testProps(t)
	body := templ.Raw("<p>body</p>")

	home := render(t, Layout(props, body))
	if !strings.Contains(home, `<h1 style="margin-bottom:0"><a href="/">My Blog</a></h1>`) {
		t.Errorf("root page should use the primary header: %s", home)
	}

	props.CurrentPath = "/hello-world/"
	post := render(t, Layout(props, body))
	if !strings.Contains(post, `<h2><a href="/">My Blog</a></h2>`) {
		t.Errorf("other pages should use the secondary header: %s", post)
	}
	if strings.Contains(post, "<h1") {
		t.Error("secondary layout should not render an h1")
	}
}

func TestLayoutHeaderComparesRawPaths(t *testing.T) {
	tests := []struct {
		name        string
		currentPath string
		rootPath    string
		primary     bool
	}{
		{"both empty", "", "", true},
		{"slash against empty root", "/", "", false},
		{"both slash", "/", "/", true},
		{"empty against slash root", "", "/", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := testProps(t)
			props.CurrentPath = tt.currentPath
			props.RootPath = tt.rootPath
			out := render(t, Layout(props, templ.Raw("<p>body</p>")))
			if got := strings.Contains(out, "<h1"); got != tt.primary {
				t.Errorf("primary header = %v, want %v", got, tt.primary)
			}
			if !strings.Contains(out, `<a href="/">My Blog</a>`) {
				t.Errorf("site link should fall back to /: %s", out)
			}
		})
	}
}

func TestLayoutShell(t *testing.T) {
	props := testProps(t)
	props.PageTitle = "Hello"
	props.Description = `Say "hi"`
	props.StylesheetHref = "/typography.css"
	props.FeedHref = "/feed.xml"
	props.SourceURL = "https://github.com/eringen/quill"
	out := render(t, Layout(props, templ.Raw("<p>body</p>")))
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Hello | My Blog</title>",
		`<meta name="description" content="Say &#34;hi&#34;">`,
		`<link rel="stylesheet" href="/typography.css">`,
		`href="/feed.xml"`,
		"max-width:43.2rem",
		"padding:2.7rem 1.35rem",
		"<main><p>body</p></main>",
		"© 2026, Built with",
		`<a href="https://github.com/eringen/quill">Source</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutDropsUnsafeSourceURL(t *testing.T) {
	props := testProps(t)
	props.SourceURL = "javascript:alert(1)"
	out := render(t, Layout(props, nil))
	if strings.Contains(out, "javascript:") {
		t.Errorf("unsafe source URL rendered: %s", out)
	}
}

func TestPostPath(t *testing.T) {
	tests := []struct {
		root, slug, want string
	}{
		{"/", "hello", "/hello/"},
		{"", "hello", "/hello/"},
		{"/blog/", "a b", "/blog/a%20b/"},
		{"/blog", "x", "/blog/x/"},
	}
	for _, tt := range tests {
		if got := PostPath(tt.root, tt.slug); got != tt.want {
			t.Errorf("PostPath(%q, %q) = %q, want %q", tt.root, tt.slug, got, tt.want)
		}
	}
}

func TestSocialLinks(t *testing.T) {
	links := socialLinks(map[string]string{
		"twitter":  "@pablo",
		"github":   "pablog178",
		"linkedin": "https://www.linkedin.com/in/pablo",
		"mastodon": "pablo",
		"evil":     "javascript:alert(1)",
	})
	want := []socialLink{
		{"Github", "https://github.com/pablog178"},
		{"Linkedin", "https://www.linkedin.com/in/pablo"},
		{"Twitter", "https://twitter.com/pablo"},
	}
	if len(links) != len(want) {
		t.Fatalf("links = %+v, want %+v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %+v, want %+v", i, links[i], want[i])
		}
	}
}

func TestBio(t *testing.T) {
	props := testProps(t)
	out := render(t, Bio(content.SiteMeta{
		Author: content.Author{Name: "Pablo", Summary: "builds things.", Avatar: "/avatar.png"},
		Social: map[string]string{"github": "pablog178"},
	}, props.Typo))
	for _, want := range []string{
		`<img class="bio-avatar" src="/avatar.png" alt="Pablo"`,
		"margin-right:0.9rem",
		"Written by <strong>Pablo</strong> builds things.",
		`<a href="https://github.com/pablog178">Github</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("bio missing %q:\n%s", want, out)
		}
	}

	bare := render(t, Bio(content.SiteMeta{}, props.Typo))
	if strings.Contains(bare, "<img") || strings.Contains(bare, "Written by") {
		t.Errorf("empty bio should omit avatar and byline: %s", bare)
	}
}

func TestPostPage(t *testing.T) {
	props := testProps(t)
	props.CurrentPath = "/second/"
	post := content.Post{
		PostSummary: content.PostSummary{Slug: "second", Date: "January 10, 2020", ReadingTimeMinutes: 1},
		BodyHTML:    "<p>Body <strong>here</strong></p>",
	}
	prev := content.Some(content.PostSummary{Slug: "first", Title: "First"})
	out := render(t, Post(props, content.SiteMeta{}, post, prev, content.None[content.PostSummary]()))
	for _, want := range []string{
		">second</h1>",
		"font-size:0.80274rem;line-height:1.8rem",
		"January 10, 2020 · 1 min read",
		"<section><p>Body <strong>here</strong></p></section>",
		`<a href="/first/" rel="prev">← First</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("post page missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `rel="next"`) {
		t.Error("post page should not link a next post")
	}
}

func TestNotFoundCapsSuggestions(t *testing.T) {
	props := testProps(t)
	props.CurrentPath = "/helo/"
	out := render(t, NotFound(props, []content.PostSummary{
		{Slug: "hello"}, {Slug: "help", Title: "Help"}, {Slug: "halo"}, {Slug: "hell"},
	}))
	if !strings.Contains(out, "Not Found") {
		t.Errorf("missing heading: %s", out)
	}
	if n := strings.Count(out, "<li>"); n != MaxSuggestions {
		t.Errorf("expected %d suggestions, got %d", MaxSuggestions, n)
	}
	if !strings.Contains(out, `<a href="/help/">Help</a>`) {
		t.Errorf("suggestion link missing: %s", out)
	}
}
