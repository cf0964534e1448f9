package quill

import (
	"html"

	"github.com/a-h/templ"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/views"
)

// The page builders are shared by the HTTP handlers and the static build.

func (a *App) homePage(posts []content.PostSummary) templ.Component {
	props := a.layoutProps(pageMeta{
		Path:      a.Config.RootPath(),
		Title:     "All posts",
		Canonical: a.Config.homeURL(),
	})
	return views.Index(props, a.Config.SiteMeta(), views.RenderPostList(a.Config.Title, posts))
}

func (a *App) postPage(post content.Post, prev, next content.Maybe[content.PostSummary]) templ.Component {
	description := post.Description
	if description == "" {
		description = html.UnescapeString(post.ExcerptHTML)
	}
	props := a.layoutProps(pageMeta{
		Path:        views.PostPath(a.Config.RootPath(), post.Slug),
		Title:       post.Title,
		Description: description,
		Canonical:   a.Config.postURL(post.Slug),
	})
	if props.PageTitle == "" {
		props.PageTitle = post.Slug
	}
	return views.Post(props, a.Config.SiteMeta(), post, prev, next)
}

func (a *App) notFoundPage(path string, posts []content.PostSummary) templ.Component {
	props := a.layoutProps(pageMeta{Path: path, Title: "404: Not Found"})
	return views.NotFound(props, suggestSlugs(path, posts, views.MaxSuggestions))
}
