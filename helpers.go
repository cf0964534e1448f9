package quill

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/eringen/quill/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// postURL is the absolute URL of a post page.
func (c SiteConfig) postURL(slug string) string {
	return BuildURL(c.SiteURL, strings.Trim(c.PathPrefix, "/"), slug)
}

// homeURL is the absolute URL of the home page.
func (c SiteConfig) homeURL() string {
	if p := strings.Trim(c.PathPrefix, "/"); p != "" {
		return BuildURL(c.SiteURL, p)
	}
	return BuildURL(c.SiteURL)
}

// suggestSlugs returns the posts whose slugs are closest to the requested
// path, nearest first, skipping anything too far away to be a typo.
func suggestSlugs(requested string, posts []content.PostSummary, limit int) []content.PostSummary {
	requested = strings.ToLower(strings.Trim(requested, "/"))
	if i := strings.LastIndex(requested, "/"); i >= 0 {
		requested = requested[i+1:]
	}
	if requested == "" {
		return nil
	}

	type scored struct {
		post content.PostSummary
		dist int
	}
	var matches []scored
	for _, p := range posts {
		var dist int
		switch {
		case p.Slug == requested:
			dist = 0
		case strings.HasPrefix(p.Slug, requested) && len(requested) >= 3:
			dist = 1
		default:
			dist = levenshtein.ComputeDistance(requested, p.Slug)
			if dist > levenshteinLimit(len(p.Slug)) {
				continue
			}
		}
		matches = append(matches, scored{post: p, dist: dist})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]content.PostSummary, len(matches))
	for i, m := range matches {
		out[i] = m.post
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
