package content

import (
	"fmt"
	"sort"
	"strings"
)

// ValidatePosts checks that every slug is non-empty and unique.
func ValidatePosts(posts []PostSummary) error {
	seen := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		if strings.TrimSpace(p.Slug) == "" {
			return fmt.Errorf("post %d: %w", i, ErrEmptySlug)
		}
		if _, ok := seen[p.Slug]; ok {
			return fmt.Errorf("post %q: %w", p.Slug, ErrDuplicateSlug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}

// SortNewestFirst orders posts by PublishedAt descending. Undated posts go
// last; ties keep slug order so the result is stable across loads.
func SortNewestFirst(posts []PostSummary) {
	sort.SliceStable(posts, func(i, j int) bool {
		return newer(posts[i], posts[j])
	})
}

func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return newer(posts[i].PostSummary, posts[j].PostSummary)
	})
}

func newer(a, b PostSummary) bool {
	switch {
	case a.PublishedAt.IsZero() && b.PublishedAt.IsZero():
		return a.Slug < b.Slug
	case a.PublishedAt.IsZero():
		return false
	case b.PublishedAt.IsZero():
		return true
	case a.PublishedAt.Equal(b.PublishedAt):
		return a.Slug < b.Slug
	}
	return a.PublishedAt.After(b.PublishedAt)
}

// Slugify converts a title or file name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
