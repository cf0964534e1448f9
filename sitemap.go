package quill

import (
	"encoding/xml"
	"io"

	"github.com/eringen/quill/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, cfg SiteConfig, posts []content.PostSummary) error {
	urls := []sitemapURL{
		{Loc: cfg.homeURL()},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: cfg.postURL(p.Slug)}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
