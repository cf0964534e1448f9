package quill

import (
	"encoding/xml"
	"html"
	"io"
	"time"

	"github.com/eringen/quill/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category,omitempty"`
}

// writeRSS writes an RSS 2.0 feed of posts to w.
func writeRSS(w io.Writer, cfg SiteConfig, posts []content.PostSummary) error {
	items := make([]rssItem, 0, len(posts))
	var latest time.Time
	for _, p := range posts {
		pubDate := ""
		if !p.PublishedAt.IsZero() {
			pubDate = p.PublishedAt.Format(time.RFC1123Z)
			if p.PublishedAt.After(latest) {
				latest = p.PublishedAt
			}
		}
		description := p.Description
		if description == "" {
			description = html.UnescapeString(p.ExcerptHTML)
		}
		title := p.Title
		if title == "" {
			title = p.Slug
		}
		link := cfg.postURL(p.Slug)
		items = append(items, rssItem{
			Title:       title,
			Link:        link,
			Description: description,
			PubDate:     pubDate,
			GUID:        link,
			Categories:  p.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Title,
			Link:        cfg.homeURL(),
			Description: cfg.Description,
			Items:       items,
		},
	}
	if !latest.IsZero() {
		feed.Channel.LastBuildDate = latest.Format(time.RFC1123Z)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
