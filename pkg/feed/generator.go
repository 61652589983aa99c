// Package feed renders liked posts as an RSS 2.0 feed
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/booruscope/pkg/domain"
)

const maxTitleTags = 5

// Generator creates RSS feeds from ledger records
type Generator struct {
	baseURL  string // address of this service
	boardURL string // address of the board posts link to
	postURL  func(id int64) string
	now      func() time.Time
}

// NewGenerator creates a new feed generator. postURL makes item links,
// nil links to {boardURL}/posts/{id}.
func NewGenerator(baseURL, boardURL string, postURL func(id int64) string) *Generator {
	res := &Generator{
		baseURL:  strings.TrimRight(baseURL, "/"),
		boardURL: strings.TrimRight(boardURL, "/"),
		postURL:  postURL,
		now:      time.Now,
	}
	if res.postURL == nil {
		res.postURL = func(id int64) string { return fmt.Sprintf("%s/posts/%d", res.boardURL, id) }
	}
	return res
}

// LikedRSS creates an RSS 2.0 feed with one item per liked or super liked record
func (g *Generator) LikedRSS(records []domain.SeenRecord) (string, error) {
	rssItems := make([]*RSSItem, 0, len(records))
	for _, rec := range records {
		if rec.Status != domain.StatusLiked && rec.Status != domain.StatusSuperLiked {
			continue
		}
		rssItems = append(rssItems, g.convertToRSSItem(rec))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "booruscope - liked posts",
			Link:          g.baseURL + "/",
			Description:   "Posts liked on " + g.boardURL,
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/liked", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(rec domain.SeenRecord) *RSSItem {
	tags := strings.Fields(rec.Tags)

	title := fmt.Sprintf("#%d", rec.PostID)
	if rec.Status == domain.StatusSuperLiked {
		title += " ★"
	}
	if len(tags) > 0 {
		shown := tags
		if len(shown) > maxTitleTags {
			shown = shown[:maxTitleTags]
		}
		title += " " + strings.Join(shown, " ")
	}

	desc := fmt.Sprintf("Status: %s", rec.Status)
	if rec.Rating != "" {
		desc += fmt.Sprintf("\nRating: %s", rec.Rating)
	}
	if len(tags) > 0 {
		desc += fmt.Sprintf("\nTags: %s", strings.Join(tags, ", "))
	}

	item := &RSSItem{
		Title:       title,
		Link:        g.postURL(rec.PostID),
		GUID:        &GUID{Value: fmt.Sprintf("%d", rec.PostID)},
		Description: desc,
		Categories:  tags,
	}

	ts := rec.UpdatedAt
	if ts.IsZero() {
		ts = rec.SeenAt
	}
	if !ts.IsZero() {
		item.PubDate = ts.Format(time.RFC1123Z)
	}
	return item
}
