package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/domain"
)

func TestGenerator_LikedRSS(t *testing.T) {
	gen := NewGenerator("http://localhost:8080/", "https://danbooru.donmai.us/", nil)
	gen.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	ts := time.Date(2024, 4, 30, 10, 0, 0, 0, time.UTC)
	records := []domain.SeenRecord{
		{PostID: 101, Status: domain.StatusLiked, Tags: "cat_ears blue_eyes", Rating: domain.RatingGeneral, SeenAt: ts},
		{PostID: 102, Status: domain.StatusDisliked, Tags: "gore", Rating: domain.RatingExplicit, SeenAt: ts},
		{PostID: 103, Status: domain.StatusSuperLiked, Tags: "landscape", Rating: domain.RatingSensitive,
			SeenAt: ts, UpdatedAt: ts.Add(time.Hour)},
		{PostID: 104, Status: domain.StatusNone, Tags: "sky"},
	}

	out, err := gen.LikedRSS(records)
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, out, `<guid isPermaLink="false">101</guid>`)
	assert.Contains(t, out, `<link xmlns="http://www.w3.org/2005/Atom" href="http://localhost:8080/rss/liked" rel="self" type="application/rss+xml"></link>`)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, "booruscope - liked posts", parsed.Title)
	assert.Equal(t, "rss", parsed.FeedType)
	require.Len(t, parsed.Items, 2, "only liked and super liked posts")

	first := parsed.Items[0]
	assert.Equal(t, "https://danbooru.donmai.us/posts/101", first.Link)
	assert.Equal(t, "101", first.GUID)
	assert.Equal(t, []string{"cat_ears", "blue_eyes"}, first.Categories)
	assert.Equal(t, "#101 cat_ears blue_eyes", first.Title)
	require.NotNil(t, first.PublishedParsed)
	assert.True(t, ts.Equal(*first.PublishedParsed))

	second := parsed.Items[1]
	assert.Equal(t, "https://danbooru.donmai.us/posts/103", second.Link)
	assert.Contains(t, second.Title, "★")
	assert.Contains(t, second.Description, "Status: super liked")
	require.NotNil(t, second.PublishedParsed)
	assert.True(t, ts.Add(time.Hour).Equal(*second.PublishedParsed), "reaction time wins over seen time")
}

func TestGenerator_LikedRSSEmpty(t *testing.T) {
	gen := NewGenerator("http://localhost:8080", "https://board.example.com", nil)
	out, err := gen.LikedRSS(nil)
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	assert.Empty(t, parsed.Items)
	assert.Equal(t, "Posts liked on https://board.example.com", parsed.Description)
}

func TestGenerator_LongTitle(t *testing.T) {
	gen := NewGenerator("http://localhost", "https://board", nil)
	out, err := gen.LikedRSS([]domain.SeenRecord{{PostID: 1, Status: domain.StatusLiked, Tags: "a b c d e f g"}})
	require.NoError(t, err)
	assert.Contains(t, out, "<title>#1 a b c d e</title>")
	assert.Contains(t, out, "<category>g</category>")
	assert.NotContains(t, out, "<pubDate>", "no timestamps, no date")
}

func TestGenerator_PostURL(t *testing.T) {
	gen := NewGenerator("http://localhost", "https://gelbooru.com", func(id int64) string {
		return fmt.Sprintf("https://gelbooru.com/index.php?page=post&s=view&id=%d", id)
	})
	out, err := gen.LikedRSS([]domain.SeenRecord{{PostID: 77, Status: domain.StatusLiked, Tags: "cat"}})
	require.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(out)
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "https://gelbooru.com/index.php?page=post&s=view&id=77", parsed.Items[0].Link)
}
