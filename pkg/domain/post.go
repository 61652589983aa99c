package domain

import (
	"strings"
)

// Post represents a single content item returned by the remote board
type Post struct {
	ID      int64  `json:"id"`
	Tags    string `json:"tags"`
	Rating  Rating `json:"rating"`
	FileURL string `json:"file_url"`
	FileExt string `json:"file_ext"`
	Score   int    `json:"score"`
	PostURL string `json:"post_url,omitempty"`
}

// TagList returns post tags split on whitespace
func (p Post) TagList() []string {
	return strings.Fields(p.Tags)
}

// HasTag reports whether the post carries the given tag
func (p Post) HasTag(tag string) bool {
	for _, t := range p.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// IsVideo reports whether the post media is animated content, judged by file extension
func (p Post) IsVideo() bool {
	switch strings.ToLower(strings.TrimPrefix(p.FileExt, ".")) {
	case "mp4", "webm", "zip":
		return true
	default:
		return false
	}
}

// Rating represents content-maturity classification of a post
type Rating string

// ratings known to the board, ordered from the mildest
const (
	RatingGeneral      Rating = "general"
	RatingSensitive    Rating = "sensitive"
	RatingQuestionable Rating = "questionable"
	RatingExplicit     Rating = "explicit"
)

// ParseRating converts a long rating name or a single-letter board code to Rating.
// Unknown values return an empty rating which is scored as neutral.
func ParseRating(s string) Rating {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "general", "safe":
		return RatingGeneral
	case "s", "sensitive":
		return RatingSensitive
	case "q", "questionable":
		return RatingQuestionable
	case "e", "explicit":
		return RatingExplicit
	default:
		return ""
	}
}
