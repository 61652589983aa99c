// Package profile keeps the aggregated tag and rating preferences learned from user reactions
// and scores unseen posts against them.
package profile

import (
	"maps"
	"sort"
	"strings"

	"github.com/umputun/booruscope/pkg/domain"
)

// increments per reaction. super like adds to the liked counter more than to the scores.
const (
	likedScore      = 1
	superLikedScore = 3
	dislikedScore   = -1

	likedCount      = 1
	superLikedCount = 10
)

// Profile is the aggregate of all reactions recorded in the ledger.
// Scores may go negative, totals only grow.
type Profile struct {
	TagScores     map[string]int `json:"tag_scores"`
	TagTotals     map[string]int `json:"tag_totals"`
	RatingScores  map[string]int `json:"rating_scores"`
	RatingTotals  map[string]int `json:"rating_totals"`
	TotalLiked    int            `json:"total_liked"`
	TotalDisliked int            `json:"total_disliked"`
}

// Entry is a single line of the profile report
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}

// New makes a neutral profile
func New() *Profile {
	return &Profile{
		TagScores:    map[string]int{},
		TagTotals:    map[string]int{},
		RatingScores: map[string]int{},
		RatingTotals: map[string]int{},
	}
}

// Apply updates the profile with a single reaction. Statuses other than liked,
// super liked and disliked are ignored. Returns true if the profile changed.
func (p *Profile) Apply(tags string, rating domain.Rating, status domain.Status) bool {
	var inc int
	switch status {
	case domain.StatusLiked:
		inc = likedScore
		p.TotalLiked += likedCount
	case domain.StatusSuperLiked:
		inc = superLikedScore
		p.TotalLiked += superLikedCount
	case domain.StatusDisliked:
		inc = dislikedScore
		p.TotalDisliked++
	default:
		return false
	}

	p.ensureMaps()
	for _, tag := range strings.Fields(tags) {
		p.TagScores[tag] += inc
		p.TagTotals[tag]++
	}
	if rating != "" {
		p.RatingScores[string(rating)] += inc
		p.RatingTotals[string(rating)]++
	}
	return true
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	res := &Profile{
		TagScores:     maps.Clone(p.TagScores),
		TagTotals:     maps.Clone(p.TagTotals),
		RatingScores:  maps.Clone(p.RatingScores),
		RatingTotals:  maps.Clone(p.RatingTotals),
		TotalLiked:    p.TotalLiked,
		TotalDisliked: p.TotalDisliked,
	}
	res.ensureMaps()
	return res
}

// Empty returns true if no reaction was applied yet
func (p *Profile) Empty() bool {
	return p.TotalLiked == 0 && p.TotalDisliked == 0 && len(p.TagTotals) == 0 && len(p.RatingTotals) == 0
}

// TopTags returns up to n tags with the highest net score, ties broken by name.
// n <= 0 returns all tags.
func (p *Profile) TopTags(n int) []Entry {
	return topEntries(p.TagScores, p.TagTotals, n)
}

// BottomTags returns up to n tags with the lowest net score
func (p *Profile) BottomTags(n int) []Entry {
	res := topEntries(p.TagScores, p.TagTotals, 0)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score < res[j].Score
		}
		return res[i].Name < res[j].Name
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}

// TopRatings returns all ratings sorted by net score
func (p *Profile) TopRatings() []Entry {
	return topEntries(p.RatingScores, p.RatingTotals, 0)
}

// ensureMaps initializes maps missing after decoding a partial snapshot
func (p *Profile) ensureMaps() {
	if p.TagScores == nil {
		p.TagScores = map[string]int{}
	}
	if p.TagTotals == nil {
		p.TagTotals = map[string]int{}
	}
	if p.RatingScores == nil {
		p.RatingScores = map[string]int{}
	}
	if p.RatingTotals == nil {
		p.RatingTotals = map[string]int{}
	}
}

func topEntries(scores, totals map[string]int, n int) []Entry {
	res := make([]Entry, 0, len(totals))
	for name, total := range totals {
		res = append(res, Entry{Name: name, Score: scores[name], Total: total})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].Name < res[j].Name
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}
