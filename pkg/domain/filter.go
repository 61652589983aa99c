package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter is returned when a filter label or key can't be parsed
var ErrUnknownFilter = errors.New("unknown filter")

// RatingFilter is a closed set of rating choices offered to the user
type RatingFilter int

// rating filter choices, order matches the choice list shown by the UI
const (
	RatingFilterGeneral RatingFilter = iota
	RatingFilterGeneralSensitive
	RatingFilterGeneralQuestionable
	RatingFilterAll
	RatingFilterSensitive
	RatingFilterQuestionable
	RatingFilterExplicit
)

var ratingFilters = []struct {
	key, label, tag string
}{
	RatingFilterGeneral:             {"general", "General Only", "rating:general"},
	RatingFilterGeneralSensitive:    {"general-sensitive", "General and Sensitive", "rating:general..sensitive"},
	RatingFilterGeneralQuestionable: {"general-questionable", "General, Sensitive, and Questionable", "rating:general..questionable"},
	RatingFilterAll:                 {"all", "General, Sensitive, Questionable, and Explicit", ""},
	RatingFilterSensitive:           {"sensitive", "Sensitive Only", "rating:sensitive"},
	RatingFilterQuestionable:        {"questionable", "Questionable Only", "rating:questionable"},
	RatingFilterExplicit:            {"explicit", "Explicit Only", "rating:explicit"},
}

// RatingFilters returns all rating filter choices
func RatingFilters() []RatingFilter {
	res := make([]RatingFilter, len(ratingFilters))
	for i := range ratingFilters {
		res[i] = RatingFilter(i)
	}
	return res
}

func (f RatingFilter) valid() bool { return f >= 0 && int(f) < len(ratingFilters) }

// Key returns short identifier used by the API
func (f RatingFilter) Key() string {
	if !f.valid() {
		return ""
	}
	return ratingFilters[f].key
}

// Label returns human-readable choice, also used in persisted cursor keys
func (f RatingFilter) Label() string {
	if !f.valid() {
		return ""
	}
	return ratingFilters[f].label
}

// Tag returns rating-range search expression, empty for no rating constraint
func (f RatingFilter) Tag() string {
	if !f.valid() {
		return ""
	}
	return ratingFilters[f].tag
}

// String implements fmt.Stringer
func (f RatingFilter) String() string { return f.Label() }

// ParseRatingFilter converts key or label to RatingFilter
func ParseRatingFilter(s string) (RatingFilter, error) {
	s = strings.TrimSpace(s)
	for i, rf := range ratingFilters {
		if strings.EqualFold(s, rf.key) || strings.EqualFold(s, rf.label) {
			return RatingFilter(i), nil
		}
	}
	return 0, fmt.Errorf("rating %q: %w", s, ErrUnknownFilter)
}

// MediaFilter is a closed set of media type choices
type MediaFilter int

// media filter choices
const (
	MediaFilterVideo MediaFilter = iota
	MediaFilterImages
	MediaFilterBoth
)

var mediaFilters = []struct {
	key, label, tag string
}{
	MediaFilterVideo:  {"video", "Video Only", "animated"},
	MediaFilterImages: {"images", "Images Only", "-animated"},
	MediaFilterBoth:   {"both", "Video and Images", ""},
}

// MediaFilters returns all media filter choices
func MediaFilters() []MediaFilter {
	res := make([]MediaFilter, len(mediaFilters))
	for i := range mediaFilters {
		res[i] = MediaFilter(i)
	}
	return res
}

func (f MediaFilter) valid() bool { return f >= 0 && int(f) < len(mediaFilters) }

// Key returns short identifier used by the API
func (f MediaFilter) Key() string {
	if !f.valid() {
		return ""
	}
	return mediaFilters[f].key
}

// Label returns human-readable choice, also used in persisted cursor keys
func (f MediaFilter) Label() string {
	if !f.valid() {
		return ""
	}
	return mediaFilters[f].label
}

// Tag returns inclusion/exclusion search tag for animated content, empty for both
func (f MediaFilter) Tag() string {
	if !f.valid() {
		return ""
	}
	return mediaFilters[f].tag
}

// String implements fmt.Stringer
func (f MediaFilter) String() string { return f.Label() }

// Accepts re-checks post media type against the filter by file extension.
// The search tag is advisory, boards don't always tag animated posts.
func (f MediaFilter) Accepts(p Post) bool {
	switch f {
	case MediaFilterVideo:
		return p.IsVideo()
	case MediaFilterImages:
		return !p.IsVideo()
	default:
		return true
	}
}

// ParseMediaFilter converts key or label to MediaFilter
func ParseMediaFilter(s string) (MediaFilter, error) {
	s = strings.TrimSpace(s)
	for i, mf := range mediaFilters {
		if strings.EqualFold(s, mf.key) || strings.EqualFold(s, mf.label) {
			return MediaFilter(i), nil
		}
	}
	return 0, fmt.Errorf("media %q: %w", s, ErrUnknownFilter)
}

// Filters holds the user-selected filter combination and tag blacklist
type Filters struct {
	Rating    RatingFilter
	Media     MediaFilter
	Blacklist []string
}

// DefaultFilters returns filters used before the user picks anything
func DefaultFilters() Filters {
	return Filters{Rating: RatingFilterGeneralSensitive, Media: MediaFilterBoth}
}

// SearchTags composes search expression for the filters. Only the first maxNegated
// blacklist entries are sent upstream, boards limit the number of tags per query.
func (f Filters) SearchTags(maxNegated int) string {
	tags := make([]string, 0, 2+len(f.Blacklist))
	if t := f.Media.Tag(); t != "" {
		tags = append(tags, t)
	}
	if t := f.Rating.Tag(); t != "" {
		tags = append(tags, t)
	}
	for i, b := range f.Blacklist {
		if i >= maxNegated {
			break
		}
		tags = append(tags, "-"+b)
	}
	return strings.Join(tags, " ")
}

// Blacklisted returns the first blacklisted tag found on the post, empty if none
func (f Filters) Blacklisted(p Post) string {
	if len(f.Blacklist) == 0 {
		return ""
	}
	for _, t := range p.TagList() {
		for _, b := range f.Blacklist {
			if t == b {
				return b
			}
		}
	}
	return ""
}

// Equal reports whether two filter sets select the same feed
func (f Filters) Equal(o Filters) bool {
	if f.Rating != o.Rating || f.Media != o.Media || len(f.Blacklist) != len(o.Blacklist) {
		return false
	}
	for i := range f.Blacklist {
		if f.Blacklist[i] != o.Blacklist[i] {
			return false
		}
	}
	return true
}

// Validate checks that both filters are known choices
func (f Filters) Validate() error {
	if !f.Rating.valid() {
		return fmt.Errorf("rating %d: %w", int(f.Rating), ErrUnknownFilter)
	}
	if !f.Media.valid() {
		return fmt.Errorf("media %d: %w", int(f.Media), ErrUnknownFilter)
	}
	return nil
}
