package profile

import (
	"math"

	"github.com/umputun/booruscope/pkg/domain"
)

// default scorer parameters
const (
	DefaultTagWeight    = 0.7
	DefaultRatingWeight = 0.3
	DefaultSteepness    = 5.0
)

// Scorer predicts how likely the user is to like a post.
// Each tag and the rating contribute Laplace-smoothed evidence (net+1)/(total+2),
// tag evidence is averaged, blended with the rating by weight and squashed with a sigmoid
// centered at 0.5, so a post with nothing known about it scores exactly 0.5.
type Scorer struct {
	TagWeight    float64
	RatingWeight float64
	Steepness    float64
}

// Breakdown shows how a likelihood was computed
type Breakdown struct {
	TagScore    float64 `json:"tag_score"`
	RatingScore float64 `json:"rating_score"`
	Blend       float64 `json:"blend"`
	Likelihood  float64 `json:"likelihood"`
}

// NewScorer makes scorer with default weights
func NewScorer() *Scorer {
	return &Scorer{TagWeight: DefaultTagWeight, RatingWeight: DefaultRatingWeight, Steepness: DefaultSteepness}
}

// Predict returns likelihood in (0,1) for the post under the given profile
func (s *Scorer) Predict(post domain.Post, p *Profile) float64 {
	return s.Explain(post, p).Likelihood
}

// Explain returns likelihood together with its components
func (s *Scorer) Explain(post domain.Post, p *Profile) Breakdown {
	if p == nil {
		p = New()
	}

	tagScore := 0.5
	if tags := post.TagList(); len(tags) > 0 {
		sum := 0.0
		for _, tag := range tags {
			sum += smoothed(p.TagScores[tag], p.TagTotals[tag])
		}
		tagScore = sum / float64(len(tags))
	}

	ratingScore := 0.5
	if total := p.RatingTotals[string(post.Rating)]; total > 0 {
		ratingScore = smoothed(p.RatingScores[string(post.Rating)], total)
	}

	tw, rw := s.weights()
	blend := (tagScore*tw + ratingScore*rw) / (tw + rw)
	return Breakdown{
		TagScore:    tagScore,
		RatingScore: ratingScore,
		Blend:       blend,
		Likelihood:  sigmoid(s.steepness() * (blend - 0.5)),
	}
}

func (s *Scorer) weights() (tagWeight, ratingWeight float64) {
	tw, rw := s.TagWeight, s.RatingWeight
	if tw < 0 || rw < 0 || tw+rw <= 0 {
		return DefaultTagWeight, DefaultRatingWeight
	}
	return tw, rw
}

func (s *Scorer) steepness() float64 {
	if s.Steepness <= 0 {
		return DefaultSteepness
	}
	return s.Steepness
}

// smoothed applies add-one smoothing to net score over total observations
func smoothed(net, total int) float64 {
	return float64(net+1) / float64(total+2)
}

// sigmoid is the logistic function, kept strictly inside (0,1) for large inputs
func sigmoid(x float64) float64 {
	res := 1 / (1 + math.Exp(-x))
	switch {
	case res >= 1:
		return math.Nextafter(1, 0)
	case res <= 0:
		return math.Nextafter(0, 1)
	}
	return res
}
