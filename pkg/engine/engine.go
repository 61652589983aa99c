// Package engine assembles the content feed: it walks board pages with per-filter cursors,
// skips posts already seen, ranks candidates with the preference profile and records reactions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/metrics"
	"github.com/umputun/booruscope/pkg/profile"
	"github.com/umputun/booruscope/pkg/repository"
)

// ErrTryLater is returned when the board is rate limiting and no content can be fetched now
var ErrTryLater = errors.New("board is rate limiting, try later")

// ErrUnknownPost is returned for reactions to posts never shown to the user
var ErrUnknownPost = errors.New("unknown post")

// Params defines engine configuration
type Params struct {
	Fetch           FetchParams
	IdleTimeout     time.Duration // cursors reset after this much inactivity
	Ranked          bool          // show candidates by predicted likelihood instead of board order
	MinLikelihood   float64       // candidates predicted below are skipped, 0 disables
	MinLikesForGate int           // likelihood gate kicks in after this many liked posts
	Scorer          *profile.Scorer
	Now             func() time.Time
}

// Engine serves posts to sessions and learns from reactions.
// Ledger and profile mutations are serialized by a single lock.
type Engine struct {
	ledger  Ledger
	store   ProfileStore
	cursor  *CursorManager
	fetcher *Fetcher
	scorer  *profile.Scorer
	params  Params

	mu      sync.Mutex
	profile *profile.Profile
	stale   bool // cached profile can't be trusted, rebuild from ledger on next use
}

// Report summarizes the profile
type Report struct {
	TopTags       []profile.Entry `json:"top_tags"`
	BottomTags    []profile.Entry `json:"bottom_tags"`
	Ratings       []profile.Entry `json:"ratings"`
	TotalLiked    int             `json:"total_liked"`
	TotalDisliked int             `json:"total_disliked"`
}

// New makes engine
func New(search Searcher, ledger Ledger, settings Settings, store ProfileStore, params Params) *Engine {
	if params.Scorer == nil {
		params.Scorer = profile.NewScorer()
	}
	cursor := NewCursorManager(settings, params.IdleTimeout, params.Now)
	return &Engine{
		ledger:  ledger,
		store:   store,
		cursor:  cursor,
		fetcher: NewFetcher(search, ledger, cursor, params.Fetch),
		scorer:  params.Scorer,
		params:  params,
	}
}

// Cursor returns cursor manager used by the engine
func (e *Engine) Cursor() *CursorManager { return e.cursor }

// Next returns the next post for the session. Posts stepped back from are shown again first,
// then queued candidates, refilled from the board when the queue is empty. A newly shown post
// is recorded in the ledger. Returns nil post with nil error if no fresh content is left.
func (e *Engine) Next(ctx context.Context, sess *Session) (*domain.Post, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if p, ok := sess.popForward(); ok {
		sess.history = append(sess.history, p)
		e.touch(ctx)
		return &p, nil
	}

	for {
		p, ok := sess.popQueue()
		if !ok {
			if err := e.refill(ctx, sess); err != nil {
				return nil, err
			}
			if len(sess.queue) == 0 {
				return nil, nil
			}
			continue
		}

		if _, ok := sess.delivered[p.ID]; ok {
			continue
		}
		// another session could show it after it was queued
		seen, err := e.ledger.IsSeen(ctx, p.ID)
		if err != nil {
			sess.queue = append([]domain.Post{p}, sess.queue...)
			return nil, fmt.Errorf("check seen %d: %w", p.ID, err)
		}
		if seen {
			continue
		}

		if err := e.markSeen(ctx, p); err != nil {
			sess.queue = append([]domain.Post{p}, sess.queue...)
			return nil, err
		}
		sess.push(p)
		metrics.PostsServed.Inc()
		e.touch(ctx)
		return &p, nil
	}
}

// Previous steps back in session history and returns the prior post,
// nil if there is nothing to go back to
func (e *Engine) Previous(sess *Session) *domain.Post {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	p, ok := sess.back()
	if !ok {
		return nil
	}
	return &p
}

// Reset clears session history and queued candidates. Ledger and cursors are not touched.
func (e *Engine) Reset(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.reset()
}

// UpdateFilters switches session filters. Queued candidates fetched with old filters are dropped,
// history is kept for back navigation.
func (e *Engine) UpdateFilters(sess *Session, filters domain.Filters) error {
	if err := filters.Validate(); err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.filters.Equal(filters) {
		return nil
	}
	sess.filters = filters
	sess.queue = nil
	sess.forward = nil
	sess.page = 0
	return nil
}

// RecordInteraction stores user reaction to a shown post and updates the profile.
// A first reaction is applied incrementally, a changed reaction rebuilds the profile from the ledger.
// If the profile can't be saved it is marked stale and the error is returned, the ledger keeps the reaction.
func (e *Engine) RecordInteraction(ctx context.Context, postID int64, kind domain.Interaction) error {
	status, err := kind.Status()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.ledger.GetSeen(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("post %d: %w", postID, ErrUnknownPost)
	}
	if err != nil {
		return fmt.Errorf("get post %d from ledger: %w", postID, err)
	}
	if rec.Status == status {
		return nil
	}

	prof, err := e.loadProfile(ctx)
	if err != nil {
		return err
	}

	if err := e.ledger.SetStatus(ctx, postID, status, rec.Tags, rec.Rating); err != nil {
		return fmt.Errorf("set status of %d: %w", postID, err)
	}
	metrics.Interactions.WithLabelValues(string(status)).Inc()
	log.Printf("[DEBUG] post %d marked %q, was %q", postID, status, rec.Status)

	if rec.Status.IsReaction() {
		// the previous reaction is already folded into the profile
		if _, err := e.rebuild(ctx); err != nil {
			return err
		}
		return e.save()
	}

	prof.Apply(rec.Tags, rec.Rating, status)
	return e.save()
}

// Predict returns likelihood of the user liking the post
func (e *Engine) Predict(ctx context.Context, post domain.Post) (profile.Breakdown, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prof, err := e.loadProfile(ctx)
	if err != nil {
		return profile.Breakdown{}, err
	}
	return e.scorer.Explain(post, prof), nil
}

// ProfileReport returns n most and least liked tags with rating scores
func (e *Engine) ProfileReport(ctx context.Context, n int) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prof, err := e.loadProfile(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		TopTags:       prof.TopTags(n),
		BottomTags:    prof.BottomTags(n),
		Ratings:       prof.TopRatings(),
		TotalLiked:    prof.TotalLiked,
		TotalDisliked: prof.TotalDisliked,
	}, nil
}

// RebuildProfile recomputes the profile from the ledger and saves the snapshot
func (e *Engine) RebuildProfile(ctx context.Context) (*profile.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prof, err := e.rebuild(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.save(); err != nil {
		return nil, err
	}
	return prof.Clone(), nil
}

// refill fetches the next batch of candidates into the session queue
func (e *Engine) refill(ctx context.Context, sess *Session) error {
	filters := sess.filters
	if sess.page != 0 {
		idle, err := e.cursor.Idle(ctx)
		if err != nil {
			return err
		}
		if idle {
			sess.page = 0 // cursor.Get resets all cursors
		}
	}

	var page int
	if sess.page == 0 {
		p, err := e.cursor.Get(ctx, filters.Rating, filters.Media)
		if err != nil {
			return err
		}
		page = p
	} else {
		// the queue came from sess.page and is used up
		page = sess.page + 1
		if err := e.cursor.Advance(ctx, filters.Rating, filters.Media, page); err != nil {
			return err
		}
	}

	prof, err := e.scoringProfile(ctx)
	if err != nil {
		return err
	}

	batch, err := e.fetcher.FetchBatch(ctx, filters, page, sess.deliveredIDs(), e.gate(prof))
	if err != nil {
		// pages before the failed one are walked already, retry resumes from it
		sess.page = max(batch.Page-1, 0)
		return err
	}
	sess.page = batch.Page
	sess.queue = batch.Posts

	if e.params.Ranked && len(sess.queue) > 1 {
		scores := make(map[int64]float64, len(sess.queue))
		for _, p := range sess.queue {
			scores[p.ID] = e.scorer.Predict(p, prof)
		}
		sort.SliceStable(sess.queue, func(i, j int) bool {
			return scores[sess.queue[i].ID] > scores[sess.queue[j].ID]
		})
	}
	return nil
}

// gate returns candidate filter by predicted likelihood, nil if gating is off or the profile is too young
func (e *Engine) gate(prof *profile.Profile) func(domain.Post) bool {
	if e.params.MinLikelihood <= 0 || prof.TotalLiked < e.params.MinLikesForGate {
		return nil
	}
	return func(p domain.Post) bool {
		return e.scorer.Predict(p, prof) >= e.params.MinLikelihood
	}
}

// scoringProfile returns a copy of the profile safe to use without the lock
func (e *Engine) scoringProfile(ctx context.Context) (*profile.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prof, err := e.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	return prof.Clone(), nil
}

// touch refreshes last accessed time, failure only delays the idle reset
func (e *Engine) touch(ctx context.Context) {
	if err := e.cursor.Touch(ctx); err != nil {
		log.Printf("[WARN] can't refresh last accessed time: %v", err)
	}
}

func (e *Engine) markSeen(ctx context.Context, p domain.Post) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.MarkSeen(ctx, p.ID, p.Tags, p.Rating); err != nil {
		return fmt.Errorf("mark seen %d: %w", p.ID, err)
	}
	return nil
}

// loadProfile returns cached profile, loading the snapshot or rebuilding from the ledger when needed.
// Must be called with e.mu held.
func (e *Engine) loadProfile(ctx context.Context) (*profile.Profile, error) {
	if e.profile != nil && !e.stale {
		return e.profile, nil
	}
	if e.stale {
		return e.rebuild(ctx)
	}

	prof, err := e.store.Load()
	switch {
	case err == nil:
		e.profile = prof
		return prof, nil
	case errors.Is(err, profile.ErrNoSnapshot):
		log.Printf("[INFO] no profile snapshot, building from ledger")
	default:
		log.Printf("[WARN] can't load profile snapshot, rebuilding from ledger: %v", err)
	}

	if _, err := e.rebuild(ctx); err != nil {
		return nil, err
	}
	if err := e.save(); err != nil {
		log.Printf("[WARN] %v", err)
	}
	return e.profile, nil
}

// rebuild replaces cached profile with one computed from the ledger. Must be called with e.mu held.
func (e *Engine) rebuild(ctx context.Context) (*profile.Profile, error) {
	records, err := e.ledger.Interacted(ctx)
	if err != nil {
		e.stale = true
		return nil, fmt.Errorf("get reactions from ledger: %w", err)
	}
	e.profile = profile.Rebuild(records)
	e.stale = false
	metrics.ProfileRebuilds.Inc()
	log.Printf("[DEBUG] profile rebuilt from %d reactions", len(records))
	return e.profile, nil
}

// save writes profile snapshot, marks profile stale on failure. Must be called with e.mu held.
func (e *Engine) save() error {
	if err := e.store.Save(e.profile); err != nil {
		e.stale = true
		return fmt.Errorf("save profile: %w", err)
	}
	e.stale = false
	return nil
}
