package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/time/rate"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/metrics"
)

// fetch loop defaults
const (
	DefaultPageLimit = 20
	DefaultMaxPages  = 100
	DefaultDelay     = 500 * time.Millisecond
)

// FetchParams defines fetch loop behavior
type FetchParams struct {
	Limit             int           // posts per page
	MaxPages          int           // page attempts per fetch
	Delay             time.Duration // minimal interval between search calls
	MinPostScore      int           // posts with lower board score are dropped
	MaxQueryBlacklist int           // blacklisted tags sent to the board, the rest filtered locally
}

// Batch is a set of fresh posts and the page they came from
type Batch struct {
	Posts []domain.Post
	Page  int
}

// Fetcher walks board pages until it finds posts not seen before
type Fetcher struct {
	search  Searcher
	ledger  Ledger
	cursor  *CursorManager
	limiter *rate.Limiter
	params  FetchParams
}

// NewFetcher makes fetcher, zero params replaced by defaults
func NewFetcher(search Searcher, ledger Ledger, cursor *CursorManager, params FetchParams) *Fetcher {
	if params.Limit <= 0 {
		params.Limit = DefaultPageLimit
	}
	if params.MaxPages <= 0 {
		params.MaxPages = DefaultMaxPages
	}
	if params.Delay < 0 {
		params.Delay = 0
	}
	if params.MinPostScore < 0 {
		params.MinPostScore = 0
	}

	limit := rate.Inf
	if params.Delay > 0 {
		limit = rate.Every(params.Delay)
	}
	return &Fetcher{
		search:  search,
		ledger:  ledger,
		cursor:  cursor,
		limiter: rate.NewLimiter(limit, 1),
		params:  params,
	}
}

// FetchBatch returns fresh posts starting from the given page. Posts seen in the ledger,
// listed in skip, blacklisted, of the wrong media type, below the minimal score or rejected
// by the optional gate are dropped. The cursor follows every page the loop walks to.
// Returns ErrTryLater if the board is rate limiting, and an empty batch with nil error
// if the page budget ran out.
func (f *Fetcher) FetchBatch(ctx context.Context, filters domain.Filters, page int, skip map[int64]struct{},
	gate func(domain.Post) bool) (Batch, error) {
	if page < 1 {
		page = 1
	}
	tags := filters.SearchTags(f.params.MaxQueryBlacklist)

	for attempt := 0; attempt < f.params.MaxPages; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return Batch{Page: page}, fmt.Errorf("wait for search slot: %w", err)
		}

		metrics.PagesWalked.Inc()
		posts, err := f.search.Search(ctx, tags, page, f.params.Limit)
		if errors.Is(err, booru.ErrRateLimited) {
			log.Printf("[WARN] search %q page %d rate limited: %v", tags, page, err)
			return Batch{Page: page}, ErrTryLater
		}
		if err != nil {
			return Batch{Page: page}, fmt.Errorf("search page %d: %w", page, err)
		}

		if len(posts) > 0 {
			fresh, err := f.filter(ctx, posts, filters, skip, gate)
			if err != nil {
				return Batch{Page: page}, err
			}
			if len(fresh) > 0 {
				if err := f.cursor.Advance(ctx, filters.Rating, filters.Media, page); err != nil {
					return Batch{Page: page}, err
				}
				log.Printf("[DEBUG] page %d gave %d fresh posts out of %d", page, len(fresh), len(posts))
				return Batch{Posts: fresh, Page: page}, nil
			}
		}

		page++
		if err := f.cursor.Advance(ctx, filters.Rating, filters.Media, page); err != nil {
			return Batch{Page: page}, err
		}
	}

	metrics.FetchExhausted.Inc()
	log.Printf("[INFO] no fresh posts for %q within %d pages, stopped at page %d", tags, f.params.MaxPages, page)
	return Batch{Page: page}, nil
}

// filter keeps posts worth showing, in board order
func (f *Fetcher) filter(ctx context.Context, posts []domain.Post, filters domain.Filters, skip map[int64]struct{},
	gate func(domain.Post) bool) ([]domain.Post, error) {
	res := make([]domain.Post, 0, len(posts))
	inBatch := make(map[int64]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := inBatch[p.ID]; ok {
			continue
		}
		if _, ok := skip[p.ID]; ok {
			metrics.PostsDropped.WithLabelValues(metrics.DropDelivered).Inc()
			continue
		}
		seen, err := f.ledger.IsSeen(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("check seen %d: %w", p.ID, err)
		}
		if seen {
			metrics.PostsDropped.WithLabelValues(metrics.DropSeen).Inc()
			continue
		}
		if tag := filters.Blacklisted(p); tag != "" {
			metrics.PostsDropped.WithLabelValues(metrics.DropBlacklisted).Inc()
			continue
		}
		if !filters.Media.Accepts(p) {
			metrics.PostsDropped.WithLabelValues(metrics.DropMedia).Inc()
			continue
		}
		if p.Score < f.params.MinPostScore {
			metrics.PostsDropped.WithLabelValues(metrics.DropScore).Inc()
			continue
		}
		if gate != nil && !gate(p) {
			metrics.PostsDropped.WithLabelValues(metrics.DropLikelihood).Inc()
			continue
		}
		inBatch[p.ID] = struct{}{}
		res = append(res, p)
	}
	return res, nil
}
