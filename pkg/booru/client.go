// Package booru implements post search against danbooru, gelbooru and moebooru boards
package booru

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/metrics"
)

// ErrRateLimited is returned when the board asks to slow down or the client backs off on its own
var ErrRateLimited = errors.New("rate limited")

// DefaultBaseURL is the public danbooru instance
const DefaultBaseURL = "https://danbooru.donmai.us"

// Params defines client configuration
type Params struct {
	Kind             Kind
	BaseURL          string
	Login            string
	APIKey           string
	UserAgent        string
	Timeout          time.Duration
	BreakerFailures  uint32        // consecutive failures to open the breaker
	BreakerCooldown  time.Duration // time the breaker stays open
	MaxResponseBytes int64
}

// Client searches posts on the board
type Client struct {
	params  Params
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]domain.Post]
	adapter adapter
}

// NewClient makes board client with defaults for missing params
func NewClient(params Params) *Client {
	if params.Kind == "" {
		params.Kind = KindDanbooru
	}
	if params.BaseURL == "" {
		params.BaseURL = DefaultURL(params.Kind)
	}
	params.BaseURL = strings.TrimSuffix(params.BaseURL, "/")
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.UserAgent == "" {
		params.UserAgent = "booruscope"
	}
	if params.BreakerFailures == 0 {
		params.BreakerFailures = 5
	}
	if params.BreakerCooldown <= 0 {
		params.BreakerCooldown = time.Minute
	}
	if params.MaxResponseBytes <= 0 {
		params.MaxResponseBytes = 16 * 1024 * 1024
	}

	res := &Client{params: params, http: &http.Client{Timeout: params.Timeout}, adapter: newAdapter(params.Kind, params)}
	metrics.BreakerState.Set(0)
	res.cb = gobreaker.NewCircuitBreaker[[]domain.Post](gobreaker.Settings{
		Name:        "booru-search",
		MaxRequests: 1,
		Timeout:     params.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= params.BreakerFailures
		},
		// rate limiting and caller cancellation are not board failures
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[WARN] circuit breaker %s changed from %s to %s", name, from, to)
			metrics.BreakerState.Set(stateToFloat(to))
		},
	})
	return res
}

// BaseURL returns the board address
func (c *Client) BaseURL() string { return c.params.BaseURL }

// PostURL returns the board page of a post
func (c *Client) PostURL(id int64) string { return c.adapter.postURL(id) }

// Search returns posts matching the tag expression for the given page.
// Posts without id or file url (deleted, banned, restricted) are dropped.
func (c *Client) Search(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
	start := time.Now()
	posts, err := c.cb.Execute(func() ([]domain.Post, error) {
		return c.search(ctx, tags, page, limit)
	})
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.SearchRequests.WithLabelValues(metrics.SearchRejected).Inc()
		return nil, fmt.Errorf("search %q page %d, %v: %w", tags, page, err, ErrRateLimited)
	case errors.Is(err, ErrRateLimited):
		metrics.SearchRequests.WithLabelValues(metrics.SearchRateLimited).Inc()
		return nil, err
	case err != nil:
		metrics.SearchRequests.WithLabelValues(metrics.SearchError).Inc()
		return nil, err
	case len(posts) == 0:
		metrics.SearchRequests.WithLabelValues(metrics.SearchEmpty).Inc()
	default:
		metrics.SearchRequests.WithLabelValues(metrics.SearchOK).Inc()
	}
	return posts, nil
}

func (c *Client) search(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.adapter.searchURL(tags, page, limit), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make search request: %w", err)
	}
	addHeaders(req, c.params.UserAgent)

	log.Printf("[DEBUG] search %s %q, page %d, limit %d", c.params.Kind, tags, page, limit)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", tags, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search %q page %d: %w", tags, page, ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search %q page %d: unexpected status %d: %s", tags, page, resp.StatusCode,
			strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.params.MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	return c.adapter.decode(data)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
