package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/metrics"
)

// TimeLayout is the format of the last accessed timestamp in settings
const TimeLayout = "2006-01-02 15:04:05.000000"

// DefaultIdleTimeout is how long the app may stay unused before all cursors go back to the first page
const DefaultIdleTimeout = 30 * time.Minute

// CursorManager keeps the last fetched page per rating and media filter pair
type CursorManager struct {
	settings Settings
	idle     time.Duration
	now      func() time.Time
}

// NewCursorManager makes cursor manager. Zero idle uses DefaultIdleTimeout, nil now uses time.Now.
func NewCursorManager(settings Settings, idle time.Duration, now func() time.Time) *CursorManager {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &CursorManager{settings: settings, idle: idle, now: now}
}

// Get returns the page to fetch for the filter pair and refreshes last accessed time.
// If the app was idle for longer than the idle timeout, every cursor is reset to the first page first.
func (c *CursorManager) Get(ctx context.Context, r domain.RatingFilter, m domain.MediaFilter) (int, error) {
	last, err := c.settings.GetSetting(ctx, domain.SettingLastAccessed, "")
	if err != nil {
		return 0, fmt.Errorf("get last accessed: %w", err)
	}

	if c.expired(last) {
		log.Printf("[INFO] app was idle since %q, resetting all page cursors", last)
		if err := c.ResetAll(ctx); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err := c.Touch(ctx); err != nil {
		return 0, err
	}

	val, err := c.settings.GetSetting(ctx, domain.CursorKey(r, m), "1")
	if err != nil {
		return 0, fmt.Errorf("get cursor for %s/%s: %w", r, m, err)
	}
	page, err := strconv.Atoi(val)
	if err != nil || page < 1 {
		log.Printf("[WARN] invalid page cursor %q for %s/%s, using 1", val, r, m)
		return 1, nil
	}
	return page, nil
}

// Idle reports whether the app was unused for longer than the idle timeout
func (c *CursorManager) Idle(ctx context.Context) (bool, error) {
	last, err := c.settings.GetSetting(ctx, domain.SettingLastAccessed, "")
	if err != nil {
		return false, fmt.Errorf("get last accessed: %w", err)
	}
	return c.expired(last), nil
}

// Touch records activity, keeping cursors from the idle reset
func (c *CursorManager) Touch(ctx context.Context) error {
	if err := c.settings.SetSetting(ctx, domain.SettingLastAccessed, c.now().Format(TimeLayout)); err != nil {
		return fmt.Errorf("set last accessed: %w", err)
	}
	return nil
}

// Advance stores the page for the filter pair and refreshes last accessed time
func (c *CursorManager) Advance(ctx context.Context, r domain.RatingFilter, m domain.MediaFilter, page int) error {
	if page < 1 {
		page = 1
	}
	err := c.settings.SetSettings(ctx, map[string]string{
		domain.CursorKey(r, m):     strconv.Itoa(page),
		domain.SettingLastAccessed: c.now().Format(TimeLayout),
	})
	if err != nil {
		return fmt.Errorf("advance cursor for %s/%s to %d: %w", r, m, page, err)
	}
	return nil
}

// ResetAll sets every cursor to the first page in a single write
func (c *CursorManager) ResetAll(ctx context.Context) error {
	values := make(map[string]string, len(domain.RatingFilters())*len(domain.MediaFilters())+1)
	for _, r := range domain.RatingFilters() {
		for _, m := range domain.MediaFilters() {
			values[domain.CursorKey(r, m)] = "1"
		}
	}
	values[domain.SettingLastAccessed] = c.now().Format(TimeLayout)
	if err := c.settings.SetSettings(ctx, values); err != nil {
		return fmt.Errorf("reset cursors: %w", err)
	}
	metrics.CursorResets.Inc()
	return nil
}

// expired checks last accessed timestamp against idle timeout.
// Missing timestamp means first run, unreadable one is treated as expired.
func (c *CursorManager) expired(last string) bool {
	if last == "" {
		return false
	}
	now := c.now()
	ts, err := time.ParseInLocation(TimeLayout, last, now.Location())
	if err != nil {
		// timestamps written without fractional seconds
		if ts, err = time.ParseInLocation(time.DateTime, last, now.Location()); err != nil {
			log.Printf("[WARN] can't parse last accessed time %q: %v", last, err)
			return true
		}
	}
	return now.Sub(ts) > c.idle
}
