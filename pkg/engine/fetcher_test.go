package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/engine/mocks"
)

func post(id int64, tags string) domain.Post {
	return domain.Post{ID: id, Tags: tags, Rating: domain.RatingGeneral, FileURL: fmt.Sprintf("https://cdn/%d.jpg", id), FileExt: "jpg"}
}

// pagedSearcher returns posts by page number, empty for unknown pages
func pagedSearcher(pages map[int][]domain.Post) *mocks.SearcherMock {
	return &mocks.SearcherMock{
		SearchFunc: func(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
			return pages[page], nil
		},
	}
}

func ids(posts []domain.Post) []int64 {
	res := make([]int64, len(posts))
	for i, p := range posts {
		res[i] = p.ID
	}
	return res
}

func TestFetcher_DropsSeen(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 2, domain.StatusDisliked, "b", domain.RatingGeneral))

	search := pagedSearcher(map[int][]domain.Post{1: {post(1, "a"), post(2, "b"), post(3, "c"), post(3, "c")}})
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now), FetchParams{})

	batch, err := f.FetchBatch(ctx, domain.DefaultFilters(), 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(batch.Posts))
	assert.Equal(t, 1, batch.Page)

	for _, p := range batch.Posts {
		seen, err := repos.Seen.IsSeen(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, seen, "fetch never returns seen posts")
	}

	require.Len(t, search.SearchCalls(), 1)
	assert.Equal(t, DefaultPageLimit, search.SearchCalls()[0].Limit)
	assert.Equal(t, "rating:general..sensitive", search.SearchCalls()[0].Tags)
}

func TestFetcher_WalksPages(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.MarkSeen(ctx, 2, "a", domain.RatingGeneral))

	search := pagedSearcher(map[int][]domain.Post{
		1: {post(1, "a"), post(2, "a")}, // all seen
		2: {},                           // empty page
		3: {post(5, "b"), post(6, "c")},
	})
	cm := NewCursorManager(repos.Setting, 0, newTestClock().Now)
	f := NewFetcher(search, repos.Seen, cm, FetchParams{Limit: 2})

	filters := domain.Filters{Rating: domain.RatingFilterGeneral, Media: domain.MediaFilterImages}
	page, err := cm.Get(ctx, filters.Rating, filters.Media)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	batch, err := f.FetchBatch(ctx, filters, page, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, ids(batch.Posts))
	assert.Equal(t, 3, batch.Page)

	calls := search.SearchCalls()
	require.Len(t, calls, 3)
	for i, c := range calls {
		assert.Equal(t, i+1, c.Page)
		assert.Equal(t, "-animated rating:general", c.Tags)
		assert.Equal(t, 2, c.Limit)
	}

	page, err = cm.Get(ctx, filters.Rating, filters.Media)
	require.NoError(t, err)
	assert.Equal(t, 3, page, "cursor follows the page with fresh content")
}

func TestFetcher_Exhausted(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	search := pagedSearcher(nil)
	cm := NewCursorManager(repos.Setting, 0, newTestClock().Now)
	f := NewFetcher(search, repos.Seen, cm, FetchParams{MaxPages: 4})

	batch, err := f.FetchBatch(ctx, domain.DefaultFilters(), 2, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, batch.Posts)
	assert.Equal(t, 6, batch.Page)
	assert.Len(t, search.SearchCalls(), 4)

	page, err := cm.Get(ctx, domain.DefaultFilters().Rating, domain.DefaultFilters().Media)
	require.NoError(t, err)
	assert.Equal(t, 6, page)
}

func TestFetcher_RateLimited(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	search := &mocks.SearcherMock{
		SearchFunc: func(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
			if page == 1 {
				return nil, nil
			}
			return nil, fmt.Errorf("search: %w", booru.ErrRateLimited)
		},
	}
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now), FetchParams{})

	batch, err := f.FetchBatch(ctx, domain.DefaultFilters(), 1, nil, nil)
	require.ErrorIs(t, err, ErrTryLater)
	assert.Empty(t, batch.Posts)
	assert.Len(t, search.SearchCalls(), 2, "no retry after rate limit")
}

func TestFetcher_SearchError(t *testing.T) {
	repos := setupRepos(t)
	search := &mocks.SearcherMock{
		SearchFunc: func(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
			return nil, errors.New("unexpected status 500")
		},
	}
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now), FetchParams{})

	_, err := f.FetchBatch(context.Background(), domain.DefaultFilters(), 1, nil, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTryLater)
	assert.Contains(t, err.Error(), "unexpected status 500")
	assert.Len(t, search.SearchCalls(), 1)
}

func TestFetcher_LedgerError(t *testing.T) {
	repos := setupRepos(t)
	ledger := &mocks.LedgerMock{
		IsSeenFunc: func(ctx context.Context, postID int64) (bool, error) {
			return false, errors.New("db locked forever")
		},
	}
	search := pagedSearcher(map[int][]domain.Post{1: {post(1, "a")}})
	f := NewFetcher(search, ledger, NewCursorManager(repos.Setting, 0, newTestClock().Now), FetchParams{})

	_, err := f.FetchBatch(context.Background(), domain.DefaultFilters(), 1, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked forever")
}

func TestFetcher_Filters(t *testing.T) {
	video := post(10, "animated cat")
	video.FileExt = "webm"
	lowScore := post(11, "cat")
	lowScore.Score = -5
	blacklisted := post(12, "cat gore")
	delivered := post(13, "cat")
	gated := post(14, "cat ugly")
	good := post(15, "cat")

	search := pagedSearcher(map[int][]domain.Post{1: {video, lowScore, blacklisted, delivered, gated, good}})
	repos := setupRepos(t)
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now),
		FetchParams{MaxQueryBlacklist: 1})

	filters := domain.Filters{Rating: domain.RatingFilterAll, Media: domain.MediaFilterImages, Blacklist: []string{"gore", "spoilers"}}
	skip := map[int64]struct{}{13: {}}
	gate := func(p domain.Post) bool { return !p.HasTag("ugly") }

	batch, err := f.FetchBatch(context.Background(), filters, 1, skip, gate)
	require.NoError(t, err)
	assert.Equal(t, []int64{15}, ids(batch.Posts))
	assert.Equal(t, "-animated -gore", search.SearchCalls()[0].Tags, "only one blacklisted tag sent upstream")
}

func TestFetcher_MinPostScore(t *testing.T) {
	p1, p2 := post(1, "a"), post(2, "b")
	p1.Score, p2.Score = 3, 10
	search := pagedSearcher(map[int][]domain.Post{1: {p1, p2}})
	repos := setupRepos(t)
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now), FetchParams{MinPostScore: 5})

	batch, err := f.FetchBatch(context.Background(), domain.DefaultFilters(), 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(batch.Posts))
}

func TestFetcher_CourtesyDelay(t *testing.T) {
	repos := setupRepos(t)
	search := pagedSearcher(map[int][]domain.Post{3: {post(1, "a")}})
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now),
		FetchParams{Delay: 50 * time.Millisecond})

	st := time.Now()
	batch, err := f.FetchBatch(context.Background(), domain.DefaultFilters(), 1, nil, nil)
	require.NoError(t, err)
	assert.Len(t, batch.Posts, 1)
	assert.GreaterOrEqual(t, time.Since(st), 90*time.Millisecond, "three calls need two pauses")
}

func TestFetcher_ContextCanceled(t *testing.T) {
	repos := setupRepos(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	search := &mocks.SearcherMock{
		SearchFunc: func(ctx context.Context, tags string, page, limit int) ([]domain.Post, error) {
			cancel()
			return nil, nil
		},
	}
	f := NewFetcher(search, repos.Seen, NewCursorManager(repos.Setting, 0, newTestClock().Now),
		FetchParams{Delay: time.Hour})

	_, err := f.FetchBatch(ctx, domain.DefaultFilters(), 1, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, search.SearchCalls(), 1)
}
