package booru

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/domain"
)

const samplePosts = `[
	{"id": 101, "tag_string": "blue_hair smile 1girl", "rating": "g", "file_url": "https://cdn.example.com/101.jpg", "file_ext": "jpg", "score": 12},
	{"id": 102, "tag_string": "animated cat", "rating": "s", "large_file_url": "https://cdn.example.com/102.webm", "file_ext": "WEBM", "score": 3},
	{"id": 103, "tag_string": "banned_artist", "rating": "q", "file_ext": "png", "score": 7},
	{"tag_string": "no_id", "rating": "e", "file_url": "https://cdn.example.com/x.png", "file_ext": "png"},
	{"id": 104, "tag_string": "", "rating": "x", "file_url": "https://cdn.example.com/104.gif", "file_ext": "gif", "score": -2}
]`

func TestClient_Search(t *testing.T) {
	var gotQuery, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts.json", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePosts))
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL + "/", UserAgent: "test-agent"})
	posts, err := c.Search(context.Background(), "-animated rating:general", 3, 20)
	require.NoError(t, err)

	q, err := parseQuery(gotQuery)
	require.NoError(t, err)
	assert.Equal(t, "-animated rating:general", q["tags"])
	assert.Equal(t, "3", q["page"])
	assert.Equal(t, "20", q["limit"])
	assert.NotContains(t, q, "login")
	assert.Equal(t, "test-agent", gotUA)

	require.Len(t, posts, 3)
	assert.Equal(t, domain.Post{
		ID:      101,
		Tags:    "blue_hair smile 1girl",
		Rating:  domain.RatingGeneral,
		FileURL: "https://cdn.example.com/101.jpg",
		FileExt: "jpg",
		Score:   12,
		PostURL: ts.URL + "/posts/101",
	}, posts[0])

	assert.Equal(t, int64(102), posts[1].ID)
	assert.Equal(t, "https://cdn.example.com/102.webm", posts[1].FileURL, "large file url used as fallback")
	assert.Equal(t, "webm", posts[1].FileExt)
	assert.Equal(t, domain.RatingSensitive, posts[1].Rating)
	assert.True(t, posts[1].IsVideo())

	assert.Equal(t, int64(104), posts[2].ID)
	assert.Equal(t, domain.Rating(""), posts[2].Rating, "unknown rating")
	assert.Equal(t, -2, posts[2].Score)
}

func TestClient_SearchCredentials(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL, Login: "user", APIKey: "secret"})
	posts, err := c.Search(context.Background(), "cat", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)

	q, err := parseQuery(gotQuery)
	require.NoError(t, err)
	assert.Equal(t, "user", q["login"])
	assert.Equal(t, "secret", q["api_key"])
}

func TestClient_SearchErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		rateLimited bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: "slow down", rateLimited: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "forbidden", status: http.StatusForbidden, body: "nope"},
		{name: "bad json", status: http.StatusOK, body: "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := NewClient(Params{BaseURL: ts.URL})
			posts, err := c.Search(context.Background(), "cat", 1, 10)
			require.Error(t, err)
			assert.Nil(t, posts)
			assert.Equal(t, tt.rateLimited, errorsIsRateLimited(err))
		})
	}
}

func TestClient_CircuitBreaker(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL, BreakerFailures: 2, BreakerCooldown: time.Hour})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := c.Search(ctx, "cat", 1, 10)
		require.Error(t, err)
		assert.False(t, errorsIsRateLimited(err))
	}

	// breaker is open now, requests are not sent and reported as rate limited
	_, err := c.Search(ctx, "cat", 1, 10)
	require.Error(t, err)
	assert.True(t, errorsIsRateLimited(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RateLimitDoesNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(Params{BaseURL: ts.URL, BreakerFailures: 2, BreakerCooldown: time.Hour})
	for i := 0; i < 5; i++ {
		_, err := c.Search(context.Background(), "cat", 1, 10)
		require.Error(t, err)
	}
	assert.Equal(t, int32(5), calls.Load(), "every call must reach the board")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Params{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, 30*time.Second, c.http.Timeout)
}
