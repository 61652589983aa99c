package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/booru"
	"github.com/umputun/booruscope/pkg/config"
	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/engine"
	"github.com/umputun/booruscope/pkg/profile"
	"github.com/umputun/booruscope/pkg/repository"
)

// TestServer_Browse drives the whole stack: board client, ledger, engine and API
func TestServer_Browse(t *testing.T) {
	board := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") != "1" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = fmt.Fprint(w, `[
			{"id": 1, "tag_string": "cat_ears solo", "rating": "g", "file_url": "https://cdn/1.jpg", "file_ext": "jpg", "score": 5},
			{"id": 2, "tag_string": "gore", "rating": "g", "file_url": "https://cdn/2.jpg", "file_ext": "jpg", "score": 5}
		]`)
	}))
	defer board.Close()

	ctx := context.Background()
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	cfg := config.Default()
	cfg.Booru.BaseURL = board.URL
	cfg.Profile.Path = filepath.Join(t.TempDir(), "profile.json")

	client := booru.NewClient(booru.Params{BaseURL: board.URL})
	eng := engine.New(client, repos.Seen, repos.Setting, profile.NewFileStore(cfg.Profile.Path),
		engine.Params{Fetch: engine.FetchParams{MaxPages: 3}})
	srv := New(testConfig(cfg), eng, repos.Seen, "test", false)

	nextID := func(cookies ...*http.Cookie) (int64, *httptest.ResponseRecorder) {
		w := do(srv, http.MethodGet, "/api/v1/next", "", cookies...)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp postResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Post.ID, w
	}

	id, w := nextID()
	assert.Equal(t, int64(1), id)
	cookie := sessionCookieFrom(t, w)

	w = do(srv, http.MethodPost, "/api/v1/interactions", `{"post_id": 1, "kind": "like"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	id, _ = nextID(cookie)
	assert.Equal(t, int64(2), id)
	w = do(srv, http.MethodPost, "/api/v1/interactions", `{"post_id": 2, "kind": "dislike"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(srv, http.MethodGet, "/api/v1/next", "", cookie)
	assert.Equal(t, http.StatusNoContent, w.Code, "board has nothing fresh")

	w = do(srv, http.MethodPost, "/api/v1/interactions", `{"post_id": 77, "kind": "like"}`, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code, "never shown post")

	// another browser never sees posts already shown
	w = do(srv, http.MethodGet, "/api/v1/next", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(srv, http.MethodGet, "/api/v1/previous", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)

	w = do(srv, http.MethodGet, "/api/v1/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report engine.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalLiked)
	assert.Equal(t, 1, report.TotalDisliked)
	require.NotEmpty(t, report.BottomTags)
	assert.Equal(t, "gore", report.BottomTags[0].Name)

	stats, err := repos.Seen.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerStats{Seen: 2, Liked: 1, Disliked: 1}, stats)

	w = do(srv, http.MethodGet, "/rss/liked", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<link>"+board.URL+"/posts/1</link>")
	assert.NotContains(t, w.Body.String(), "/posts/2</link>")

	snap, err := profile.NewFileStore(cfg.Profile.Path).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TagScores["cat_ears"])
	assert.Equal(t, -1, snap.TagScores["gore"])
}
