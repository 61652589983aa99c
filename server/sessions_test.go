package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/domain"
)

func stringReader(s string) *strings.Reader { return strings.NewReader(s) }

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	require.Fail(t, "no session cookie")
	return nil
}

func TestSessionStore(t *testing.T) {
	filters := domain.Filters{Rating: domain.RatingFilterExplicit, Media: domain.MediaFilterVideo}
	store := newSessionStore(time.Hour, filters)

	w := httptest.NewRecorder()
	sess := store.session(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.NotNil(t, sess)
	assert.Equal(t, filters, sess.Filters())
	assert.Equal(t, 1, store.count())

	cookie := sessionCookieFrom(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	t.Run("same cookie, same session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		assert.Same(t, sess, store.session(w, req))
		assert.Empty(t, w.Result().Cookies(), "cookie not reissued")
		assert.Equal(t, 1, store.count())
	})

	t.Run("unknown or malformed cookie makes new session", func(t *testing.T) {
		for _, v := range []string{"not-a-uuid", "7b4c7d5e-9a3f-4f3e-8a55-1d2c3b4a5f60"} {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: v})
			w := httptest.NewRecorder()
			other := store.session(w, req)
			assert.NotSame(t, sess, other)
			assert.NotEqual(t, v, sessionCookieFrom(t, w).Value)
		}
		assert.Equal(t, 3, store.count())
	})
}

func TestSessionStore_Expiry(t *testing.T) {
	store := newSessionStore(50*time.Millisecond, domain.DefaultFilters())
	w := httptest.NewRecorder()
	sess := store.session(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	cookie := sessionCookieFrom(t, w)

	time.Sleep(100 * time.Millisecond)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	assert.NotSame(t, sess, store.session(w, req), "expired session replaced")
}

func TestSessionStore_DefaultTTL(t *testing.T) {
	store := newSessionStore(0, domain.DefaultFilters())
	assert.Equal(t, 2*time.Hour, store.ttl)
}
