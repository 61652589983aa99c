package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/engine"
	"github.com/umputun/booruscope/pkg/metrics"
)

const sessionCookie = "booruscope_session"

// sessionStore keeps browsing sessions in memory, each request extends the session's ttl
type sessionStore struct {
	cache   *cache.Cache
	ttl     time.Duration
	filters domain.Filters // for new sessions
}

func newSessionStore(ttl time.Duration, filters domain.Filters) *sessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	c := cache.New(ttl, ttl/4)
	c.OnEvicted(func(string, any) {
		metrics.ActiveSessions.Set(float64(c.ItemCount()))
	})
	return &sessionStore{cache: c, ttl: ttl, filters: filters}
}

// session returns the session for the request cookie, making a new one if the cookie is missing,
// malformed or points to an expired session
func (s *sessionStore) session(w http.ResponseWriter, r *http.Request) *engine.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if v, ok := s.cache.Get(c.Value); ok {
				sess := v.(*engine.Session)
				s.cache.Set(c.Value, sess, cache.DefaultExpiration) // sliding ttl
				return sess
			}
		}
	}

	id := uuid.NewString()
	sess := engine.NewSession(s.filters)
	s.cache.Set(id, sess, cache.DefaultExpiration)
	metrics.ActiveSessions.Set(float64(s.cache.ItemCount()))

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *sessionStore) count() int {
	return s.cache.ItemCount()
}
