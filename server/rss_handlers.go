package server

import (
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/booruscope/pkg/domain"
)

const (
	defaultRSSLimit = 100
	maxRSSLimit     = 1000
)

// likedRSSHandler serves RSS feed of liked and super liked posts, newest reactions first.
// ?limit= sets the number of items.
func (s *Server) likedRSSHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultRSSLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = min(l, maxRSSLimit)
		}
	}

	records, err := s.ledger.ByStatus(r.Context(), limit, domain.StatusLiked, domain.StatusSuperLiked)
	if err != nil {
		lgr.Printf("[ERROR] failed to get liked posts for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.feedGen.LikedRSS(records)
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
