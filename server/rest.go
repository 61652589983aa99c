package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/goccy/go-json"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/engine"
	"github.com/umputun/booruscope/pkg/profile"
)

const (
	defaultReportSize = 20
	maxReportSize     = 500
	retryAfter        = 30 * time.Second
)

// postResponse is a post served to the UI with its predicted likelihood
type postResponse struct {
	Post       domain.Post        `json:"post"`
	Likelihood float64            `json:"likelihood"`
	Breakdown  *profile.Breakdown `json:"breakdown,omitempty"`
	History    int                `json:"history"`
}

type interactionRequest struct {
	PostID int64              `json:"post_id"`
	Kind   domain.Interaction `json:"kind"`
}

type filtersRequest struct {
	Rating    string    `json:"rating"`
	Media     string    `json:"media"`
	Blacklist *[]string `json:"blacklist"`
}

type filtersResponse struct {
	Rating      string   `json:"rating"`
	RatingLabel string   `json:"rating_label"`
	Media       string   `json:"media"`
	MediaLabel  string   `json:"media_label"`
	Blacklist   []string `json:"blacklist"`
}

// statusHandler returns server status with ledger counters
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ledger.Stats(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get ledger stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	status := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"ledger":   stats,
		"sessions": s.sessions.count(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// nextHandler serves the next post, 204 when the board has nothing fresh and 429 when rate limited
func (s *Server) nextHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	post, err := s.engine.Next(r.Context(), sess)
	switch {
	case errors.Is(err, engine.ErrTryLater):
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		renderError(w, r, err, http.StatusTooManyRequests)
		return
	case err != nil:
		lgr.Printf("[ERROR] failed to get next post: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	case post == nil:
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.renderPost(w, r, sess, *post)
}

// previousHandler steps back in session history, 204 at the beginning
func (s *Server) previousHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	post := s.engine.Previous(sess)
	if post == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.renderPost(w, r, sess, *post)
}

func (s *Server) renderPost(w http.ResponseWriter, r *http.Request, sess *engine.Session, post domain.Post) {
	resp := postResponse{Post: post, Likelihood: 0.5, History: sess.HistoryLen()}
	bd, err := s.engine.Predict(r.Context(), post)
	if err != nil {
		lgr.Printf("[WARN] can't predict likelihood for %d: %v", post.ID, err)
	} else {
		resp.Likelihood = bd.Likelihood
		resp.Breakdown = &bd
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// interactionHandler records like, dislike or super like for a shown post
func (s *Server) interactionHandler(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if req.PostID <= 0 {
		renderError(w, r, errors.New("post_id is required"), http.StatusBadRequest)
		return
	}
	if _, err := req.Kind.Status(); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	err := s.engine.RecordInteraction(r.Context(), req.PostID, req.Kind)
	switch {
	case errors.Is(err, engine.ErrUnknownPost):
		renderError(w, r, err, http.StatusNotFound)
		return
	case err != nil:
		lgr.Printf("[ERROR] failed to record %s for %d: %v", req.Kind, req.PostID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"post_id": req.PostID, "kind": req.Kind})
}

// resetHandler clears session history
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	s.engine.Reset(s.sessions.session(w, r))
	w.WriteHeader(http.StatusNoContent)
}

// filtersHandler changes session filters, empty fields keep current values
func (s *Server) filtersHandler(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}

	sess := s.sessions.session(w, r)
	filters := sess.Filters()
	if req.Rating != "" {
		rf, err := domain.ParseRatingFilter(req.Rating)
		if err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		filters.Rating = rf
	}
	if req.Media != "" {
		mf, err := domain.ParseMediaFilter(req.Media)
		if err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		filters.Media = mf
	}
	if req.Blacklist != nil {
		filters.Blacklist = *req.Blacklist
	}

	if err := s.engine.UpdateFilters(sess, filters); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	renderJSON(w, r, http.StatusOK, toFiltersResponse(sess.Filters()))
}

// getFiltersHandler returns session filters
func (s *Server) getFiltersHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, toFiltersResponse(s.sessions.session(w, r).Filters()))
}

func toFiltersResponse(f domain.Filters) filtersResponse {
	bl := f.Blacklist
	if bl == nil {
		bl = []string{}
	}
	return filtersResponse{
		Rating:      f.Rating.Key(),
		RatingLabel: f.Rating.Label(),
		Media:       f.Media.Key(),
		MediaLabel:  f.Media.Label(),
		Blacklist:   bl,
	}
}

// profileHandler returns most and least liked tags, ?n= sets the number of tags
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	n := defaultReportSize
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			renderError(w, r, fmt.Errorf("invalid n %q", v), http.StatusBadRequest)
			return
		}
		n = min(parsed, maxReportSize)
	}

	report, err := s.engine.ProfileReport(r.Context(), n)
	if err != nil {
		lgr.Printf("[ERROR] failed to get profile report: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, report)
}

// rebuildProfileHandler recomputes the profile from the ledger
func (s *Server) rebuildProfileHandler(w http.ResponseWriter, r *http.Request) {
	prof, err := s.engine.RebuildProfile(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to rebuild profile: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	lgr.Printf("[INFO] profile rebuilt, %d liked, %d disliked, %d tags", prof.TotalLiked, prof.TotalDisliked, len(prof.TagScores))
	renderJSON(w, r, http.StatusOK, map[string]any{
		"total_liked":    prof.TotalLiked,
		"total_disliked": prof.TotalDisliked,
		"tags":           len(prof.TagScores),
		"ratings":        len(prof.RatingScores),
	})
}
