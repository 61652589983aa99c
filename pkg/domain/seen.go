package domain

import (
	"fmt"
	"time"
)

// Status represents user reaction to a seen post
type Status string

// statuses stored in the ledger, StatusNone is stored as NULL
const (
	StatusNone       Status = ""
	StatusLiked      Status = "liked"
	StatusDisliked   Status = "disliked"
	StatusSuperLiked Status = "super liked"
)

// IsReaction reports whether the status is an explicit user reaction
func (s Status) IsReaction() bool {
	return s == StatusLiked || s == StatusDisliked || s == StatusSuperLiked
}

// SeenRecord represents a ledger entry for a post shown to the user.
// Tags and Rating are snapshots taken when the post was shown or reacted to.
type SeenRecord struct {
	PostID    int64
	Status    Status
	Tags      string
	Rating    Rating
	SeenAt    time.Time
	UpdatedAt time.Time
}

// LedgerStats holds counts of ledger records by status
type LedgerStats struct {
	Seen       int64 `json:"seen"`
	Liked      int64 `json:"liked"`
	SuperLiked int64 `json:"super_liked"`
	Disliked   int64 `json:"disliked"`
}

// Interaction is the kind of reaction a user sends for a post
type Interaction string

// interactions accepted from the UI
const (
	InteractionLike      Interaction = "like"
	InteractionDislike   Interaction = "dislike"
	InteractionSuperLike Interaction = "super_like"
)

// Status maps interaction to the ledger status it records
func (i Interaction) Status() (Status, error) {
	switch i {
	case InteractionLike:
		return StatusLiked, nil
	case InteractionDislike:
		return StatusDisliked, nil
	case InteractionSuperLike:
		return StatusSuperLiked, nil
	default:
		return StatusNone, fmt.Errorf("unknown interaction %q", string(i))
	}
}
