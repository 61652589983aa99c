package engine

import (
	"context"

	"github.com/umputun/booruscope/pkg/domain"
	"github.com/umputun/booruscope/pkg/profile"
)

//go:generate moq -out mocks/searcher.go -pkg mocks -skip-ensure -fmt goimports . Searcher
//go:generate moq -out mocks/ledger.go -pkg mocks -skip-ensure -fmt goimports . Ledger
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings
//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore

// Searcher queries the remote board
type Searcher interface {
	Search(ctx context.Context, tags string, page, limit int) ([]domain.Post, error)
}

// Ledger keeps posts shown to the user and their reactions
type Ledger interface {
	IsSeen(ctx context.Context, postID int64) (bool, error)
	MarkSeen(ctx context.Context, postID int64, tags string, rating domain.Rating) error
	SetStatus(ctx context.Context, postID int64, status domain.Status, tags string, rating domain.Rating) error
	GetSeen(ctx context.Context, postID int64) (*domain.SeenRecord, error)
	Interacted(ctx context.Context) ([]domain.SeenRecord, error)
}

// Settings is a durable key/value store
type Settings interface {
	GetSetting(ctx context.Context, key, def string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	SetSettings(ctx context.Context, values map[string]string) error
}

// ProfileStore persists profile snapshots
type ProfileStore interface {
	Load() (*profile.Profile, error)
	Save(p *profile.Profile) error
}
