package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/booruscope/pkg/domain"
)

// SeenRepository handles the ledger of posts shown to the user
type SeenRepository struct {
	db *sqlx.DB
}

// seenSQL represents a seen_posts row for SQL operations
type seenSQL struct {
	ID        int64          `db:"id"`
	Status    sql.NullString `db:"status"`
	Tags      string         `db:"tags"`
	Rating    string         `db:"rating"`
	SeenAt    *time.Time     `db:"seen_at"`
	UpdatedAt *time.Time     `db:"updated_at"`
}

const seenColumns = `id, status, COALESCE(tags, '') AS tags, COALESCE(rating, '') AS rating, seen_at, updated_at`

// NewSeenRepository creates a new seen posts repository
func NewSeenRepository(db *sqlx.DB) *SeenRepository {
	return &SeenRepository{db: db}
}

// IsSeen checks if the post was shown before, regardless of its status
func (r *SeenRepository) IsSeen(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM seen_posts WHERE id = ?)", postID)
	if err != nil {
		return false, fmt.Errorf("check seen post %d: %w", postID, err)
	}
	return exists, nil
}

// MarkSeen records the post as seen with no status. Existing records are left untouched.
func (r *SeenRepository) MarkSeen(ctx context.Context, postID int64, tags string, rating domain.Rating) error {
	return withRetry(ctx, fmt.Sprintf("mark seen %d", postID), func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO seen_posts (id, status, tags, rating, seen_at, updated_at)
			VALUES (?, NULL, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO NOTHING`, postID, tags, string(rating))
		return err
	})
}

// SetStatus ensures the post is recorded and overwrites its status, tags and rating
func (r *SeenRepository) SetStatus(ctx context.Context, postID int64, status domain.Status, tags string, rating domain.Rating) error {
	return withRetry(ctx, fmt.Sprintf("set status %d", postID), func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err = tx.ExecContext(ctx, `
			INSERT INTO seen_posts (id, status, tags, rating, seen_at, updated_at)
			VALUES (?, NULL, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO NOTHING`, postID, tags, string(rating)); err != nil {
			return err
		}

		st := sql.NullString{String: string(status), Valid: status != domain.StatusNone}
		if _, err = tx.ExecContext(ctx, `
			UPDATE seen_posts SET status = ?, tags = ?, rating = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`, st, tags, string(rating), postID); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// GetSeen returns the ledger record of a post, ErrNotFound if it was never shown
func (r *SeenRepository) GetSeen(ctx context.Context, postID int64) (*domain.SeenRecord, error) {
	var row seenSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+seenColumns+" FROM seen_posts WHERE id = ?", postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("seen post %d: %w", postID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get seen post %d: %w", postID, err)
	}
	rec := row.toDomain()
	return &rec, nil
}

// Interacted returns all records with a reaction, oldest first
func (r *SeenRepository) Interacted(ctx context.Context) ([]domain.SeenRecord, error) {
	var rows []seenSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT "+seenColumns+` FROM seen_posts
		WHERE status IS NOT NULL AND status != ''
		ORDER BY COALESCE(updated_at, seen_at), id`)
	if err != nil {
		return nil, fmt.Errorf("get interacted posts: %w", err)
	}
	return toDomainRecords(rows), nil
}

// ByStatus returns the most recently updated records with one of the given statuses
func (r *SeenRepository) ByStatus(ctx context.Context, limit int, statuses ...domain.Status) ([]domain.SeenRecord, error) {
	if len(statuses) == 0 {
		return []domain.SeenRecord{}, nil
	}
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}

	query, args, err := sqlx.In("SELECT "+seenColumns+` FROM seen_posts
		WHERE status IN (?)
		ORDER BY COALESCE(updated_at, seen_at) DESC, id DESC
		LIMIT ?`, vals, limit)
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}

	var rows []seenSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get posts by status: %w", err)
	}
	return toDomainRecords(rows), nil
}

// Stats returns counts of ledger records by status
func (r *SeenRepository) Stats(ctx context.Context) (domain.LedgerStats, error) {
	var res struct {
		Seen       int64 `db:"seen"`
		Liked      int64 `db:"liked"`
		SuperLiked int64 `db:"super_liked"`
		Disliked   int64 `db:"disliked"`
	}
	err := r.db.GetContext(ctx, &res, `
		SELECT
			COUNT(*) AS seen,
			COALESCE(SUM(CASE WHEN status = 'liked' THEN 1 ELSE 0 END), 0) AS liked,
			COALESCE(SUM(CASE WHEN status = 'super liked' THEN 1 ELSE 0 END), 0) AS super_liked,
			COALESCE(SUM(CASE WHEN status = 'disliked' THEN 1 ELSE 0 END), 0) AS disliked
		FROM seen_posts`)
	if err != nil {
		return domain.LedgerStats{}, fmt.Errorf("get ledger stats: %w", err)
	}
	return domain.LedgerStats{Seen: res.Seen, Liked: res.Liked, SuperLiked: res.SuperLiked, Disliked: res.Disliked}, nil
}

func (s seenSQL) toDomain() domain.SeenRecord {
	rating := domain.ParseRating(s.Rating)
	if rating == "" {
		rating = domain.Rating(s.Rating)
	}
	rec := domain.SeenRecord{
		PostID: s.ID,
		Tags:   s.Tags,
		Rating: rating,
	}
	if s.Status.Valid {
		rec.Status = domain.Status(s.Status.String)
	}
	if s.SeenAt != nil {
		rec.SeenAt = *s.SeenAt
	}
	if s.UpdatedAt != nil {
		rec.UpdatedAt = *s.UpdatedAt
	}
	return rec
}

func toDomainRecords(rows []seenSQL) []domain.SeenRecord {
	res := make([]domain.SeenRecord, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res
}
