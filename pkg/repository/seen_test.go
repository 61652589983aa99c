package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/domain"
)

func TestSeenRepository_MarkSeen(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("unseen post", func(t *testing.T) {
		seen, err := repos.Seen.IsSeen(ctx, 1)
		require.NoError(t, err)
		assert.False(t, seen)

		_, err = repos.Seen.GetSeen(ctx, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mark seen is idempotent", func(t *testing.T) {
		require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "blue_hair smile", domain.RatingGeneral))
		require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "red_hair frown", domain.RatingExplicit))

		rec, err := repos.Seen.GetSeen(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.PostID)
		assert.Equal(t, domain.StatusNone, rec.Status)
		assert.Equal(t, "blue_hair smile", rec.Tags)
		assert.Equal(t, domain.RatingGeneral, rec.Rating)
		assert.False(t, rec.SeenAt.IsZero())

		seen, err := repos.Seen.IsSeen(ctx, 1)
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("mark seen keeps existing status", func(t *testing.T) {
		require.NoError(t, repos.Seen.SetStatus(ctx, 2, domain.StatusLiked, "cat", domain.RatingSensitive))
		require.NoError(t, repos.Seen.MarkSeen(ctx, 2, "dog", domain.RatingGeneral))

		rec, err := repos.Seen.GetSeen(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusLiked, rec.Status)
		assert.Equal(t, "cat", rec.Tags)
		assert.Equal(t, domain.RatingSensitive, rec.Rating)
	})
}

func TestSeenRepository_SetStatus(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("creates record when absent", func(t *testing.T) {
		require.NoError(t, repos.Seen.SetStatus(ctx, 10, domain.StatusDisliked, "gore", domain.RatingExplicit))
		rec, err := repos.Seen.GetSeen(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDisliked, rec.Status)
		assert.Equal(t, "gore", rec.Tags)
	})

	t.Run("overwrites status tags and rating", func(t *testing.T) {
		require.NoError(t, repos.Seen.MarkSeen(ctx, 11, "old_tags", domain.RatingGeneral))
		require.NoError(t, repos.Seen.SetStatus(ctx, 11, domain.StatusSuperLiked, "new_tags more", domain.RatingQuestionable))

		rec, err := repos.Seen.GetSeen(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSuperLiked, rec.Status)
		assert.Equal(t, "new_tags more", rec.Tags)
		assert.Equal(t, domain.RatingQuestionable, rec.Rating)
	})

	t.Run("status none clears reaction", func(t *testing.T) {
		require.NoError(t, repos.Seen.SetStatus(ctx, 12, domain.StatusLiked, "a", domain.RatingGeneral))
		require.NoError(t, repos.Seen.SetStatus(ctx, 12, domain.StatusNone, "a", domain.RatingGeneral))

		rec, err := repos.Seen.GetSeen(ctx, 12)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusNone, rec.Status)
	})
}

func TestSeenRepository_Interacted(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 2, domain.StatusLiked, "a b", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 3, domain.StatusDisliked, "c", domain.RatingExplicit))
	require.NoError(t, repos.Seen.SetStatus(ctx, 4, domain.StatusSuperLiked, "a", domain.RatingSensitive))

	recs, err := repos.Seen.Interacted(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	ids := []int64{recs[0].PostID, recs[1].PostID, recs[2].PostID}
	assert.ElementsMatch(t, []int64{2, 3, 4}, ids)
	for _, r := range recs {
		assert.True(t, r.Status.IsReaction())
	}
}

func TestSeenRepository_ByStatus(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Seen.SetStatus(ctx, 1, domain.StatusLiked, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 2, domain.StatusSuperLiked, "b", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 3, domain.StatusDisliked, "c", domain.RatingGeneral))
	require.NoError(t, repos.Seen.MarkSeen(ctx, 4, "d", domain.RatingGeneral))

	t.Run("liked and super liked", func(t *testing.T) {
		recs, err := repos.Seen.ByStatus(ctx, 10, domain.StatusLiked, domain.StatusSuperLiked)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		ids := []int64{recs[0].PostID, recs[1].PostID}
		assert.ElementsMatch(t, []int64{1, 2}, ids)
	})

	t.Run("limit", func(t *testing.T) {
		recs, err := repos.Seen.ByStatus(ctx, 1, domain.StatusLiked, domain.StatusSuperLiked)
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("no statuses", func(t *testing.T) {
		recs, err := repos.Seen.ByStatus(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestSeenRepository_Stats(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	stats, err := repos.Seen.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerStats{}, stats)

	require.NoError(t, repos.Seen.MarkSeen(ctx, 1, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 2, domain.StatusLiked, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 3, domain.StatusLiked, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 4, domain.StatusSuperLiked, "a", domain.RatingGeneral))
	require.NoError(t, repos.Seen.SetStatus(ctx, 5, domain.StatusDisliked, "a", domain.RatingGeneral))

	stats, err = repos.Seen.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerStats{Seen: 5, Liked: 2, SuperLiked: 1, Disliked: 1}, stats)
}
