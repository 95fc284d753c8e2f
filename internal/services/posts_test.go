package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omoide-app/backend/internal/apperr"
)

func TestCreateSetsLinkAndTimestamps(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, ident := f.seedUser(t, "alice", false)
	ctx := context.Background()

	post, err := f.postSvc.Create(ctx, ident, "A day in Kyoto", "We walked the Philosopher's Path.", "travel")
	require.NoError(t, err)
	require.Len(t, post.Link, 10)
	require.Equal(t, post.CreatedAt, post.UpdatedAt)
	require.Zero(t, post.Likes)
	require.Zero(t, post.Reads)

	other, err := f.postSvc.Create(ctx, ident, "Another memory", "Completely different content.", "travel")
	require.NoError(t, err)
	require.NotEqual(t, post.Link, other.Link)
}

func TestCreateValidationReportsFirstField(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, ident := f.seedUser(t, "bob", false)
	ctx := context.Background()

	longContent := make([]byte, 2049)
	for i := range longContent {
		longContent[i] = 'x'
	}

	cases := []struct {
		name     string
		title    string
		content  string
		category string
		field    string
	}{
		{"short title", "abcd", "valid content", "travel", "title"},
		{"long content", "valid title", string(longContent), "travel", "content"},
		{"short category", "valid title", "valid content", "ab", "category"},
		{"title reported before category", "ab", "valid content", "ab", "title"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.postSvc.Create(ctx, ident, tc.title, tc.content, tc.category)
			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestDemoQuota(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, demo := f.seedUser(t, "demo", true)
	_, full := f.seedUser(t, "full", false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.postSvc.Create(ctx, demo, fmt.Sprintf("Demo memory %d", i), "Short demo content.", "misc")
		require.NoError(t, err)
	}
	_, err := f.postSvc.Create(ctx, demo, "One too many", "This should be rejected.", "misc")
	require.ErrorIs(t, err, apperr.ErrQuotaExceeded)

	// Full accounts are never quota-limited.
	for i := 0; i < 5; i++ {
		_, err := f.postSvc.Create(ctx, full, fmt.Sprintf("Full memory %d", i), "Unlimited content.", "misc")
		require.NoError(t, err)
	}
}

func TestUpdateOwnershipIsolation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, owner := f.seedUser(t, "owner", false)
	_, intruder := f.seedUser(t, "intruder", false)
	ctx := context.Background()

	post, err := f.postSvc.Create(ctx, owner, "Original title", "Original content here.", "travel")
	require.NoError(t, err)

	_, err = f.postSvc.Update(ctx, intruder, post.Link, "Hijacked title", "Hijacked content.", "travel")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	unchanged, err := f.posts.FindByLink(ctx, post.Link)
	require.NoError(t, err)
	require.Equal(t, "Original title", unchanged.Title)

	updated, err := f.postSvc.Update(ctx, owner, post.Link, "Revised title", "Revised content here.", "food")
	require.NoError(t, err)
	require.Equal(t, "Revised title", updated.Title)
	require.Equal(t, "food", updated.Category)
	require.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestDeleteScopedToOwner(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, owner := f.seedUser(t, "owner2", false)
	_, intruder := f.seedUser(t, "intruder2", false)
	ctx := context.Background()

	post, err := f.postSvc.Create(ctx, owner, "Keep me safe", "Content worth keeping.", "travel")
	require.NoError(t, err)

	_, err = f.postSvc.Delete(ctx, intruder, post.Link)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	deleted, err := f.postSvc.Delete(ctx, owner, post.Link)
	require.NoError(t, err)
	require.Equal(t, post.Link, deleted.Link)

	_, err = f.posts.FindByLink(ctx, post.Link)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCountersIncrement(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, ident := f.seedUser(t, "counter", false)
	ctx := context.Background()

	post, err := f.postSvc.Create(ctx, ident, "Counted memory", "Content to be counted.", "misc")
	require.NoError(t, err)

	_, err = f.postSvc.IncrementLikes(ctx, post.Link)
	require.NoError(t, err)

	// An intervening read must not disturb the like counter.
	read, err := f.postSvc.RecordReadAndFetch(ctx, post.Link)
	require.NoError(t, err)
	require.EqualValues(t, 1, read.Reads)

	liked, err := f.postSvc.IncrementLikes(ctx, post.Link)
	require.NoError(t, err)
	require.EqualValues(t, 2, liked.Likes)
	require.EqualValues(t, 1, liked.Reads)

	_, err = f.postSvc.IncrementLikes(ctx, "missing-lnk")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.postSvc.RecordReadAndFetch(ctx, "missing-lnk")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
