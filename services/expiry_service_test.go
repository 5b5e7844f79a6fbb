package services

import (
	"context"
	"testing"
	"time"

	"ballmate_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepBeforeExpiresOnlyPastGames(t *testing.T) {
	store := newMemStore()
	svc := NewExpiryService(store.postRepo())

	yesterday := feedPost("yesterday", time.Now())
	yesterday.GameDate = "2026-08-27"
	today := feedPost("today", time.Now())
	today.GameDate = "2026-08-28"
	tomorrow := feedPost("tomorrow", time.Now())
	tomorrow.GameDate = "2026-08-29"
	store.putPost(yesterday)
	store.putPost(today)
	store.putPost(tomorrow)

	reference := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, svc.SweepBefore(context.Background(), reference))

	// Strictly before: a game on the reference date itself stays live.
	assert.True(t, store.getPost("yesterday").Expired)
	assert.False(t, store.getPost("today").Expired)
	assert.False(t, store.getPost("tomorrow").Expired)
}

func TestSweepBeforeWithTomorrowReferenceRetiresTodaysGames(t *testing.T) {
	store := newMemStore()
	svc := NewExpiryService(store.postRepo())

	today := feedPost("today", time.Now())
	today.GameDate = "2026-08-28"
	store.putPost(today)

	// The nightly sweep runs with tomorrow's date, so a post for today's
	// game expires the same evening.
	reference := time.Date(2026, 8, 28, 23, 50, 0, 0, time.UTC).AddDate(0, 0, 1)
	assert.Equal(t, 1, svc.SweepBefore(context.Background(), reference))
	assert.True(t, store.getPost("today").Expired)
}

func TestSweepBeforeIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewExpiryService(store.postRepo())

	past := feedPost("past", time.Now())
	past.GameDate = "2026-08-01"
	store.putPost(past)

	reference := time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)
	require.Equal(t, 1, svc.SweepBefore(context.Background(), reference))
	assert.Equal(t, 0, svc.SweepBefore(context.Background(), reference))
	assert.True(t, store.getPost("past").Expired)
}

func TestExpiredPostsLeaveTheFeeds(t *testing.T) {
	store := newMemStore()
	expiry := NewExpiryService(store.postRepo())
	mate := newMateService(store)
	ctx := context.Background()

	past := feedPost("past", time.Now())
	past.GameDate = "2026-08-01"
	store.putPost(past)

	expiry.SweepBefore(ctx, time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC))

	recency, err := mate.GetPostsByDate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, recency)

	relevance, err := mate.GetPostsByRelevance(ctx, "", SearchCriteria{Team: models.TeamAny})
	require.NoError(t, err)
	assert.Empty(t, relevance)
}
