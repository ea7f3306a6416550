package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
)

func reviewLog(cardID string, q sm2.Quality, next sm2.State) domain.ReviewLog {
	return domain.ReviewLog{
		CardID:     cardID,
		Timestamp:  *next.LastReview,
		Quality:    q,
		Interval:   next.Interval,
		EaseFactor: next.EaseFactor,
	}
}

func TestSaveReview(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	card := seedCard(t, db, deck.ID, "France")

	next := sm2.Schedule(card.Schedule, sm2.Perfect, t0)
	require.NoError(t, db.SaveReview(ctx, card.ID, card.Revision, next, reviewLog(card.ID, sm2.Perfect, next)))

	got, err := db.FindCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Revision)
	assert.Equal(t, next.Interval, got.Schedule.Interval)
	assert.Equal(t, next.EaseFactor, got.Schedule.EaseFactor)
	assert.Equal(t, next.Repetitions, got.Schedule.Repetitions)
	require.NotNil(t, got.Schedule.LastReview)
	require.NotNil(t, got.Schedule.NextReview)
	assert.True(t, got.Schedule.LastReview.Equal(t0))
	assert.True(t, got.Schedule.NextReview.Equal(t0.Add(sm2.Day)))

	studied, err := db.FindDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.NotNil(t, studied.LastStudied)
	assert.True(t, studied.LastStudied.Equal(t0))

	logs, err := db.ReviewLogs(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, sm2.Perfect, logs[0].Quality)
	assert.Equal(t, 1, logs[0].Interval)
}

func TestSaveReviewConflict(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	card := seedCard(t, db, deck.ID, "France")

	first := sm2.Schedule(card.Schedule, sm2.Perfect, t0)
	require.NoError(t, db.SaveReview(ctx, card.ID, 0, first, reviewLog(card.ID, sm2.Perfect, first)))

	stale := sm2.Schedule(card.Schedule, sm2.Blackout, t0)
	err := db.SaveReview(ctx, card.ID, 0, stale, reviewLog(card.ID, sm2.Blackout, stale))
	require.ErrorIs(t, err, ErrConflict)

	got, err := db.FindCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, first.EaseFactor, got.Schedule.EaseFactor)

	logs, err := db.ReviewLogs(ctx, card.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1, "a rejected review must not leave a log behind")
}

func TestSaveReviewUnknownCard(t *testing.T) {
	db := openTestDB(t)
	next := sm2.Schedule(sm2.NewState(), sm2.Perfect, t0)

	err := db.SaveReview(context.Background(), "missing", 0, next, reviewLog("missing", sm2.Perfect, next))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewLogsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	card := seedCard(t, db, deck.ID, "France")

	state := card.Schedule
	now := t0
	for rev, q := range []sm2.Quality{sm2.Perfect, sm2.CorrectDifficult, sm2.Incorrect} {
		state = sm2.Schedule(state, q, now)
		require.NoError(t, db.SaveReview(ctx, card.ID, rev, state, reviewLog(card.ID, q, state)))
		now = *state.NextReview
	}

	logs, err := db.ReviewLogs(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, sm2.Incorrect, logs[0].Quality)
	assert.Equal(t, sm2.Perfect, logs[2].Quality)
}
