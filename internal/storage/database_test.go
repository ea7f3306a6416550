package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedDeck(t *testing.T, db *DB, title string) domain.Deck {
	t.Helper()
	deck := domain.NewDeck(title, "", t0)
	require.NoError(t, db.InsertDeck(context.Background(), deck))
	return deck
}

func seedCard(t *testing.T, db *DB, deckID, front string) domain.Card {
	t.Helper()
	card, err := db.InsertCard(context.Background(), domain.NewCard(deckID, front, "back of "+front, t0))
	require.NoError(t, err)
	return card
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "recall.db")

	db, err := Open(path)
	require.NoError(t, err)
	seedDeck(t, db, "persisted")
	require.NoError(t, db.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	decks, err := reopened.ListDecks(context.Background())
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "persisted", decks[0].Title)
}

func TestRunInTx(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := domain.NewDeck("rolled back", "", t0)
	boom := errors.New("boom")

	err := db.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO decks (id, title, created) VALUES (?, ?, ?)`, deck.ID, deck.Title, deck.Created); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = db.FindDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecks(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := seedDeck(t, db, "Capitals")
	second := seedDeck(t, db, "Verbs")

	got, err := db.FindDeck(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", got.Title)
	assert.True(t, got.Created.Equal(t0))
	assert.Nil(t, got.LastStudied)

	decks, err := db.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, first.ID, decks[0].ID)
	assert.Equal(t, second.ID, decks[1].ID)

	_, err = db.FindDeck(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDeckCascades(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	card := seedCard(t, db, deck.ID, "France")

	require.NoError(t, db.DeleteDeck(ctx, deck.ID))

	_, err := db.FindCard(ctx, card.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteDeck(ctx, deck.ID), ErrNotFound)
}

func TestInsertCard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")

	card := seedCard(t, db, deck.ID, "France")
	assert.Len(t, card.Fingerprint, 64)

	got, err := db.FindCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Front, got.Front)
	assert.Equal(t, card.Fingerprint, got.Fingerprint)
	assert.Equal(t, sm2.NewState(), got.Schedule)
	assert.Equal(t, 0, got.Revision)

	t.Run("duplicate content in same deck", func(t *testing.T) {
		_, err := db.InsertCard(ctx, domain.NewCard(deck.ID, "  FRANCE ", "Back of France", t0))
		assert.ErrorIs(t, err, ErrDuplicateCard)
	})

	t.Run("same content in another deck", func(t *testing.T) {
		other := seedDeck(t, db, "Other")
		_, err := db.InsertCard(ctx, domain.NewCard(other.ID, "France", "back of France", t0))
		assert.NoError(t, err)
	})

	t.Run("unknown deck", func(t *testing.T) {
		_, err := db.InsertCard(ctx, domain.NewCard("missing", "Spain", "Madrid", t0))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListCardsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	other := seedDeck(t, db, "Other")

	want := []string{"Zambia", "Austria", "Mali"}
	for _, front := range want {
		seedCard(t, db, deck.ID, front)
	}
	seedCard(t, db, other.ID, "Peru")

	cards, err := db.ListCards(ctx, deck.ID)
	require.NoError(t, err)
	got := make([]string, 0, len(cards))
	for _, c := range cards {
		got = append(got, c.Front)
	}
	assert.Equal(t, want, got)

	all, err := db.ListAllCards(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListAllCardsGroupsByDeckOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	first := seedDeck(t, db, "First")
	second := seedDeck(t, db, "Second")

	seedCard(t, db, second.ID, "Peru")
	seedCard(t, db, first.ID, "Zambia")
	seedCard(t, db, second.ID, "Chile")
	seedCard(t, db, first.ID, "Austria")

	all, err := db.ListAllCards(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, c := range all {
		got = append(got, c.Front)
	}
	assert.Equal(t, []string{"Zambia", "Austria", "Peru", "Chile"}, got)
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	deck := seedDeck(t, db, "Capitals")
	card := seedCard(t, db, deck.ID, "France")

	require.NoError(t, db.DeleteCard(ctx, card.ID))
	assert.ErrorIs(t, db.DeleteCard(ctx, card.ID), ErrNotFound)
}
