package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/knol"
	"github.com/conorfennell/recall/internal/sm2"
)

const cardColumns = `id, deck_id, front, back, fingerprint, created, revision,
	interval_days, ease_factor, repetitions, last_review, next_review`

type cardRow struct {
	ID          string       `db:"id"`
	DeckID      string       `db:"deck_id"`
	Front       string       `db:"front"`
	Back        string       `db:"back"`
	Fingerprint string       `db:"fingerprint"`
	Created     time.Time    `db:"created"`
	Revision    int          `db:"revision"`
	Interval    int          `db:"interval_days"`
	EaseFactor  float64      `db:"ease_factor"`
	Repetitions int          `db:"repetitions"`
	LastReview  sql.NullTime `db:"last_review"`
	NextReview  sql.NullTime `db:"next_review"`
}

func (r cardRow) toDomain() domain.Card {
	return domain.Card{
		ID:          r.ID,
		DeckID:      r.DeckID,
		Front:       r.Front,
		Back:        r.Back,
		Fingerprint: r.Fingerprint,
		Created:     r.Created.UTC(),
		Revision:    r.Revision,
		Schedule: sm2.State{
			Interval:    r.Interval,
			EaseFactor:  r.EaseFactor,
			Repetitions: r.Repetitions,
			LastReview:  timePtr(r.LastReview),
			NextReview:  timePtr(r.NextReview),
		},
	}
}

// InsertCard stores a new card and returns it with its fingerprint set.
// A card whose content already exists in the deck yields ErrDuplicateCard.
func (db *DB) InsertCard(ctx context.Context, card domain.Card) (domain.Card, error) {
	card.Fingerprint = knol.Fingerprint(card)
	s := card.Schedule

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		card.ID,
		card.DeckID,
		card.Front,
		card.Back,
		card.Fingerprint,
		card.Created.UTC(),
		card.Revision,
		s.Interval,
		s.EaseFactor,
		s.Repetitions,
		nullTime(s.LastReview),
		nullTime(s.NextReview),
	)
	switch {
	case err == nil:
		return card, nil
	case isUniqueViolation(err):
		return domain.Card{}, fmt.Errorf("card %q in deck %s: %w", card.Front, card.DeckID, ErrDuplicateCard)
	case isForeignKeyViolation(err):
		return domain.Card{}, fmt.Errorf("deck %s: %w", card.DeckID, ErrNotFound)
	default:
		return domain.Card{}, fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
}

// FindCard retrieves a card by its ID.
func (db *DB) FindCard(ctx context.Context, id string) (domain.Card, error) {
	var row cardRow
	err := db.conn.GetContext(ctx, &row, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return domain.Card{}, fmt.Errorf("failed to find card %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListCards retrieves a deck's cards in the order they were added.
func (db *DB) ListCards(ctx context.Context, deckID string) ([]domain.Card, error) {
	return db.selectCards(ctx, `SELECT `+cardColumns+` FROM cards WHERE deck_id = ? ORDER BY rowid`, deckID)
}

// ListAllCards retrieves every card, grouped by deck in the order decks and
// cards were added.
func (db *DB) ListAllCards(ctx context.Context) ([]domain.Card, error) {
	return db.selectCards(ctx, `
		SELECT `+cardColumns+` FROM cards
		ORDER BY (SELECT d.rowid FROM decks d WHERE d.id = cards.deck_id), cards.rowid
	`)
}

func (db *DB) selectCards(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	var rows []cardRow
	if err := db.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]domain.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.toDomain())
	}
	return cards, nil
}

// DeleteCard removes a card and its review logs.
func (db *DB) DeleteCard(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("card %s", id))
}
