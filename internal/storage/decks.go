package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/recall/internal/domain"
)

type deckRow struct {
	ID          string       `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Created     time.Time    `db:"created"`
	LastStudied sql.NullTime `db:"last_studied"`
}

func (r deckRow) toDomain() domain.Deck {
	return domain.Deck{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Created:     r.Created.UTC(),
		LastStudied: timePtr(r.LastStudied),
	}
}

// InsertDeck stores a new deck.
func (db *DB) InsertDeck(ctx context.Context, deck domain.Deck) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO decks (id, title, description, created, last_studied)
		VALUES (?, ?, ?, ?, ?)
	`,
		deck.ID,
		deck.Title,
		deck.Description,
		deck.Created.UTC(),
		nullTime(deck.LastStudied),
	)
	if err != nil {
		return fmt.Errorf("failed to insert deck %s: %w", deck.ID, err)
	}
	return nil
}

// FindDeck retrieves a deck by its ID.
func (db *DB) FindDeck(ctx context.Context, id string) (domain.Deck, error) {
	var row deckRow
	err := db.conn.GetContext(ctx, &row, `
		SELECT id, title, description, created, last_studied
		FROM decks WHERE id = ?
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deck{}, fmt.Errorf("deck %s: %w", id, ErrNotFound)
		}
		return domain.Deck{}, fmt.Errorf("failed to find deck %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// ListDecks retrieves all decks in the order they were added.
func (db *DB) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	var rows []deckRow
	if err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, title, description, created, last_studied
		FROM decks ORDER BY rowid
	`); err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}

	decks := make([]domain.Deck, 0, len(rows))
	for _, r := range rows {
		decks = append(decks, r.toDomain())
	}
	return decks, nil
}

// DeleteDeck removes a deck together with its cards and their review logs.
func (db *DB) DeleteDeck(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return expectAffected(res, fmt.Sprintf("deck %s", id))
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
