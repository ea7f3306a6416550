package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
)

type reviewLogRow struct {
	ID         int64     `db:"id"`
	CardID     string    `db:"card_id"`
	ReviewedAt time.Time `db:"reviewed_at"`
	Quality    int       `db:"quality"`
	Interval   int       `db:"interval_days"`
	EaseFactor float64   `db:"ease_factor"`
}

// SaveReview replaces a card's schedule with next, appends the review log and
// marks the card's deck as studied, all in one transaction.
//
// The update only applies while the stored revision still equals
// expectedRevision; otherwise ErrConflict is returned and nothing changes.
func (db *DB) SaveReview(ctx context.Context, cardID string, expectedRevision int, next sm2.State, log domain.ReviewLog) error {
	return db.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE cards
			SET interval_days = ?, ease_factor = ?, repetitions = ?,
			    last_review = ?, next_review = ?, revision = revision + 1
			WHERE id = ? AND revision = ?
		`,
			next.Interval,
			next.EaseFactor,
			next.Repetitions,
			nullTime(next.LastReview),
			nullTime(next.NextReview),
			cardID,
			expectedRevision,
		)
		if err != nil {
			return fmt.Errorf("failed to update schedule for card %s: %w", cardID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows for card %s: %w", cardID, err)
		}
		if n == 0 {
			var exists int
			if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM cards WHERE id = ?`, cardID); err != nil {
				return fmt.Errorf("failed to check card %s: %w", cardID, err)
			}
			if exists == 0 {
				return fmt.Errorf("card %s: %w", cardID, ErrNotFound)
			}
			return fmt.Errorf("card %s at revision %d: %w", cardID, expectedRevision, ErrConflict)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO review_logs (card_id, reviewed_at, quality, interval_days, ease_factor)
			VALUES (?, ?, ?, ?, ?)
		`,
			cardID,
			log.Timestamp.UTC(),
			int(log.Quality),
			log.Interval,
			log.EaseFactor,
		); err != nil {
			return fmt.Errorf("failed to insert review log for card %s: %w", cardID, err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE decks SET last_studied = ?
			WHERE id = (SELECT deck_id FROM cards WHERE id = ?)
		`, log.Timestamp.UTC(), cardID); err != nil {
			return fmt.Errorf("failed to mark deck studied for card %s: %w", cardID, err)
		}
		return nil
	})
}

// ReviewLogs retrieves a card's review history, newest first.
func (db *DB) ReviewLogs(ctx context.Context, cardID string) ([]domain.ReviewLog, error) {
	var rows []reviewLogRow
	if err := db.conn.SelectContext(ctx, &rows, `
		SELECT id, card_id, reviewed_at, quality, interval_days, ease_factor
		FROM review_logs WHERE card_id = ?
		ORDER BY id DESC
	`, cardID); err != nil {
		return nil, fmt.Errorf("failed to get review logs for card %s: %w", cardID, err)
	}

	logs := make([]domain.ReviewLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, domain.ReviewLog{
			ID:         r.ID,
			CardID:     r.CardID,
			Timestamp:  r.ReviewedAt.UTC(),
			Quality:    sm2.Quality(r.Quality),
			Interval:   r.Interval,
			EaseFactor: r.EaseFactor,
		})
	}
	return logs, nil
}
