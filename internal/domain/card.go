package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/recall/internal/sm2"
)

// Card is a single front/back flashcard and its review schedule.
type Card struct {
	ID          string    `json:"id" validate:"required"`
	DeckID      string    `json:"deck_id" validate:"required"`
	Front       string    `json:"front" validate:"required,notblank,max=4096"`
	Back        string    `json:"back" validate:"required,notblank,max=4096"`
	Fingerprint string    `json:"-"`
	Created     time.Time `json:"created"`
	// Revision counts stored schedule updates and guards against lost reviews.
	Revision int       `json:"revision" validate:"gte=0"`
	Schedule sm2.State `json:"schedule"`
}

// NewCard returns a card that has never been reviewed.
func NewCard(deckID, front, back string, now time.Time) Card {
	return Card{
		ID:       uuid.NewString(),
		DeckID:   deckID,
		Front:    front,
		Back:     back,
		Created:  now,
		Schedule: sm2.NewState(),
	}
}

// Deck is a titled collection of cards.
type Deck struct {
	ID          string     `json:"id" validate:"required"`
	Title       string     `json:"title" validate:"required,notblank,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Created     time.Time  `json:"created"`
	LastStudied *time.Time `json:"last_studied"`
}

// NewDeck returns an empty deck.
func NewDeck(title, description string, now time.Time) Deck {
	return Deck{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Created:     now,
	}
}

// ReviewLog records a single review event for a card.
// Quality is the clamped SM-2 grade, 0 (blackout) to 5 (perfect).
type ReviewLog struct {
	ID         int64       `json:"id"`
	CardID     string      `json:"card_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Quality    sm2.Quality `json:"quality"`
	Interval   int         `json:"interval"`
	EaseFactor float64     `json:"ease_factor"`
}
