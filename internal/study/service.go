// Package study connects the SM-2 scheduler to card storage and a clock.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
)

// ErrCorruptState is returned when a stored card fails validation and cannot be scheduled.
var ErrCorruptState = errors.New("stored card state is invalid")

// Clock supplies the current instant.
type Clock func() time.Time

// Service answers cards and builds due queues.
type Service struct {
	store    Store
	now      Clock
	maxCards int
}

// NewService returns a Service. maxCards caps the due queue; zero means no cap.
func NewService(store Store, now Clock, maxCards int) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now, maxCards: maxCards}
}

// Now returns the service clock's current instant.
func (s *Service) Now() time.Time {
	return s.now()
}

// DueQueue returns the deck's cards that are due now, in the order they were added.
func (s *Service) DueQueue(ctx context.Context, deckID string) ([]domain.Card, error) {
	if _, err := s.store.FindDeck(ctx, deckID); err != nil {
		return nil, err
	}
	cards, err := s.store.ListCards(ctx, deckID)
	if err != nil {
		return nil, err
	}

	due := sm2.DueCards(cards, s.now(), cardSchedule)
	if s.maxCards > 0 && len(due) > s.maxCards {
		due = due[:s.maxCards]
	}
	return due, nil
}

// Answer records a review of the card with quality q and returns the updated card.
func (s *Service) Answer(ctx context.Context, cardID string, q sm2.Quality) (domain.Card, error) {
	card, err := s.store.FindCard(ctx, cardID)
	if err != nil {
		return domain.Card{}, err
	}
	if err := domain.Validate(card); err != nil {
		return domain.Card{}, fmt.Errorf("%w: card %s: %w", ErrCorruptState, cardID, err)
	}

	now := s.now()
	next := sm2.Schedule(card.Schedule, q, now)
	log := domain.ReviewLog{
		CardID:     card.ID,
		Timestamp:  now,
		Quality:    q.Clamp(),
		Interval:   next.Interval,
		EaseFactor: next.EaseFactor,
	}
	if err := s.store.SaveReview(ctx, card.ID, card.Revision, next, log); err != nil {
		return domain.Card{}, err
	}

	slog.Debug("card reviewed",
		"card_id", card.ID,
		"quality", int(log.Quality),
		"interval", next.Interval,
		"ease_factor", next.EaseFactor,
		"repetitions", next.Repetitions,
	)

	card.Schedule = next
	card.Revision++
	return card, nil
}

// Preview returns the schedule each answer choice would give the card now.
func (s *Service) Preview(card domain.Card) map[Choice]sm2.State {
	now := s.now()
	out := make(map[Choice]sm2.State, len(Choices))
	for _, c := range Choices {
		out[c] = sm2.Schedule(card.Schedule, c.Quality(), now)
	}
	return out
}

// DeckStats summarises one deck.
type DeckStats struct {
	DeckID      string     `json:"deck_id"`
	Title       string     `json:"title"`
	Total       int        `json:"total"`
	Due         int        `json:"due"`
	Mastered    int        `json:"mastered"`
	LastStudied *time.Time `json:"last_studied"`
}

// Overview summarises every deck.
type Overview struct {
	Decks          []DeckStats `json:"decks"`
	Total          int         `json:"total"`
	Due            int         `json:"due"`
	Mastered       int         `json:"mastered"`
	MasteryPercent int         `json:"mastery_percent"`
}

// Overview counts total, due and mastered cards per deck and overall.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	decks, err := s.store.ListDecks(ctx)
	if err != nil {
		return Overview{}, err
	}
	cards, err := s.store.ListAllCards(ctx)
	if err != nil {
		return Overview{}, err
	}

	now := s.now()
	byDeck := make(map[string]*DeckStats, len(decks))
	ov := Overview{Decks: make([]DeckStats, len(decks))}
	for i, d := range decks {
		ov.Decks[i] = DeckStats{DeckID: d.ID, Title: d.Title, LastStudied: d.LastStudied}
		byDeck[d.ID] = &ov.Decks[i]
	}

	for _, c := range cards {
		st, ok := byDeck[c.DeckID]
		if !ok {
			continue
		}
		st.Total++
		ov.Total++
		if sm2.IsDue(c.Schedule, now) {
			st.Due++
			ov.Due++
		}
		if sm2.IsMastered(c.Schedule) {
			st.Mastered++
			ov.Mastered++
		}
	}

	if ov.Total > 0 {
		ov.MasteryPercent = int(math.Round(float64(ov.Mastered) / float64(ov.Total) * 100))
	}
	return ov, nil
}

func cardSchedule(c domain.Card) sm2.State {
	return c.Schedule
}
