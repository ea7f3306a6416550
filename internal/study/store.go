package study

//go:generate mockgen -source=store.go -destination=../mocks/study/mock_store.go -package=mock_study

import (
	"context"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
)

// Store is the persistence the study service reads cards from and writes reviews to.
type Store interface {
	FindDeck(ctx context.Context, id string) (domain.Deck, error)
	ListDecks(ctx context.Context) ([]domain.Deck, error)
	FindCard(ctx context.Context, id string) (domain.Card, error)
	ListCards(ctx context.Context, deckID string) ([]domain.Card, error)
	ListAllCards(ctx context.Context) ([]domain.Card, error)
	SaveReview(ctx context.Context, cardID string, expectedRevision int, next sm2.State, log domain.ReviewLog) error
}
