package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/sm2"
	"github.com/conorfennell/recall/internal/study"
)

// handleOverview renders the dashboard counts.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.study.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.db.ListDecks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	deck := domain.NewDeck(req.Title, req.Description, s.study.Now())
	if err := domain.Validate(deck); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.db.InsertDeck(r.Context(), deck); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteDeck(r.Context(), chi.URLParam(r, "deckID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if _, err := s.db.FindDeck(r.Context(), deckID); err != nil {
		writeError(w, r, err)
		return
	}
	cards, err := s.db.ListCards(r.Context(), deckID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	card := domain.NewCard(chi.URLParam(r, "deckID"), req.Front, req.Back, s.study.Now())
	if err := domain.Validate(card); err != nil {
		writeError(w, r, err)
		return
	}
	card, err := s.db.InsertCard(r.Context(), card)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteCard(r.Context(), chi.URLParam(r, "cardID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type choicePreview struct {
	Interval   int        `json:"interval"`
	NextReview *time.Time `json:"next_review"`
}

type dueCard struct {
	domain.Card
	Preview map[study.Choice]choicePreview `json:"preview"`
}

// handleDue renders the deck's due queue with what each answer would schedule.
func (s *Server) handleDue(w http.ResponseWriter, r *http.Request) {
	cards, err := s.study.DueQueue(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]dueCard, 0, len(cards))
	for _, c := range cards {
		preview := make(map[study.Choice]choicePreview, len(study.Choices))
		for choice, next := range s.study.Preview(c) {
			preview[choice] = choicePreview{Interval: next.Interval, NextReview: next.NextReview}
		}
		out = append(out, dueCard{Card: c, Preview: preview})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"due_count": len(out),
		"cards":     out,
	})
}

// handleReview processes an answer and returns the rescheduled card.
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Choice  string `json:"choice"`
		Quality *int   `json:"quality"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	var q sm2.Quality
	switch {
	case req.Quality != nil:
		q = sm2.Quality(*req.Quality)
	case req.Choice != "":
		parsed, err := study.ParseChoice(req.Choice)
		if err != nil {
			writeError(w, r, err)
			return
		}
		q = parsed
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "choice or quality required"})
		return
	}

	card, err := s.study.Answer(r.Context(), chi.URLParam(r, "cardID"), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleReviewLogs(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if _, err := s.db.FindCard(r.Context(), cardID); err != nil {
		writeError(w, r, err)
		return
	}
	logs, err := s.db.ReviewLogs(r.Context(), cardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
