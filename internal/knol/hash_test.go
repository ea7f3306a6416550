package knol

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/conorfennell/recall/internal/domain"
)

func TestNormalize(t *testing.T) {
	card := domain.Card{
		Front: "  What is HTMX? \r\n",
		Back:  "A library for AJAX.\r\nMostly attributes.",
	}
	expected := "what is htmx?\na library for ajax.\nmostly attributes."
	normalized := Normalize(card)

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		card := domain.Card{Front: "Q", Back: "A"}
		expectedHash := fmt.Sprintf("%x", sha256.Sum256([]byte("q\na")))
		hash := Fingerprint(card)

		if hash != expectedHash {
			t.Errorf("Expected hash '%s', but got '%s'", expectedHash, hash)
		}
		if len(hash) != 64 {
			t.Errorf("Expected a 64 character hex digest, got %d characters", len(hash))
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		card1 := domain.Card{Front: "Test", Back: "Answer"}
		card2 := domain.Card{Front: "Test", Back: "Answer"}
		if Fingerprint(card1) != Fingerprint(card2) {
			t.Error("Expected hashes for identical cards to be the same")
		}
	})

	t.Run("normalization produces same hash", func(t *testing.T) {
		card1 := domain.Card{Front: "  what is go? ", Back: "A programming language."}
		card2 := domain.Card{Front: "What Is Go?", Back: "a programming language."}
		if Fingerprint(card1) != Fingerprint(card2) {
			t.Error("Expected hashes to be the same after normalization, but they were different.")
		}
	})

	t.Run("scheduling state does not affect hash", func(t *testing.T) {
		card1 := domain.Card{Front: "Q", Back: "A", ID: "one"}
		card2 := domain.Card{Front: "Q", Back: "A", ID: "two", Revision: 4}
		if Fingerprint(card1) != Fingerprint(card2) {
			t.Error("Expected identity and schedule to be ignored by the fingerprint")
		}
	})

	t.Run("different cards have different hashes", func(t *testing.T) {
		card1 := domain.Card{Front: "Card 1", Back: "x"}
		card2 := domain.Card{Front: "Card 2", Back: "x"}
		if Fingerprint(card1) == Fingerprint(card2) {
			t.Error("Expected hashes for different cards to be different")
		}
	})

	t.Run("front and back boundary matters", func(t *testing.T) {
		card1 := domain.Card{Front: "front", Back: "back"}
		card2 := domain.Card{Front: "frontb", Back: "ack"}
		if Fingerprint(card1) == Fingerprint(card2) {
			t.Error("Expected the side boundary to be part of the fingerprint")
		}
	})
}
