package knol

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/recall/internal/domain"
)

// Normalize concatenates the card's front and back after cleaning each side.
// It trims whitespace, lowercases, and normalizes line endings for each side
// before joining them.
func Normalize(card domain.Card) string {
	normalizeSide := func(side string) string {
		s := strings.ReplaceAll(side, "\r\n", "\n")
		s = strings.ToLower(s)
		return strings.TrimSpace(s)
	}

	// Joined with a newline so "front" + "back" can't collide with "frontb" + "ack".
	return normalizeSide(card.Front) + "\n" + normalizeSide(card.Back)
}

// Fingerprint returns the SHA-256 hash of the card's normalized content as a hex string.
// Two cards in one deck with the same fingerprint are duplicates.
func Fingerprint(card domain.Card) string {
	sum := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", sum)
}
