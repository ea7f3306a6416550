package sm2

import "time"

// IsDue reports whether a card in state s should be shown at now.
// Cards that were never reviewed are always due; a card scheduled exactly at
// now is due.
func IsDue(s State, now time.Time) bool {
	return s.NextReview == nil || !s.NextReview.After(now)
}

// DueCards returns the cards that are due at now, in input order.
// state extracts the scheduling state from each card.
func DueCards[T any](cards []T, now time.Time, state func(T) State) []T {
	due := make([]T, 0, len(cards))
	for _, c := range cards {
		if IsDue(state(c), now) {
			due = append(due, c)
		}
	}
	return due
}

// Due is DueCards over bare states.
func Due(states []State, now time.Time) []State {
	return DueCards(states, now, func(s State) State { return s })
}
