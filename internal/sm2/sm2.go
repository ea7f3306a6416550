// Package sm2 implements SuperMemo-2 review scheduling for flashcards.
//
// Everything here is a pure function of its inputs. The package never reads
// the wall clock; callers pass the review instant in.
package sm2

import (
	"math"
	"time"
)

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3

	FirstInterval  = 1
	SecondInterval = 6

	// MaxInterval is the longest interval, in days, a time.Duration can hold.
	MaxInterval = int(math.MaxInt64 / int64(Day))

	// MasteredInterval is the interval, in days, a card must exceed to count as mastered.
	MasteredInterval = 30
)

// Day is the length of one interval step.
const Day = 24 * time.Hour

// Quality is the recall grade given for a review, from 0 (blackout) to 5 (perfect).
type Quality int

const (
	Blackout          Quality = 0
	Incorrect         Quality = 1
	IncorrectFamiliar Quality = 2
	CorrectDifficult  Quality = 3
	CorrectHesitant   Quality = 4
	Perfect           Quality = 5
)

const (
	MinQuality     = Blackout
	MaxQuality     = Perfect
	PassingQuality = CorrectDifficult
)

// Clamp returns q limited to [MinQuality, MaxQuality].
func (q Quality) Clamp() Quality {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// Passed reports whether q counts as a successful recall.
func (q Quality) Passed() bool {
	return q.Clamp() >= PassingQuality
}

// State holds the scheduling state of a card.
type State struct {
	Interval    int        `json:"interval"` // days
	EaseFactor  float64    `json:"ease_factor"`
	Repetitions int        `json:"repetitions"`
	LastReview  *time.Time `json:"last_review"` // nil before first review.
	NextReview  *time.Time `json:"next_review"` // nil before first review.
}

// NewState returns the state of a card that has never been reviewed.
func NewState() State {
	return State{
		Interval:    0,
		EaseFactor:  DefaultEaseFactor,
		Repetitions: 0,
	}
}

// Reviewed reports whether the card has been reviewed at least once.
func (s State) Reviewed() bool {
	return s.LastReview != nil
}

// IsMastered reports whether the card's interval has grown past MasteredInterval.
func IsMastered(s State) bool {
	return s.Interval > MasteredInterval
}
