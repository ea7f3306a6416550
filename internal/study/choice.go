package study

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/conorfennell/recall/internal/sm2"
)

// Choice is an answer button offered to the learner.
type Choice string

const (
	DidntKnow Choice = "didnt-know"
	Hard      Choice = "hard"
	Easy      Choice = "easy"
)

// Choices lists the answer buttons in display order.
var Choices = []Choice{DidntKnow, Hard, Easy}

var ErrUnknownChoice = errors.New("unknown answer choice")

// Quality maps the choice onto the SM-2 grade scale.
func (c Choice) Quality() sm2.Quality {
	switch c {
	case DidntKnow:
		return sm2.Incorrect
	case Hard:
		return sm2.CorrectDifficult
	case Easy:
		return sm2.Perfect
	}
	return sm2.Blackout
}

// ParseChoice accepts a choice name or a raw quality number.
// Numbers are passed through unclamped; the scheduler clamps them.
func ParseChoice(s string) (sm2.Quality, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("'", "", "_", "-", " ", "-").Replace(normalized)

	for _, c := range Choices {
		if normalized == string(c) {
			return c.Quality(), nil
		}
	}

	n, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownChoice, s)
	}
	return sm2.Quality(n), nil
}
