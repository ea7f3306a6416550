package sm2

import (
	"math"
	"time"
)

// Schedule computes the state that follows a review of quality q at now.
//
// Out-of-range qualities are clamped. The ease factor is updated before the
// interval is chosen, so the compounding step uses the new ease. The input
// state is not mutated.
func Schedule(state State, quality Quality, now time.Time) State {
	q := quality.Clamp()
	ease := nextEaseFactor(state.EaseFactor, q)

	prevInterval := min(max(state.Interval, 0), MaxInterval)
	prevRepetitions := max(state.Repetitions, 0)

	var interval, repetitions int
	if q < PassingQuality {
		repetitions = 0
		interval = FirstInterval
	} else {
		repetitions = prevRepetitions + 1
		switch {
		case repetitions == 1:
			interval = FirstInterval
		case repetitions == 2:
			interval = SecondInterval
		default:
			interval = int(math.Min(math.Round(float64(prevInterval)*ease), float64(MaxInterval)))
		}
	}

	interval = min(max(interval, 1), MaxInterval)

	last := now
	next := now.Add(time.Duration(interval) * Day)

	return State{
		Interval:    interval,
		EaseFactor:  ease,
		Repetitions: repetitions,
		LastReview:  &last,
		NextReview:  &next,
	}
}

// nextEaseFactor applies the SM-2 ease adjustment for an already clamped quality.
func nextEaseFactor(ease float64, q Quality) float64 {
	d := float64(MaxQuality - q)
	return math.Max(MinEaseFactor, ease+(0.1-d*(0.08+d*0.02)))
}

// Preview returns the state each quality would produce if the review happened at now.
func Preview(state State, now time.Time) map[Quality]State {
	out := make(map[Quality]State, int(MaxQuality-MinQuality)+1)
	for q := MinQuality; q <= MaxQuality; q++ {
		out[q] = Schedule(state, q, now)
	}
	return out
}
