package sm2

import (
	"math"
	"testing"
)

func FuzzSchedule(f *testing.F) {
	f.Add(0, 2.5, 0, 5)
	f.Add(6, 2.7, 2, 4)
	f.Add(120, 1.3, 9, 0)
	f.Add(-3, 1.3, -1, 9)

	f.Fuzz(func(t *testing.T, interval int, ease float64, reps int, quality int) {
		if math.IsNaN(ease) || math.IsInf(ease, 0) || ease < MinEaseFactor || ease > 10 {
			t.Skip()
		}
		if interval > MaxInterval || reps > 1000 || reps < -1000 {
			t.Skip()
		}

		prev := State{Interval: interval, EaseFactor: ease, Repetitions: reps}
		got := Schedule(prev, Quality(quality), testNow)

		if got.EaseFactor < MinEaseFactor {
			t.Fatalf("ease factor %f below floor", got.EaseFactor)
		}
		if got.Interval < 1 {
			t.Fatalf("interval %d below 1", got.Interval)
		}
		if got.NextReview.Before(*got.LastReview) {
			t.Fatalf("next review %v before last review %v", got.NextReview, got.LastReview)
		}
		if Quality(quality).Clamp() < PassingQuality && (got.Repetitions != 0 || got.Interval != 1) {
			t.Fatalf("lapse produced repetitions=%d interval=%d", got.Repetitions, got.Interval)
		}
		clamped := Schedule(prev, Quality(quality).Clamp(), testNow)
		if got.Interval != clamped.Interval || got.EaseFactor != clamped.EaseFactor || got.Repetitions != clamped.Repetitions {
			t.Fatalf("clamping changed the result: %+v vs %+v", got, clamped)
		}
	})
}
