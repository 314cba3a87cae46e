package spacedrep

import (
	"math"
	"testing"
)

func TestQualityRating_ScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0.95, 5},
		{0.90, 5},
		{0.85, 4},
		{0.80, 4},
		{0.75, 3},
		{0.70, 3},
		{0.65, 2},
		{0.60, 2},
		{0.55, 1},
		{0.50, 1},
		{0.45, 0},
		{0.0, 0},
	}
	for _, c := range cases {
		if got := QualityRating(c.score, 0); got != c.want {
			t.Errorf("QualityRating(%.2f, 0) = %d, want %d", c.score, got, c.want)
		}
	}
}

func TestQualityRating_OverconfidencePenalty(t *testing.T) {
	if got := QualityRating(0.95, 3); got != 4 {
		t.Errorf("QualityRating(0.95, 3) = %d, want 4", got)
	}
	// Penalty floors at 0.
	if got := QualityRating(0.1, 4); got != 0 {
		t.Errorf("QualityRating(0.1, 4) = %d, want 0", got)
	}
	// Moderate overconfidence carries no penalty.
	if got := QualityRating(0.95, 2); got != 5 {
		t.Errorf("QualityRating(0.95, 2) = %d, want 5", got)
	}
}

func TestNextReview_GrowthCurve(t *testing.T) {
	// Quality 5 repeatedly from a fresh state: intervals 1, 6, ceil(6*EF), ...
	interval, reps := 1, 0
	ef := InitialEaseFactor

	interval, reps, ef = NextReview(interval, reps, ef, 5)
	if interval != 1 || reps != 1 {
		t.Fatalf("step 1: interval=%d reps=%d, want 1/1", interval, reps)
	}

	interval, reps, ef = NextReview(interval, reps, ef, 5)
	if interval != 6 || reps != 2 {
		t.Fatalf("step 2: interval=%d reps=%d, want 6/2", interval, reps)
	}

	prev := interval
	for step := 3; step <= 6; step++ {
		interval, reps, ef = NextReview(interval, reps, ef, 5)
		want := int(math.Ceil(float64(prev) * ef))
		if interval != want {
			t.Errorf("step %d: interval = %d, want ceil(%d*%.2f) = %d", step, interval, prev, ef, want)
		}
		if interval < prev {
			t.Errorf("step %d: interval shrank from %d to %d", step, prev, interval)
		}
		prev = interval
	}
}

func TestNextReview_FailureResets(t *testing.T) {
	states := []struct {
		interval, reps int
		ef             float64
	}{
		{1, 0, 2.5},
		{6, 2, 2.5},
		{90, 7, 1.8},
	}
	for _, s := range states {
		for quality := 0; quality < 3; quality++ {
			interval, reps, _ := NextReview(s.interval, s.reps, s.ef, quality)
			if interval != 1 || reps != 0 {
				t.Errorf("quality %d from interval=%d reps=%d: got %d/%d, want 1/0",
					quality, s.interval, s.reps, interval, reps)
			}
		}
	}
}

func TestNextReview_EaseFactorClamped(t *testing.T) {
	for quality := 0; quality <= 5; quality++ {
		for _, ef := range []float64{1.3, 1.8, 2.5} {
			_, _, newEF := NextReview(10, 3, ef, quality)
			if newEF < MinEaseFactor || newEF > MaxEaseFactor {
				t.Errorf("quality %d from EF %.2f: new EF %.3f outside [%.1f, %.1f]",
					quality, ef, newEF, MinEaseFactor, MaxEaseFactor)
			}
		}
	}
}

func TestNextReview_Quality5ClampsAtCeiling(t *testing.T) {
	// EF 2.5 + 0.1 bonus would exceed the ceiling; must clamp back to 2.5.
	_, reps, ef := NextReview(1, 0, 2.5, 5)
	if reps != 1 {
		t.Errorf("repetitions = %d, want 1", reps)
	}
	if ef != 2.5 {
		t.Errorf("ease factor = %v, want clamped 2.5", ef)
	}
}
