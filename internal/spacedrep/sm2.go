// Package spacedrep schedules concept reviews with a modified SM-2
// algorithm. The modification feeds calibration error into the quality
// rating so that overconfident recall shortens intervals even when the
// raw score is passable.
package spacedrep

import "math"

const (
	// MinEaseFactor and MaxEaseFactor bound the SM-2 ease factor.
	MinEaseFactor = 1.3
	MaxEaseFactor = 2.5

	// InitialEaseFactor seeds new review data.
	InitialEaseFactor = 2.5

	// firstInterval and secondInterval are the fixed onboarding steps
	// before exponential growth begins.
	firstInterval  = 1
	secondInterval = 6
)

// QualityRating maps a score and calibration error to the SM-2 quality
// scale 0..5. Severe overconfidence (error >= 3) costs one quality point,
// floored at 0, independent of the raw score.
func QualityRating(score float64, confidenceError int) int {
	var quality int
	switch {
	case score >= 0.9:
		quality = 5
	case score >= 0.8:
		quality = 4
	case score >= 0.7:
		quality = 3
	case score >= 0.6:
		quality = 2
	case score >= 0.5:
		quality = 1
	default:
		quality = 0
	}

	if confidenceError >= 3 {
		quality--
	}
	if quality < 0 {
		quality = 0
	}
	return quality
}

// NextReview applies one SM-2 step.
// Quality below 3 resets repetitions and drops the interval to one day;
// otherwise the interval follows the 1, 6, ceil(i*EF) growth curve.
// The returned ease factor is always clamped to [MinEaseFactor, MaxEaseFactor].
func NextReview(currentInterval, repetitions int, easeFactor float64, quality int) (nextInterval, newRepetitions int, newEaseFactor float64) {
	q := float64(quality)
	ef := easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}
	if ef > MaxEaseFactor {
		ef = MaxEaseFactor
	}

	if quality < 3 {
		return firstInterval, 0, ef
	}

	newRepetitions = repetitions + 1
	switch newRepetitions {
	case 1:
		nextInterval = firstInterval
	case 2:
		nextInterval = secondInterval
	default:
		nextInterval = int(math.Ceil(float64(currentInterval) * ef))
	}
	return nextInterval, newRepetitions, ef
}
