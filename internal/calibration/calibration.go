// Package calibration maps self-reported confidence against objective
// performance. It classifies each scored assessment, builds feedback for
// the learner, and aggregates history into accuracy and trend metrics.
package calibration

import (
	"fmt"
	"time"
)

// Direction describes which side of calibrated a learner falls on.
type Direction string

const (
	DirectionCalibrated     Direction = "calibrated"
	DirectionOverconfident  Direction = "overconfident"
	DirectionUnderconfident Direction = "underconfident"
)

// Label classifies the magnitude of a calibration error.
type Label string

const (
	LabelCalibrated               Label = "calibrated"
	LabelSlightlyOverconfident    Label = "slightly_overconfident"
	LabelModeratelyOverconfident  Label = "moderately_overconfident"
	LabelSlightlyUnderconfident   Label = "slightly_underconfident"
	LabelModeratelyUnderconfident Label = "moderately_underconfident"
	LabelSignificant              Label = "significantly_miscalibrated"
)

// Record captures one confidence-vs-performance comparison. Records are
// immutable once created.
type Record struct {
	SelfConfidence     int       `json:"self_confidence"`
	ActualScore        float64   `json:"actual_score"`
	ExpectedConfidence int       `json:"expected_confidence"`
	Error              int       `json:"error"`
	Calibration        Label     `json:"calibration"`
	Direction          Direction `json:"direction"`
	Timestamp          time.Time `json:"timestamp"`
}

// MapScoreToConfidence buckets a score in [0.0, 1.0] into the 1-5 expected
// confidence scale. Out-of-range scores are a caller precondition and are
// not validated here.
func MapScoreToConfidence(score float64) int {
	switch {
	case score <= 0.20:
		return 1
	case score <= 0.50:
		return 2
	case score <= 0.75:
		return 3
	case score <= 0.90:
		return 4
	default:
		return 5
	}
}

// Calculate builds a Record from a self-reported confidence and the actual
// score. Error is self minus expected: positive means overconfident.
func Calculate(selfConfidence int, actualScore float64, now time.Time) Record {
	expected := MapScoreToConfidence(actualScore)
	errVal := selfConfidence - expected

	label, direction := classify(errVal)

	return Record{
		SelfConfidence:     selfConfidence,
		ActualScore:        actualScore,
		ExpectedConfidence: expected,
		Error:              errVal,
		Calibration:        label,
		Direction:          direction,
		Timestamp:          now,
	}
}

func classify(errVal int) (Label, Direction) {
	switch {
	case errVal == 0:
		return LabelCalibrated, DirectionCalibrated
	case errVal == 1:
		return LabelSlightlyOverconfident, DirectionOverconfident
	case errVal == 2:
		return LabelModeratelyOverconfident, DirectionOverconfident
	case errVal >= 3:
		return LabelSignificant, DirectionOverconfident
	case errVal == -1:
		return LabelSlightlyUnderconfident, DirectionUnderconfident
	case errVal == -2:
		return LabelModeratelyUnderconfident, DirectionUnderconfident
	default:
		return LabelSignificant, DirectionUnderconfident
	}
}

// Feedback renders human-readable feedback for a calibration record,
// keyed by the record's error bucket.
func Feedback(r Record) string {
	pct := r.ActualScore * 100

	switch {
	case r.Error == 0:
		return fmt.Sprintf(
			"Well calibrated! Your confidence of %d matched your score of %.0f%%. Keep trusting your self-assessment.",
			r.SelfConfidence, pct)
	case r.Error == 1:
		return fmt.Sprintf(
			"Slightly overconfident: you rated yourself %d, but your score of %.0f%% suggests a %d. A small gap — double-check before answering.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	case r.Error == 2:
		return fmt.Sprintf(
			"Moderately overconfident: your confidence of %d outpaced your score of %.0f%% (expected level %d). Slow down and verify each step.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	case r.Error >= 3:
		return fmt.Sprintf(
			"Your confidence of %d was far above your score of %.0f%% (expected level %d). Let's revisit the fundamentals before moving on.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	case r.Error == -1:
		return fmt.Sprintf(
			"Slightly underconfident: you rated yourself %d, but your score of %.0f%% earns a %d. You know more than you think.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	case r.Error == -2:
		return fmt.Sprintf(
			"Moderately underconfident: your confidence of %d undersold a score of %.0f%% (expected level %d). Give yourself more credit.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	default:
		return fmt.Sprintf(
			"Your confidence of %d was far below your score of %.0f%% (expected level %d). Your performance is strong — trust it.",
			r.SelfConfidence, pct, r.ExpectedConfidence)
	}
}
