package calibration

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestMapScoreToConfidence_Buckets(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0.0, 1},
		{0.20, 1},
		{0.21, 2},
		{0.50, 2},
		{0.51, 3},
		{0.75, 3},
		{0.76, 4},
		{0.90, 4},
		{0.91, 5},
		{1.0, 5},
	}
	for _, c := range cases {
		if got := MapScoreToConfidence(c.score); got != c.want {
			t.Errorf("MapScoreToConfidence(%.2f) = %d, want %d", c.score, got, c.want)
		}
	}
}

func TestMapScoreToConfidence_Monotonic(t *testing.T) {
	prev := 0
	for s := 0.0; s <= 1.0; s += 0.01 {
		got := MapScoreToConfidence(s)
		if got < prev {
			t.Fatalf("MapScoreToConfidence not monotonic at %.2f: %d < %d", s, got, prev)
		}
		if got < 1 || got > 5 {
			t.Fatalf("MapScoreToConfidence(%.2f) = %d, out of 1..5", s, got)
		}
		prev = got
	}
}

func TestCalculate_Classification(t *testing.T) {
	cases := []struct {
		name       string
		confidence int
		score      float64
		wantErr    int
		wantLabel  Label
		wantDir    Direction
	}{
		{"exact match", 4, 0.85, 0, LabelCalibrated, DirectionCalibrated},
		{"one over", 4, 0.70, 1, LabelSlightlyOverconfident, DirectionOverconfident},
		{"two over", 4, 0.45, 2, LabelModeratelyOverconfident, DirectionOverconfident},
		{"three over", 4, 0.10, 3, LabelSignificant, DirectionOverconfident},
		{"four over", 5, 0.10, 4, LabelSignificant, DirectionOverconfident},
		{"one under", 3, 0.85, -1, LabelSlightlyUnderconfident, DirectionUnderconfident},
		{"two under", 2, 0.85, -2, LabelModeratelyUnderconfident, DirectionUnderconfident},
		{"three under", 1, 0.85, -3, LabelSignificant, DirectionUnderconfident},
		{"four under", 1, 0.95, -4, LabelSignificant, DirectionUnderconfident},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Calculate(c.confidence, c.score, testNow)
			if r.Error != c.wantErr {
				t.Errorf("Error = %d, want %d", r.Error, c.wantErr)
			}
			if r.Calibration != c.wantLabel {
				t.Errorf("Calibration = %q, want %q", r.Calibration, c.wantLabel)
			}
			if r.Direction != c.wantDir {
				t.Errorf("Direction = %q, want %q", r.Direction, c.wantDir)
			}
			if !r.Timestamp.Equal(testNow) {
				t.Errorf("Timestamp = %v, want %v", r.Timestamp, testNow)
			}
		})
	}
}

func TestCalculate_CalibratedIffBucketMatches(t *testing.T) {
	for conf := 1; conf <= 5; conf++ {
		for s := 0.0; s <= 1.0; s += 0.05 {
			r := Calculate(conf, s, testNow)
			wantCalibrated := conf == MapScoreToConfidence(s)
			gotCalibrated := r.Calibration == LabelCalibrated
			if gotCalibrated != wantCalibrated {
				t.Errorf("Calculate(%d, %.2f): calibrated = %v, want %v",
					conf, s, gotCalibrated, wantCalibrated)
			}
		}
	}
}

func TestFeedback_ReferencesConfidenceAndScore(t *testing.T) {
	cases := []struct {
		confidence int
		score      float64
		contains   string
	}{
		{4, 0.85, "Well calibrated"},
		{4, 0.70, "Slightly overconfident"},
		{4, 0.45, "Moderately overconfident"},
		{5, 0.10, "far above"},
		{3, 0.85, "Slightly underconfident"},
		{2, 0.85, "Moderately underconfident"},
		{1, 0.95, "far below"},
	}
	for _, c := range cases {
		r := Calculate(c.confidence, c.score, testNow)
		fb := Feedback(r)
		if !strings.Contains(fb, c.contains) {
			t.Errorf("Feedback for conf=%d score=%.2f = %q, want substring %q",
				c.confidence, c.score, fb, c.contains)
		}
	}
}
