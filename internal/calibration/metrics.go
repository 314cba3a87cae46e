package calibration

import "math"

// Metrics aggregates a learner's calibration history.
type Metrics struct {
	TotalAssessments   int     `json:"total_assessments"`
	CalibratedRate     float64 `json:"calibrated_rate"`
	OverconfidentRate  float64 `json:"overconfident_rate"`
	UnderconfidentRate float64 `json:"underconfident_rate"`
	AvgAbsError        float64 `json:"avg_abs_error"`
	Accuracy           float64 `json:"accuracy"`
}

// Trend describes how calibration error is moving over time.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendStable           Trend = "stable"
	TrendDegrading        Trend = "degrading"
	TrendInsufficientData Trend = "insufficient_data"
)

// DefaultTrendWindow is the window size for trend detection.
const DefaultTrendWindow = 5

// Overall computes aggregate calibration metrics over a record history.
// An empty history yields all-zero metrics with TotalAssessments == 0.
// Rates are rounded to two decimals.
func Overall(history []Record) Metrics {
	if len(history) == 0 {
		return Metrics{}
	}

	var calibrated, over, under int
	var errSum float64
	for _, r := range history {
		switch r.Direction {
		case DirectionCalibrated:
			calibrated++
		case DirectionOverconfident:
			over++
		case DirectionUnderconfident:
			under++
		}
		errSum += math.Abs(float64(r.Error))
	}

	total := len(history)
	avgErr := errSum / float64(total)

	return Metrics{
		TotalAssessments:   total,
		CalibratedRate:     round2(float64(calibrated) / float64(total)),
		OverconfidentRate:  round2(float64(over) / float64(total)),
		UnderconfidentRate: round2(float64(under) / float64(total)),
		AvgAbsError:        round2(avgErr),
		Accuracy:           round2(math.Max(0, 1-avgErr/5)),
	}
}

// DetectTrend compares the mean absolute error of the most recent
// windowSize records against the immediately preceding windowSize records.
// A drop of more than 0.5 is improving, a rise of more than 0.5 is
// degrading; the +-0.5 dead zone is stable. Fewer than 2*windowSize
// records is insufficient data. This is a two-window trailing comparison,
// not a regression.
func DetectTrend(history []Record, windowSize int) Trend {
	if windowSize <= 0 {
		windowSize = DefaultTrendWindow
	}
	if len(history) < 2*windowSize {
		return TrendInsufficientData
	}

	recent := history[len(history)-windowSize:]
	previous := history[len(history)-2*windowSize : len(history)-windowSize]

	improvement := meanAbsError(previous) - meanAbsError(recent)
	switch {
	case improvement > 0.5:
		return TrendImproving
	case improvement < -0.5:
		return TrendDegrading
	default:
		return TrendStable
	}
}

// ShouldIntervene decides whether a calibration record warrants immediate
// pedagogical intervention. The rules form a cascade; the first match wins.
func ShouldIntervene(r Record, performanceScore float64, historyLength int) (bool, string) {
	if r.Error >= 3 && performanceScore < 0.50 {
		return true, "severe overconfidence combined with a failing score"
	}
	if r.Error <= -3 && performanceScore >= 0.75 {
		return true, "severe underconfidence despite a strong score"
	}
	if r.Error >= 2 && historyLength >= 3 {
		return true, "persistent overconfidence across recent assessments"
	}
	return false, ""
}

func meanAbsError(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += math.Abs(float64(r.Error))
	}
	return sum / float64(len(records))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
