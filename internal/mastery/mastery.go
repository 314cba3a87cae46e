// Package mastery derives a mastery score and completion decision from a
// concept's assessment ledger. The score is a proportion-correct over a
// trailing window: dialogue answers contribute their weighted score,
// other question types contribute 1 or 0.
package mastery

import "github.com/gradusapp/gradus/internal/learner"

// Recommendation is the next-step suggestion derived from the window score.
type Recommendation string

const (
	RecommendAdvance     Recommendation = "advance"
	RecommendContinue    Recommendation = "continue"
	RecommendRemediate   Recommendation = "remediate"
	RecommendNotAssessed Recommendation = "not_assessed"
)

// Evaluation is the outcome of scoring one concept's ledger.
type Evaluation struct {
	// Score is the proportion correct over the window, in [0, 1].
	Score float64

	// Achieved is true when Score meets the mastery threshold with a
	// sufficient sample in the window.
	Achieved bool

	// WindowCount is the number of assessments that fell in the window.
	WindowCount int

	Recommendation Recommendation
}

// Evaluate computes the mastery evaluation for a concept's assessment
// ledger. A concept with zero assessments yields a not-yet-assessed
// evaluation, not an error.
func Evaluate(assessments []learner.AssessmentRecord, cfg Config) Evaluation {
	if len(assessments) == 0 {
		return Evaluation{Recommendation: RecommendNotAssessed}
	}

	window := assessments
	if len(window) > cfg.WindowSize {
		window = window[len(window)-cfg.WindowSize:]
	}

	var sum float64
	for _, a := range window {
		sum += assessmentWeight(a)
	}
	score := sum / float64(len(window))

	achieved := score >= cfg.MasteryThreshold && len(window) >= cfg.MinAssessments

	return Evaluation{
		Score:          score,
		Achieved:       achieved,
		WindowCount:    len(window),
		Recommendation: recommend(score, achieved, cfg),
	}
}

// Apply refreshes a concept's mastery state from its ledger and reports
// whether this evaluation completed the concept for the first time.
// Completion is latched: a later dip in the window score does not un-complete.
func Apply(cp *learner.ConceptProgress, cfg Config) (Evaluation, bool) {
	eval := Evaluate(cp.Assessments, cfg)
	cp.MasteryScore = eval.Score

	newlyCompleted := eval.Achieved && !cp.Completed
	if newlyCompleted {
		cp.Completed = true
	}
	return eval, newlyCompleted
}

// assessmentWeight is the contribution of one assessment to the window
// score. Dialogue answers carry their evaluator-weighted score; the
// binary types contribute 1 or 0.
func assessmentWeight(a learner.AssessmentRecord) float64 {
	if a.QuestionType == learner.QuestionDialogue {
		return a.Score
	}
	if a.Correct {
		return 1
	}
	return 0
}

func recommend(score float64, achieved bool, cfg Config) Recommendation {
	switch {
	case score < cfg.ContinueThreshold:
		return RecommendRemediate
	case achieved:
		return RecommendAdvance
	default:
		return RecommendContinue
	}
}
