package mastery

import (
	"testing"
	"time"

	"github.com/gradusapp/gradus/internal/learner"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func binary(correct bool) learner.AssessmentRecord {
	score := 0.0
	if correct {
		score = 1.0
	}
	return learner.AssessmentRecord{
		Timestamp:    testNow,
		QuestionType: learner.QuestionMultipleChoice,
		Correct:      correct,
		Score:        score,
	}
}

func dialogue(score float64) learner.AssessmentRecord {
	return learner.AssessmentRecord{
		Timestamp:    testNow,
		QuestionType: learner.QuestionDialogue,
		Correct:      score >= 0.5,
		Score:        score,
	}
}

func repeat(r learner.AssessmentRecord, n int) []learner.AssessmentRecord {
	out := make([]learner.AssessmentRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestEvaluate_ZeroAssessments(t *testing.T) {
	eval := Evaluate(nil, DefaultConfig())
	if eval.Recommendation != RecommendNotAssessed {
		t.Errorf("Recommendation = %q, want %q", eval.Recommendation, RecommendNotAssessed)
	}
	if eval.Achieved || eval.Score != 0 || eval.WindowCount != 0 {
		t.Errorf("expected zero evaluation, got %+v", eval)
	}
}

func TestEvaluate_TenCorrectAchievesMastery(t *testing.T) {
	eval := Evaluate(repeat(binary(true), 10), DefaultConfig())

	if !eval.Achieved {
		t.Error("expected mastery achieved")
	}
	if eval.Score < 0.85 {
		t.Errorf("Score = %v, want >= 0.85", eval.Score)
	}
	if eval.Recommendation != RecommendAdvance {
		t.Errorf("Recommendation = %q, want %q", eval.Recommendation, RecommendAdvance)
	}
}

func TestEvaluate_HighScoreSmallSample(t *testing.T) {
	// Two correct answers score 1.0 but the sample is below the minimum.
	eval := Evaluate(repeat(binary(true), 2), DefaultConfig())

	if eval.Achieved {
		t.Error("expected mastery withheld below MinAssessments")
	}
	if eval.Recommendation != RecommendContinue {
		t.Errorf("Recommendation = %q, want %q", eval.Recommendation, RecommendContinue)
	}
}

func TestEvaluate_LowScoreRecommendsRemediation(t *testing.T) {
	records := append(repeat(binary(false), 4), binary(true))
	eval := Evaluate(records, DefaultConfig())

	if eval.Score != 0.2 {
		t.Errorf("Score = %v, want 0.2", eval.Score)
	}
	if eval.Recommendation != RecommendRemediate {
		t.Errorf("Recommendation = %q, want %q", eval.Recommendation, RecommendRemediate)
	}
}

func TestEvaluate_MidScoreRecommendsContinue(t *testing.T) {
	// 3 of 4 correct = 0.75: between continue and mastery thresholds.
	records := append(repeat(binary(true), 3), binary(false))
	eval := Evaluate(records, DefaultConfig())

	if eval.Recommendation != RecommendContinue {
		t.Errorf("Recommendation = %q, want %q", eval.Recommendation, RecommendContinue)
	}
}

func TestEvaluate_WindowDropsOldFailures(t *testing.T) {
	// 10 early failures pushed out of the window by 10 later successes.
	records := append(repeat(binary(false), 10), repeat(binary(true), 10)...)
	eval := Evaluate(records, DefaultConfig())

	if eval.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0 (old failures outside window)", eval.Score)
	}
	if eval.WindowCount != 10 {
		t.Errorf("WindowCount = %d, want 10", eval.WindowCount)
	}
}

func TestEvaluate_DialogueWeightedScore(t *testing.T) {
	records := []learner.AssessmentRecord{
		dialogue(0.7), dialogue(0.7), dialogue(0.7), dialogue(0.7),
	}
	eval := Evaluate(records, DefaultConfig())

	if eval.Score != 0.7 {
		t.Errorf("Score = %v, want 0.7", eval.Score)
	}
	if eval.Achieved {
		t.Error("expected mastery not achieved at 0.7")
	}
}

func TestApply_CompletionLatches(t *testing.T) {
	cp := &learner.ConceptProgress{Assessments: repeat(binary(true), 10)}

	_, newly := Apply(cp, DefaultConfig())
	if !newly || !cp.Completed {
		t.Fatal("expected first completion")
	}

	// A run of failures lowers the score but does not un-complete.
	cp.Assessments = append(cp.Assessments, repeat(binary(false), 5)...)
	eval, newly := Apply(cp, DefaultConfig())
	if newly {
		t.Error("completion reported twice")
	}
	if !cp.Completed {
		t.Error("completion must latch")
	}
	if eval.Achieved {
		t.Error("window score below threshold should not report achieved")
	}
	if cp.MasteryScore != eval.Score {
		t.Errorf("MasteryScore = %v, want recomputed %v", cp.MasteryScore, eval.Score)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("GRADUS_MASTERY_THRESHOLD", "0.9")
	t.Setenv("GRADUS_MASTERY_WINDOW", "5")
	t.Setenv("GRADUS_MIN_ASSESSMENTS", "oops")

	cfg := ConfigFromEnv()
	if cfg.MasteryThreshold != 0.9 {
		t.Errorf("MasteryThreshold = %v, want 0.9", cfg.MasteryThreshold)
	}
	if cfg.WindowSize != 5 {
		t.Errorf("WindowSize = %d, want 5", cfg.WindowSize)
	}
	if cfg.MinAssessments != 3 {
		t.Errorf("MinAssessments = %d, want default 3 on malformed value", cfg.MinAssessments)
	}
}
