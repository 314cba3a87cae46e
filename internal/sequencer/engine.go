package sequencer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gradusapp/gradus/internal/calibration"
	"github.com/gradusapp/gradus/internal/content"
	"github.com/gradusapp/gradus/internal/dialogue"
	"github.com/gradusapp/gradus/internal/learner"
	"github.com/gradusapp/gradus/internal/mastery"
	"github.com/gradusapp/gradus/internal/spacedrep"
)

// Repository is the persistence contract the engine depends on. Load
// returns a *NotFoundError when no record exists for the learner.
type Repository interface {
	Load(ctx context.Context, learnerID string) (*learner.Model, error)
	Save(ctx context.Context, m *learner.Model) error
}

// Engine orchestrates one answer-submission event: correctness, the
// calibration and mastery updates, review scheduling, persistence, and
// the hand-off to content generation.
//
// Submissions for the same learner serialize on a per-learner lock;
// submissions for different learners are independent.
type Engine struct {
	repo      Repository
	generator content.Generator
	evaluator dialogue.Evaluator
	cfg       mastery.Config

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// NewEngine creates an Engine. A nil generator disables content
// generation; a nil evaluator falls back to the length heuristic.
func NewEngine(repo Repository, gen content.Generator, eval dialogue.Evaluator, cfg mastery.Config) *Engine {
	if eval == nil {
		eval = dialogue.LengthHeuristic{}
	}
	return &Engine{
		repo:      repo,
		generator: gen,
		evaluator: eval,
		cfg:       cfg,
		locks:     make(map[string]*sync.Mutex),
		now:       time.Now,
	}
}

// SubmitRequest is one answer-submission event.
type SubmitRequest struct {
	LearnerID     string
	ConceptID     string
	QuestionType  learner.QuestionType
	Answer        string
	CorrectAnswer string

	// Confidence is the learner's 1-4 self-rating, nil when the
	// question did not ask for one.
	Confidence *int

	// QuestionContext carries the question just answered, for
	// remediation prompts and the repeat-avoidance history.
	QuestionContext *content.QuestionContext
}

// EvaluationResult is the outcome of one submission. NextContent is the
// collaborator's opaque blob, passed through unmodified; when generation
// fails the engine's own updates are already saved and GenerationError
// carries the failure instead.
type EvaluationResult struct {
	IsCorrect bool    `json:"is_correct"`
	Score     float64 `json:"score"`

	// Feedback is the open-ended evaluator's feedback, dialogue only.
	Feedback string `json:"feedback,omitempty"`

	Confidence          *int   `json:"confidence,omitempty"`
	CalibrationType     string `json:"calibration_type,omitempty"`
	CalibrationFeedback string `json:"calibration_feedback,omitempty"`

	// InterventionNeeded flags a calibration error severe enough that
	// the caller should surface the feedback immediately.
	InterventionNeeded bool   `json:"intervention_needed,omitempty"`
	InterventionReason string `json:"intervention_reason,omitempty"`

	MasteryScore     float64 `json:"mastery_score"`
	MasteryThreshold float64 `json:"mastery_threshold"`
	AssessmentsCount int     `json:"assessments_count"`
	ConceptCompleted bool    `json:"concept_completed"`

	NextStage       Stage       `json:"next_stage"`
	RemediationType Remediation `json:"remediation_type,omitempty"`

	// DueReviews is populated when the concept is completed, so the
	// course-advance layer can offer reviews next.
	DueReviews []spacedrep.DueReview `json:"due_reviews,omitempty"`

	NextContent     json.RawMessage `json:"next_content,omitempty"`
	GenerationError string          `json:"generation_error,omitempty"`
}

// SubmitAnswer runs the full submission pipeline. Validation happens
// before any mutation; the learner model is saved before content
// generation is attempted, so a collaborator failure never loses
// progress. When the learner is in practice mode the answer is still
// evaluated and the next content generated, but the assessment ledger,
// mastery state, and review schedule stay untouched.
func (e *Engine) SubmitAnswer(ctx context.Context, req SubmitRequest) (*EvaluationResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	lock := e.learnerLock(req.LearnerID)
	lock.Lock()
	defer lock.Unlock()

	m, err := e.repo.Load(ctx, req.LearnerID)
	if err != nil {
		return nil, err
	}

	now := e.now()

	var (
		correct  bool
		score    float64
		feedback string
	)
	if req.QuestionType == learner.QuestionDialogue {
		res := e.evaluator.Evaluate(req.Answer, req.CorrectAnswer)
		correct, score, feedback = res.Correct, res.Score, res.Feedback
	} else {
		correct = answersMatch(req.Answer, req.CorrectAnswer)
		if correct {
			score = 1
		}
	}

	cp := m.Concept(req.ConceptID)

	var calRec *calibration.Record
	if req.Confidence != nil {
		r := calibration.Calculate(analyzerConfidence(*req.Confidence), score, now)
		calRec = &r
	}

	masteryScore := cp.MasteryScore
	if !m.PracticeMode {
		rec := learner.AssessmentRecord{
			Timestamp:    now,
			QuestionType: req.QuestionType,
			Correct:      correct,
			Score:        score,
		}
		confidenceError := 0
		if calRec != nil {
			cp.ConfidenceHistory = append(cp.ConfidenceHistory, *calRec)

			conf := *req.Confidence
			errVal := calRec.Error
			rec.Confidence = &conf
			rec.CalibrationError = &errVal
			confidenceError = calRec.Error
		}

		cp.Assessments = append(cp.Assessments, rec)
		m.Overall.TotalAssessments++

		eval, newlyCompleted := mastery.Apply(cp, e.cfg)
		masteryScore = eval.Score
		switch {
		case newlyCompleted:
			m.Overall.ConceptsCompleted++
			if cp.Review == nil {
				cp.Review = spacedrep.InitReviewData(now)
			}
		case cp.Review != nil:
			spacedrep.UpdateSchedule(cp.Review, score, confidenceError, now)
		}
	}

	if req.QuestionContext != nil && req.QuestionContext.Question != "" {
		m.RecordQuestion(req.ConceptID, req.QuestionContext.Question, now)
	}

	stage, remediation := Decide(correct, req.Confidence)
	if cp.Completed && !m.PracticeMode {
		stage, remediation = StageCompleted, RemediationNone
	}

	result := &EvaluationResult{
		IsCorrect:        correct,
		Score:            score,
		Feedback:         feedback,
		Confidence:       req.Confidence,
		MasteryScore:     masteryScore,
		MasteryThreshold: e.cfg.MasteryThreshold,
		AssessmentsCount: len(cp.Assessments),
		ConceptCompleted: cp.Completed,
		NextStage:        stage,
		RemediationType:  remediation,
	}
	if calRec != nil {
		result.CalibrationType = string(calRec.Direction)
		result.CalibrationFeedback = calibration.Feedback(*calRec)
		result.InterventionNeeded, result.InterventionReason =
			calibration.ShouldIntervene(*calRec, score, len(cp.ConfidenceHistory))
	}
	if cp.Completed {
		result.DueReviews = spacedrep.DueReviews(m, 0, now)
	}

	m.UpdatedAt = now
	if err := e.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save learner model: %w", err)
	}

	// The engine's updates are durable at this point; a generation
	// failure is a partial success, not an error.
	if stage != StageCompleted && e.generator != nil {
		gen, genErr := e.generator.Generate(ctx, e.generationInput(m, req, stage, remediation, correct))
		if genErr != nil {
			result.GenerationError = genErr.Error()
		} else {
			result.NextContent = gen.Content
		}
	}

	return result, nil
}

func (e *Engine) generationInput(m *learner.Model, req SubmitRequest, stage Stage, remediation Remediation, correct bool) content.GenerationInput {
	input := content.GenerationInput{
		LearnerID:       m.ID,
		Course:          m.CurrentCourse,
		Concept:         req.ConceptID,
		Stage:           string(stage),
		RemediationType: string(remediation),
		Correct:         correct,
		Confidence:      req.Confidence,
		Interests:       m.Profile.Interests,
		LearningStyle:   m.Profile.LearningStyle,
		RecentQuestions: m.RecentQuestions(req.ConceptID),
	}

	if req.QuestionContext != nil {
		qc := *req.QuestionContext
		if qc.ChosenAnswer == "" {
			qc.ChosenAnswer = req.Answer
		}
		if qc.CorrectAnswer == "" {
			qc.CorrectAnswer = req.CorrectAnswer
		}
		input.QuestionContext = &qc
	}

	return input
}

// learnerLock returns the mutex serializing writes for one learner.
func (e *Engine) learnerLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}

func validate(req SubmitRequest) error {
	if req.LearnerID == "" {
		return &ValidationError{Field: "learner_id", Reason: "must not be empty"}
	}
	if req.ConceptID == "" {
		return &ValidationError{Field: "concept_id", Reason: "must not be empty"}
	}
	if !learner.ValidQuestionType(req.QuestionType) {
		return &ValidationError{Field: "question_type", Reason: fmt.Sprintf("unknown type %q", req.QuestionType)}
	}
	if req.Confidence != nil && (*req.Confidence < 1 || *req.Confidence > 4) {
		return &ValidationError{Field: "confidence", Reason: fmt.Sprintf("%d out of range 1-4", *req.Confidence)}
	}
	return nil
}

// analyzerConfidence widens the 1-4 self rating a submission carries
// onto the analyzer's 1-5 expected-confidence scale. The top rating
// means certain on both scales, so 4 maps to 5; the lower ratings line
// up directly. Without the remap a certain learner could never be
// classified as calibrated on a perfect answer.
func analyzerConfidence(conf int) int {
	if conf >= 4 {
		return 5
	}
	return conf
}

// answersMatch compares answers for the closed question types, ignoring
// case and surrounding whitespace.
func answersMatch(answer, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}
