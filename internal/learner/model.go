// Package learner defines the persistent learner model: per-concept
// assessment ledgers, calibration history, spaced-repetition state, and
// course position. The model is a plain document; all scoring and
// scheduling logic lives in the domain packages that operate on it.
package learner

import (
	"time"

	"github.com/google/uuid"

	"github.com/gradusapp/gradus/internal/calibration"
)

// QuestionType identifies the assessment format.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionFillBlank      QuestionType = "fill-blank"
	QuestionDialogue       QuestionType = "dialogue"
)

// QuestionHistorySize bounds the per-learner question history used to
// avoid repeating recently seen questions.
const QuestionHistorySize = 10

// Model is the full per-learner record. One exists per learner; it is
// created at onboarding and mutated on every assessment submission.
type Model struct {
	ID              string                      `json:"id"`
	Profile         Profile                     `json:"profile"`
	CurrentCourse   string                      `json:"current_course"`
	CurrentConcept  string                      `json:"current_concept"`
	PracticeMode    bool                        `json:"practice_mode"`
	Concepts        map[string]*ConceptProgress `json:"concepts"`
	Overall         OverallProgress             `json:"overall_progress"`
	QuestionHistory []QuestionRecord            `json:"question_history"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// Profile holds onboarding information used to personalize content.
type Profile struct {
	Name           string   `json:"name"`
	Interests      []string `json:"interests"`
	LearningStyle  string   `json:"learning_style"`
	PriorKnowledge string   `json:"prior_knowledge"`
}

// OverallProgress summarizes course-level advancement.
type OverallProgress struct {
	ConceptsCompleted int `json:"concepts_completed"`
	TotalAssessments  int `json:"total_assessments"`
}

// ConceptProgress tracks one learner's history on one concept.
type ConceptProgress struct {
	// Assessments is the append-only ledger mastery is computed from.
	Assessments []AssessmentRecord `json:"assessments"`

	// ConfidenceHistory accumulates calibration records for every scored
	// assessment that carried a confidence rating.
	ConfidenceHistory []calibration.Record `json:"confidence_history"`

	// MasteryScore is always recomputed from the assessment window,
	// never set directly.
	MasteryScore float64 `json:"mastery_score"`

	Completed bool `json:"completed"`

	// Review is the spaced-repetition state. Nil until the concept first
	// becomes review-worthy.
	Review *ReviewData `json:"review_data,omitempty"`
}

// AssessmentRecord is one scored answer. Immutable once appended.
type AssessmentRecord struct {
	Timestamp        time.Time    `json:"timestamp"`
	QuestionType     QuestionType `json:"question_type"`
	Correct          bool         `json:"correct"`
	Score            float64      `json:"score"`
	Confidence       *int         `json:"confidence,omitempty"`
	CalibrationError *int         `json:"calibration_error,omitempty"`
}

// ReviewData is the SM-2 state for one concept.
type ReviewData struct {
	Interval     int              `json:"interval"`
	Repetitions  int              `json:"repetitions"`
	EaseFactor   float64          `json:"ease_factor"`
	LastReviewed time.Time        `json:"last_reviewed"`
	NextReview   time.Time        `json:"next_review"`
	History      []ReviewLogEntry `json:"review_history"`
}

// ReviewLogEntry records one completed review for analytics.
type ReviewLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Score      float64   `json:"score"`
	Quality    int       `json:"quality"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
}

// QuestionRecord is a compact trace of a presented question, kept to
// steer generation away from repeats.
type QuestionRecord struct {
	ConceptID string    `json:"concept_id"`
	Question  string    `json:"question"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a learner model at onboarding time.
func New(profile Profile, course, concept string, now time.Time) *Model {
	return &Model{
		ID:             uuid.NewString(),
		Profile:        profile,
		CurrentCourse:  course,
		CurrentConcept: concept,
		Concepts:       make(map[string]*ConceptProgress),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Concept returns the progress record for a concept, creating an empty
// one on first access.
func (m *Model) Concept(conceptID string) *ConceptProgress {
	if m.Concepts == nil {
		m.Concepts = make(map[string]*ConceptProgress)
	}
	cp, ok := m.Concepts[conceptID]
	if !ok {
		cp = &ConceptProgress{}
		m.Concepts[conceptID] = cp
	}
	return cp
}

// RecordQuestion appends to the bounded question history, evicting the
// oldest entry once the window is full.
func (m *Model) RecordQuestion(conceptID, question string, now time.Time) {
	m.QuestionHistory = append(m.QuestionHistory, QuestionRecord{
		ConceptID: conceptID,
		Question:  question,
		Timestamp: now,
	})
	if len(m.QuestionHistory) > QuestionHistorySize {
		m.QuestionHistory = m.QuestionHistory[len(m.QuestionHistory)-QuestionHistorySize:]
	}
}

// RecentQuestions returns the questions in the history window for a
// concept, most recent last.
func (m *Model) RecentQuestions(conceptID string) []string {
	var out []string
	for _, q := range m.QuestionHistory {
		if q.ConceptID == conceptID {
			out = append(out, q.Question)
		}
	}
	return out
}

// ValidQuestionType reports whether qt is a known question type.
func ValidQuestionType(qt QuestionType) bool {
	switch qt {
	case QuestionMultipleChoice, QuestionFillBlank, QuestionDialogue:
		return true
	}
	return false
}
