package spacedrep

import (
	"testing"
	"time"

	"github.com/gradusapp/gradus/internal/learner"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func modelWithReviews(reviews map[string]*learner.ReviewData) *learner.Model {
	m := learner.New(learner.Profile{}, "latin-1", "c1", testNow)
	for id, rd := range reviews {
		m.Concept(id).Review = rd
	}
	return m
}

func reviewDueIn(days int) *learner.ReviewData {
	return &learner.ReviewData{
		Interval:     1,
		EaseFactor:   InitialEaseFactor,
		NextReview:   testNow.AddDate(0, 0, days),
		LastReviewed: testNow.AddDate(0, 0, days-1),
	}
}

func TestInitReviewData(t *testing.T) {
	rd := InitReviewData(testNow)

	if rd.Interval != 1 || rd.Repetitions != 0 {
		t.Errorf("interval/reps = %d/%d, want 1/0", rd.Interval, rd.Repetitions)
	}
	if rd.EaseFactor != InitialEaseFactor {
		t.Errorf("EaseFactor = %v, want %v", rd.EaseFactor, InitialEaseFactor)
	}
	if !rd.NextReview.Equal(testNow.AddDate(0, 0, 1)) {
		t.Errorf("NextReview = %v, want next day", rd.NextReview)
	}
}

func TestUpdateSchedule_StampsAndLogs(t *testing.T) {
	rd := InitReviewData(testNow)
	reviewAt := testNow.AddDate(0, 0, 1)

	UpdateSchedule(rd, 0.95, 0, reviewAt)

	if !rd.LastReviewed.Equal(reviewAt) {
		t.Errorf("LastReviewed = %v, want %v", rd.LastReviewed, reviewAt)
	}
	if !rd.NextReview.Equal(reviewAt.AddDate(0, 0, rd.Interval)) {
		t.Errorf("NextReview = %v, want last + %d days", rd.NextReview, rd.Interval)
	}
	if len(rd.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(rd.History))
	}
	entry := rd.History[0]
	if entry.Quality != 5 || entry.Score != 0.95 {
		t.Errorf("history entry = %+v", entry)
	}
	if entry.Interval != rd.Interval || entry.EaseFactor != rd.EaseFactor {
		t.Error("history entry must snapshot the post-update schedule")
	}
}

func TestUpdateSchedule_FailureResetsSchedule(t *testing.T) {
	rd := &learner.ReviewData{Interval: 30, Repetitions: 4, EaseFactor: 2.0}

	UpdateSchedule(rd, 0.3, 0, testNow)

	if rd.Interval != 1 || rd.Repetitions != 0 {
		t.Errorf("interval/reps = %d/%d, want 1/0 after failure", rd.Interval, rd.Repetitions)
	}
}

func TestDueReviews_SkipsUnscheduledConcepts(t *testing.T) {
	m := modelWithReviews(map[string]*learner.ReviewData{"scheduled": reviewDueIn(0)})
	m.Concept("unscheduled") // progress exists, no review data

	due := DueReviews(m, 0, testNow)
	if len(due) != 1 || due[0].ConceptID != "scheduled" {
		t.Errorf("due = %v, want only the scheduled concept", due)
	}
}

func TestDueReviews_OrderingAndOverdue(t *testing.T) {
	m := modelWithReviews(map[string]*learner.ReviewData{
		"b-overdue": reviewDueIn(-3),
		"a-overdue": reviewDueIn(-3),
		"due-today": reviewDueIn(0),
		"future":    reviewDueIn(5),
	})

	due := DueReviews(m, 0, testNow)

	if len(due) != 3 {
		t.Fatalf("due count = %d, want 3", len(due))
	}
	// Most overdue first, concept ID tie-break.
	if due[0].ConceptID != "a-overdue" || due[1].ConceptID != "b-overdue" {
		t.Errorf("order = %s, %s; want a-overdue, b-overdue", due[0].ConceptID, due[1].ConceptID)
	}
	if due[0].DaysOverdue != 3 {
		t.Errorf("DaysOverdue = %d, want 3", due[0].DaysOverdue)
	}
	if due[2].ConceptID != "due-today" || due[2].DaysOverdue != 0 {
		t.Errorf("due today entry = %+v", due[2])
	}
}

func TestDueReviews_IncludeUpcoming(t *testing.T) {
	m := modelWithReviews(map[string]*learner.ReviewData{
		"tomorrow":  reviewDueIn(1),
		"next-week": reviewDueIn(7),
	})

	if got := len(DueReviews(m, 0, testNow)); got != 0 {
		t.Errorf("window 0: %d due, want 0", got)
	}
	if got := len(DueReviews(m, 1, testNow)); got != 1 {
		t.Errorf("window 1: %d due, want 1", got)
	}
	if got := len(DueReviews(m, 7, testNow)); got != 2 {
		t.Errorf("window 7: %d due, want 2", got)
	}
}

func TestReviewStats(t *testing.T) {
	overdue := reviewDueIn(-1)
	overdue.History = []learner.ReviewLogEntry{{}, {}, {}}
	thisWeek := reviewDueIn(5)
	thisWeek.History = []learner.ReviewLogEntry{{}}
	m := modelWithReviews(map[string]*learner.ReviewData{
		"overdue":   overdue,
		"this-week": thisWeek,
		"far-out":   reviewDueIn(30),
	})
	m.Concept("never-reviewed")

	s := ReviewStats(m, testNow)

	if s.TotalConcepts != 4 {
		t.Errorf("TotalConcepts = %d, want 4", s.TotalConcepts)
	}
	if s.ReviewedConcepts != 3 {
		t.Errorf("ReviewedConcepts = %d, want 3", s.ReviewedConcepts)
	}
	if s.TotalReviews != 4 {
		t.Errorf("TotalReviews = %d, want 4", s.TotalReviews)
	}
	if s.DueToday != 1 {
		t.Errorf("DueToday = %d, want 1", s.DueToday)
	}
	if s.DueThisWeek != 2 {
		t.Errorf("DueThisWeek = %d, want 2", s.DueThisWeek)
	}
	if s.AvgReviewsPerConcept != 4.0/3.0 {
		t.Errorf("AvgReviewsPerConcept = %v, want %v", s.AvgReviewsPerConcept, 4.0/3.0)
	}
}
