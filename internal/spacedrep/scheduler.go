package spacedrep

import (
	"math"
	"sort"
	"time"

	"github.com/gradusapp/gradus/internal/learner"
)

// InitReviewData creates fresh SM-2 state for a concept that has just
// become review-worthy.
func InitReviewData(now time.Time) *learner.ReviewData {
	return &learner.ReviewData{
		Interval:     firstInterval,
		Repetitions:  0,
		EaseFactor:   InitialEaseFactor,
		LastReviewed: now,
		NextReview:   now.AddDate(0, 0, firstInterval),
	}
}

// UpdateSchedule applies one assessment outcome to a concept's review
// state: quality rating, SM-2 step, timestamps, and a review-history
// entry. Mutates rd in place.
func UpdateSchedule(rd *learner.ReviewData, score float64, confidenceError int, now time.Time) {
	quality := QualityRating(score, confidenceError)
	interval, reps, ef := NextReview(rd.Interval, rd.Repetitions, rd.EaseFactor, quality)

	rd.Interval = interval
	rd.Repetitions = reps
	rd.EaseFactor = ef
	rd.LastReviewed = now
	rd.NextReview = now.AddDate(0, 0, interval)
	rd.History = append(rd.History, learner.ReviewLogEntry{
		Timestamp:  now,
		Score:      score,
		Quality:    quality,
		Interval:   interval,
		EaseFactor: ef,
	})
}

// DueReview describes one concept in the due queue.
type DueReview struct {
	ConceptID    string    `json:"concept_id"`
	NextReview   time.Time `json:"next_review"`
	DaysUntilDue int       `json:"days_until_due"`
	DaysOverdue  int       `json:"days_overdue"`
	Repetitions  int       `json:"repetitions"`
	EaseFactor   float64   `json:"ease_factor"`
	MasteryScore float64   `json:"mastery_score"`
}

// DueReviews scans a learner's concepts and returns those due within
// includeUpcoming days, most overdue first with concept ID as tie-break.
// Concepts that have never been review-scheduled are skipped, not treated
// as due.
func DueReviews(m *learner.Model, includeUpcoming int, now time.Time) []DueReview {
	var due []DueReview
	for id, cp := range m.Concepts {
		if cp.Review == nil {
			continue
		}
		days := daysUntil(cp.Review.NextReview, now)
		if days > includeUpcoming {
			continue
		}
		overdue := 0
		if days < 0 {
			overdue = -days
		}
		due = append(due, DueReview{
			ConceptID:    id,
			NextReview:   cp.Review.NextReview,
			DaysUntilDue: days,
			DaysOverdue:  overdue,
			Repetitions:  cp.Review.Repetitions,
			EaseFactor:   cp.Review.EaseFactor,
			MasteryScore: cp.MasteryScore,
		})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].DaysUntilDue != due[j].DaysUntilDue {
			return due[i].DaysUntilDue < due[j].DaysUntilDue
		}
		return due[i].ConceptID < due[j].ConceptID
	})
	return due
}

// Stats aggregates review-schedule counts for a learner.
type Stats struct {
	TotalConcepts        int     `json:"total_concepts"`
	ReviewedConcepts     int     `json:"reviewed_concepts"`
	TotalReviews         int     `json:"total_reviews"`
	DueToday             int     `json:"due_today"`
	DueThisWeek          int     `json:"due_this_week"`
	AvgReviewsPerConcept float64 `json:"avg_reviews_per_concept"`
}

// ReviewStats computes aggregate review statistics across all concepts.
func ReviewStats(m *learner.Model, now time.Time) Stats {
	s := Stats{TotalConcepts: len(m.Concepts)}

	for _, cp := range m.Concepts {
		if cp.Review == nil {
			continue
		}
		s.ReviewedConcepts++
		s.TotalReviews += len(cp.Review.History)

		days := daysUntil(cp.Review.NextReview, now)
		if days <= 0 {
			s.DueToday++
		}
		if days <= 7 {
			s.DueThisWeek++
		}
	}

	if s.ReviewedConcepts > 0 {
		s.AvgReviewsPerConcept = float64(s.TotalReviews) / float64(s.ReviewedConcepts)
	}
	return s
}

// daysUntil returns whole days from now to t, negative when t is past.
// Matches floor semantics so an overdue review counts every started day.
func daysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}
