package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gradusapp/gradus/internal/content"
)

// EventRepo appends and aggregates generation events. It implements
// content.EventRecorder.
type EventRepo struct {
	db *sql.DB
}

// AppendGenerationEvent records one provider call in the ledger.
func (r *EventRepo) AppendGenerationEvent(ctx context.Context, ev content.GenerationEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_event
			(provider, model, stage, input_tokens, output_tokens, latency_ms, success, error_message, created_ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Stage,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		ev.Success, ev.ErrorMessage, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("append generation event: %w", err)
	}
	return nil
}

// GenerationStats summarizes the generation-event ledger.
type GenerationStats struct {
	TotalCalls   int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// GenerationStats aggregates the ledger across all providers.
func (r *EventRepo) GenerationStats(ctx context.Context) (GenerationStats, error) {
	var s GenerationStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(AVG(latency_ms), 0)
		FROM generation_event`,
	).Scan(&s.TotalCalls, &s.Failures, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs)
	if err != nil {
		return GenerationStats{}, fmt.Errorf("query generation stats: %w", err)
	}
	return s, nil
}
