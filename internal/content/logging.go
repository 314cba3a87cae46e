package content

import (
	"context"
	"fmt"
	"os"
	"time"
)

// GenerationEvent records one provider call for the event ledger.
type GenerationEvent struct {
	Provider     string
	Model        string
	Stage        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRecorder receives generation events. The store implements this;
// a nil recorder disables logging.
type EventRecorder interface {
	AppendGenerationEvent(ctx context.Context, ev GenerationEvent) error
}

type contextKey string

const stageKey contextKey = "content_stage"

// WithStage attaches the pedagogical stage to the context so the logging
// decorator can label the event.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFrom extracts the stage label from the context.
func StageFrom(ctx context.Context) string {
	if v, ok := ctx.Value(stageKey).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider decorates a Provider, recording every call as an event.
type LoggingProvider struct {
	inner    Provider
	recorder EventRecorder
}

// WithLogging wraps a Provider with event recording. A nil recorder
// returns the provider unchanged.
func WithLogging(p Provider, recorder EventRecorder) Provider {
	if recorder == nil {
		return p
	}
	return &LoggingProvider{inner: p, recorder: recorder}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	ev := GenerationEvent{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Stage:     StageFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = resp.Model
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// Recording failures must not fail the generation itself.
	if logErr := l.recorder.AppendGenerationEvent(ctx, ev); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record generation event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
