package content

import (
	"context"
	"encoding/json"
	"fmt"
)

// QuestionContext carries the question a learner just answered, so
// remediation can reference it. Options may be empty for non-choice
// question types.
type QuestionContext struct {
	Scenario      string   `json:"scenario,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	ChosenAnswer  string   `json:"chosen_answer,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// GenerationInput is the engine's hand-off to the collaborator: the
// decided stage, the answer outcome, and enough learner context to
// personalize the next piece of content.
type GenerationInput struct {
	LearnerID       string
	Course          string
	Concept         string
	Stage           string
	RemediationType string
	Correct         bool
	Confidence      *int
	QuestionContext *QuestionContext

	// Interests and LearningStyle come from the learner profile.
	Interests     []string
	LearningStyle string

	// RecentQuestions steers generation away from repeats.
	RecentQuestions []string
}

// Generated is the opaque content blob returned to the caller. The
// engine passes it through unmodified.
type Generated struct {
	Content json.RawMessage `json:"content"`
	Model   string          `json:"model"`
}

// Generator is the outbound collaborator contract the engine depends on.
type Generator interface {
	Generate(ctx context.Context, input GenerationInput) (*Generated, error)
}

// Service implements Generator on top of a Provider.
type Service struct {
	provider Provider
	cfg      Config
}

// NewService creates a content generation service.
func NewService(provider Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Generate builds the stage-appropriate prompt and runs it through the
// provider. The response is schema-validated JSON but is otherwise not
// interpreted here.
func (s *Service) Generate(ctx context.Context, input GenerationInput) (*Generated, error) {
	ctx = WithStage(ctx, input.Stage)

	req := Request{
		System: systemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildUserMessage(input)},
		},
		Schema:      ContentSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	return &Generated{
		Content: resp.Content,
		Model:   resp.Model,
	}, nil
}
