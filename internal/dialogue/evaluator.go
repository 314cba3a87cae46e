// Package dialogue evaluates open-ended answers. The real evaluation is
// an external concern; the engine only depends on the Evaluator interface
// and ships a length-based heuristic as the default implementation.
package dialogue

// Result is the outcome of evaluating one open-ended answer.
type Result struct {
	Correct  bool
	Score    float64
	Feedback string
}

// Evaluator scores a learner's open-ended answer against the expected one.
type Evaluator interface {
	Evaluate(answer, expected string) Result
}

// LengthHeuristic is a placeholder Evaluator that grades on response
// length alone. It stands in for a real open-ended evaluator and should
// be replaced in production deployments.
type LengthHeuristic struct{}

// Evaluate grades the answer: under 10 characters is treated as no real
// attempt, under 30 as a partial answer, anything longer as a full one.
func (LengthHeuristic) Evaluate(answer, _ string) Result {
	switch {
	case len(answer) < 10:
		return Result{
			Correct:  false,
			Score:    0.3,
			Feedback: "Try to develop your answer further. A sentence or two will do.",
		}
	case len(answer) < 30:
		return Result{
			Correct:  true,
			Score:    0.7,
			Feedback: "Good start. Adding a little more detail would strengthen your answer.",
		}
	default:
		return Result{
			Correct:  true,
			Score:    0.95,
			Feedback: "Thorough answer, well done.",
		}
	}
}
