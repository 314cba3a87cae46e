package sequencer

import "fmt"

// NotFoundError indicates a learner or concept record is absent. It is
// surfaced to the caller and never retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError indicates malformed submission input. It is raised
// before any state mutation, so the ledger is never appended with
// invalid data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
