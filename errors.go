package twitsent

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotFound is returned by a ModelRepository when no model is
	// stored under the requested version.
	ErrModelNotFound = errors.New("model not found")

	// ErrNoModel means the cascade has no statistical classifier and cannot
	// build one.
	ErrNoModel = errors.New("no statistical model available")

	// ErrInvalidScore means an evaluator broke the score pair sign convention.
	ErrInvalidScore = errors.New("invalid score pair")

	// ErrInvalidConfidence means a confidence map did not hold exactly the
	// three sentiment classes.
	ErrInvalidConfidence = errors.New("invalid confidence")

	// ErrEmptyTrainingSet is returned when training is asked to fit no data.
	ErrEmptyTrainingSet = errors.New("training data is empty")
)

// PreconditionError reports a resource the cascade needs but cannot obtain.
type PreconditionError struct {
	Resource string
	Reason   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: missing %s: %s", e.Resource, e.Reason)
}

// Unwrap lets errors.Is match ErrNoModel.
func (e *PreconditionError) Unwrap() error {
	return ErrNoModel
}
