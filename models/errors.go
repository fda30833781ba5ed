package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed AnalysisRequest
	ErrValidation = errors.New("invalid analysis request")
	// ErrInvalidInput is returned by pipeline stages given input they cannot score
	ErrInvalidInput = errors.New("invalid analysis input")
)

// ValidationError reports which request field was rejected and why
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InternalComputationError wraps a failure inside the analysis pipeline.
// It is recovered by the orchestrator and never returned to callers.
type InternalComputationError struct {
	Stage string
	Err   error
}

func (e *InternalComputationError) Error() string {
	return fmt.Sprintf("analysis stage %q failed: %v", e.Stage, e.Err)
}

func (e *InternalComputationError) Unwrap() error {
	return e.Err
}
