package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure class of a run.
var (
	ErrSourceLoad          = errors.New("source load failed")
	ErrTrackInsertion      = errors.New("track insertion failed")
	ErrExport              = errors.New("export failed")
	ErrAuthorizationDenied = errors.New("library authorization denied")
	ErrPersistence         = errors.New("library persistence failed")
)

// StageError attaches the failing operation to a classified error.
type StageError struct {
	Kind error  // One of the sentinel errors above
	Op   string // Operation that failed, e.g. "load first video"
	Err  error  // Underlying error
}

// NewStageError creates a StageError.
func NewStageError(kind error, op string, err error) *StageError {
	return &StageError{Kind: kind, Op: op, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns both the classification and the cause for errors.Is.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
