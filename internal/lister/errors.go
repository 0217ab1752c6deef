package lister

import (
	"errors"
	"fmt"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// ErrTitleTooLong marks a row whose synthesized title exceeds the budget.
var ErrTitleTooLong = errors.New("title too long")

// ErrRunInProgress is returned when a run is requested while one is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// StageError is a failed remote step of one row.
type StageError struct {
	Stage domain.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
