package workflow

import (
	"errors"
	"fmt"
)

// Local precondition failures. Begin* methods return these without touching the network.
var (
	ErrBusy              = errors.New("another operation is in progress")
	ErrNoDataset         = errors.New("no dataset to commit; fetch first")
	ErrEmptyDataset      = errors.New("character list is empty")
	ErrNoQuotes          = errors.New("no quotes found in character data")
	ErrTooManyCharacters = errors.New("too many characters")
	ErrNoConfirmation    = errors.New("no confirmation is pending")
)

// ErrMalformedResponse marks a fetch response without a characters array.
var ErrMalformedResponse = errors.New("invalid response format: missing characters array")

// RemoteError is a 2xx response whose body reported status "error".
type RemoteError struct {
	Op      Op
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote reported an error", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// PanicError wraps a panic recovered while an operation was running.
type PanicError struct {
	Op    Op
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: unexpected failure: %v", e.Op, e.Value)
}
