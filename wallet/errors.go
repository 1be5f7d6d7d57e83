package wallet

import "github.com/pkg/errors"

// GenerationError reports a failed address derivation. Its message is meant
// for display.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return "address generation failed"
	}
	return e.Cause.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func generationErr(err error, msg string) error {
	return &GenerationError{Cause: errors.Wrap(err, msg)}
}

// StoreError reports a failed wallet store read or write.
type StoreError struct {
	Op  string // fetch, append
	Err error
}

func (e *StoreError) Error() string {
	return "wallet store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
