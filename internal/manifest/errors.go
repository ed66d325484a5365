package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection indicates a build or save was asked for with nothing
	// selected.
	ErrEmptySelection = errors.New("no selections")

	// ErrNoRecognizedTypes indicates the selection expanded to files but none
	// of them classified to a metadata type.
	ErrNoRecognizedTypes = errors.New("no recognizable metadata types")
)

// NoRecognizedTypesError carries the files that failed to classify.
type NoRecognizedTypesError struct {
	Files []string
}

func (e *NoRecognizedTypesError) Error() string {
	return fmt.Sprintf("no recognizable metadata types found in %d selected files", len(e.Files))
}

// Unwrap lets errors.Is match ErrNoRecognizedTypes.
func (e *NoRecognizedTypesError) Unwrap() error {
	return ErrNoRecognizedTypes
}
