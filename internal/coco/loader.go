package coco

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrCancelled is returned when a progress callback aborts a long
// dataset pass. Partial results are discarded by the caller.
var ErrCancelled = errors.New("operation cancelled")

// ErrorKind is a coarse classification of load failures, suitable for
// choosing a user-facing message or an error code.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindBadJSON      ErrorKind = "bad_json"
	KindBadStructure ErrorKind = "bad_structure"
	KindCancelled    ErrorKind = "cancelled"
	KindGeneric      ErrorKind = "generic"
)

// LoadError describes a dataset load failure. Message carries the
// technical detail for logs; UserMessage is short text safe to show to
// the person driving the viewer.
type LoadError struct {
	Kind        ErrorKind
	Message     string
	UserMessage string
	Err         error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// Loader parses an annotation file into a Dataset. The default is
// LoadDataset; hosts may substitute their own parsing, in which case
// failures are categorized with WrapLoadError.
type Loader func(path string) (*Dataset, error)

// LoadDataset reads, parses and structurally validates a COCO
// annotation file. All failures return a *LoadError.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{
				Kind:        KindNotFound,
				Message:     fmt.Sprintf("annotation file not found: %s", path),
				UserMessage: "The selected file could not be found.",
				Err:         err,
			}
		}
		return nil, &LoadError{
			Kind:        KindGeneric,
			Message:     fmt.Sprintf("reading %s: %v", path, err),
			UserMessage: "The selected file could not be read.",
			Err:         err,
		}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Kind:        KindBadJSON,
			Message:     fmt.Sprintf("parsing %s: %v", path, err),
			UserMessage: "The selected file is not valid JSON.",
			Err:         err,
		}
	}

	if !Validate(doc) {
		return nil, &LoadError{
			Kind:        KindBadStructure,
			Message:     fmt.Sprintf("%s is not a COCO object detection dataset", path),
			UserMessage: "The file does not look like a COCO annotation file.",
		}
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		// Validate only checks key presence, so records with wrongly
		// typed values (e.g. a string id) still land here.
		return nil, &LoadError{
			Kind:        KindBadStructure,
			Message:     fmt.Sprintf("decoding %s: %v", path, err),
			UserMessage: "The annotation file contains malformed records.",
			Err:         err,
		}
	}
	return &ds, nil
}

// WrapLoadError normalizes an arbitrary loader failure into a
// *LoadError. Errors that already are one pass through unchanged.
func WrapLoadError(err error) *LoadError {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	if errors.Is(err, ErrCancelled) {
		return &LoadError{
			Kind:        KindCancelled,
			Message:     err.Error(),
			UserMessage: "Loading was cancelled.",
			Err:         err,
		}
	}
	return &LoadError{
		Kind:        KindGeneric,
		Message:     err.Error(),
		UserMessage: "Loading the annotation file failed.",
		Err:         err,
	}
}
