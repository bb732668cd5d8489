// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrRecognitionGap reports that a document held no question-shaped blocks.
// It is informational: the document contributes zero questions.
var ErrRecognitionGap = errors.New("no question blocks recognized")

// DecodeError reports that an adapter could not parse a document's bytes.
// It is scoped to one file and never aborts a multi-file run.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// AssemblyFailure reports that the manifest or an item could not be
// serialized. It is fatal for the whole run and no archive is emitted.
type AssemblyFailure struct {
	// Stage is the assembly step that failed (e.g. "item", "manifest", "archive").
	Stage string
	// Name is the archive entry being produced, if any.
	Name string
	Err  error
}

func (e *AssemblyFailure) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("assembling %s %s: %v", e.Stage, e.Name, e.Err)
	}
	return fmt.Sprintf("assembling %s: %v", e.Stage, e.Err)
}

func (e *AssemblyFailure) Unwrap() error { return e.Err }
