// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recognize segments extracted document text into question
// candidates.
//
// A Recognizer runs a prioritized list of detectors over the text, line by
// line. At each line the detectors are tried most-specific first; the first
// match wins and its span is consumed, so lower-priority detectors never
// see those lines again. Recognition never guesses: a block with choices but
// no correctness marker is still emitted and left for validation to reject.
package recognize

import (
	"strings"

	"github.com/pdiddy/qtipack/pkg/types"
)

// Span is a question block found by a detector. Start and End are 0-based
// inclusive line indexes of the consumed lines.
type Span struct {
	Candidate types.Candidate
	Start     int
	End       int
}

// Detector finds a question block starting exactly at lines[cursor].
// Implementations hold no mutable state.
type Detector interface {
	Name() string
	Detect(lines []string, cursor int) (Span, bool)
}

// Recognizer applies detectors in priority order.
type Recognizer struct {
	detectors []Detector
}

// New returns a Recognizer with the default detector priority:
// numbered exam style, then labeled "Question:" style, then a bare
// interrogative line followed by choices.
func New(cfg types.PipelineConfig) *Recognizer {
	limit := cfg.BlankLineLimit
	if limit <= 0 {
		limit = types.DefaultBlankLineLimit
	}
	return NewWithDetectors(
		NumberedDetector(limit),
		LabeledDetector(limit),
		InterrogativeDetector(limit),
	)
}

// NewWithDetectors returns a Recognizer that tries ds in the given order.
func NewWithDetectors(ds ...Detector) *Recognizer {
	return &Recognizer{detectors: ds}
}

// Recognize returns the candidates found in text, in source order, tagged
// with source as their provenance.
func (r *Recognizer) Recognize(text, source string) []types.Candidate {
	lines := strings.Split(text, "\n")

	var out []types.Candidate
	for i := 0; i < len(lines); {
		span, ok := r.detectAt(lines, i)
		if !ok {
			i++
			continue
		}
		c := span.Candidate
		c.SourceFile = source
		c.Line = span.Start + 1
		c.EndLine = span.End + 1
		out = append(out, c)
		i = span.End + 1
	}
	return out
}

func (r *Recognizer) detectAt(lines []string, i int) (Span, bool) {
	for _, d := range r.detectors {
		if span, ok := d.Detect(lines, i); ok {
			span.Candidate.Detector = d.Name()
			return span, true
		}
	}
	return Span{}, false
}
