// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestNormalize_Defaults(t *testing.T) {
	c := DefaultPipelineConfig()
	if c.MinChoices != DefaultMinChoices || c.MaxChoices != DefaultMaxChoices {
		t.Errorf("choice bounds = %d..%d", c.MinChoices, c.MaxChoices)
	}
	if c.BlankLineLimit != DefaultBlankLineLimit {
		t.Errorf("BlankLineLimit = %d, want %d", c.BlankLineLimit, DefaultBlankLineLimit)
	}
	if c.Title != DefaultTitle || c.OutputDir != DefaultOutputDir {
		t.Errorf("Title/OutputDir = %q/%q", c.Title, c.OutputDir)
	}
	if !slices.Equal(c.Extensions, DefaultExtensions) {
		t.Errorf("Extensions = %v", c.Extensions)
	}
}

func TestNormalize_Extensions(t *testing.T) {
	c := PipelineConfig{Extensions: []string{"TXT", " .Html ", ""}}.Normalize()
	if want := []string{".txt", ".html"}; !slices.Equal(c.Extensions, want) {
		t.Errorf("Extensions = %v, want %v", c.Extensions, want)
	}
	if !c.Supports("dir/exam.TXT") {
		t.Error("expected .TXT to be supported")
	}
	if c.Supports("exam.pdf") {
		t.Error("expected .pdf to be filtered out")
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	c := PipelineConfig{MinChoices: 3, MaxChoices: 4, Title: "Midterm"}.Normalize()
	if c.MinChoices != 3 || c.MaxChoices != 4 || c.Title != "Midterm" {
		t.Errorf("explicit values overwritten: %+v", c)
	}
}

func TestErrors(t *testing.T) {
	base := errors.New("boom")

	err := fmt.Errorf("wrapped: %w", &DecodeError{Path: "a.pdf", Err: base})
	if !IsDecodeError(err) {
		t.Error("IsDecodeError = false for wrapped DecodeError")
	}
	if !errors.Is(err, base) {
		t.Error("DecodeError does not unwrap to its cause")
	}
	if IsDecodeError(base) {
		t.Error("IsDecodeError = true for a plain error")
	}

	af := &AssemblyFailure{Stage: "item", Name: "items/item_0001.xml", Err: base}
	if got, want := af.Error(), "assembling item items/item_0001.xml: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	af = &AssemblyFailure{Stage: "archive", Err: base}
	if got, want := af.Error(), "assembling archive: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
