// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileReport holds per-file counts from one pipeline pass.
type FileReport struct {
	Path       string `json:"path" yaml:"path"`
	Format     Format `json:"format,omitempty" yaml:"format,omitempty"`
	Recognized int    `json:"recognized" yaml:"recognized"`
	Accepted   int    `json:"accepted" yaml:"accepted"`
	Rejected   int    `json:"rejected" yaml:"rejected"`

	// Failed is set when the file could not be decoded; Error holds the cause.
	Failed bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`

	// Gap is set when the file decoded but held no question-shaped blocks.
	Gap bool `json:"gap,omitempty" yaml:"gap,omitempty"`
}

// RankedFile is one entry of the files-by-accepted-questions ranking.
type RankedFile struct {
	Path     string `json:"path" yaml:"path"`
	Accepted int    `json:"accepted" yaml:"accepted"`
}

// RunReport is the structured statistics of a run. It is data only;
// rendering belongs to the caller.
type RunReport struct {
	Title       string    `json:"title" yaml:"title"`
	Root        string    `json:"root,omitempty" yaml:"root,omitempty"`
	Archive     string    `json:"archive,omitempty" yaml:"archive,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Files []FileReport `json:"files" yaml:"files"`

	TotalFiles  int `json:"total_files" yaml:"total_files"`
	FailedFiles int `json:"failed_files" yaml:"failed_files"`
	GapFiles    int `json:"gap_files" yaml:"gap_files"`
	Recognized  int `json:"recognized" yaml:"recognized"`
	Accepted    int `json:"accepted" yaml:"accepted"`
	Rejected    int `json:"rejected" yaml:"rejected"`

	// Types counts accepted questions by response cardinality.
	Types map[QuestionType]int `json:"types" yaml:"types"`

	// Reasons counts rejections by reason code.
	Reasons map[ReasonCode]int `json:"reasons" yaml:"reasons"`

	// Ranking lists files with at least one accepted question, most first.
	Ranking []RankedFile `json:"ranking" yaml:"ranking"`
}

// HasFailures reports whether any file failed to decode.
func (r RunReport) HasFailures() bool {
	return r.FailedFiles > 0
}
