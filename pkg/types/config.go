package types

import (
	"path/filepath"
	"strings"
)

// Defaults for PipelineConfig zero values.
const (
	DefaultTitle             = "Imported Quiz"
	DefaultOutputDir         = "output"
	DefaultMaxFileSize       = 100 * 1024 * 1024
	DefaultMinQuestionLength = 5
	DefaultMinChoices        = 2
	DefaultMaxChoices        = 20
	DefaultBlankLineLimit    = 2
	DefaultPoints            = 1
)

// DefaultExtensions is the supported-extension set. Legacy .xls workbooks
// are not supported.
var DefaultExtensions = []string{".html", ".htm", ".pdf", ".docx", ".xlsx", ".txt"}

// PipelineConfig is the immutable configuration threaded through every
// pipeline stage. Build it once with DefaultPipelineConfig or Normalize.
type PipelineConfig struct {
	// Extensions is the supported-extension set used when walking a
	// directory (lowercase, with leading dot).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// MaxFileSize is the largest document, in bytes, an adapter will read.
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// MinQuestionLength is the minimum stem length in runes (default 5).
	MinQuestionLength int `json:"min_question_length" yaml:"min_question_length"`

	// MinChoices and MaxChoices bound the choice count (default 2 and 20).
	MinChoices int `json:"min_choices" yaml:"min_choices"`
	MaxChoices int `json:"max_choices" yaml:"max_choices"`

	// BlankLineLimit is the longest run of blank lines tolerated inside a
	// question block; a longer run ends the block (default 2).
	BlankLineLimit int `json:"blank_line_limit" yaml:"blank_line_limit"`

	// DefaultPoints is the point value given to every accepted question.
	DefaultPoints int `json:"default_points" yaml:"default_points"`

	// Title is the quiz title written to the manifest.
	Title string `json:"title" yaml:"title"`

	// OutputDir is where archives and reports are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// HistoryDB is the SQLite run ledger path. Empty disables history.
	HistoryDB string `json:"history_db,omitempty" yaml:"history_db,omitempty"`
}

// DefaultPipelineConfig returns a config with every field at its default.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{}.Normalize()
}

// Normalize returns a copy of c with zero values replaced by defaults and
// extensions lowercased.
func (c PipelineConfig) Normalize() PipelineConfig {
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	c.Extensions = exts

	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.MinQuestionLength <= 0 {
		c.MinQuestionLength = DefaultMinQuestionLength
	}
	if c.MinChoices <= 0 {
		c.MinChoices = DefaultMinChoices
	}
	if c.MaxChoices <= 0 {
		c.MaxChoices = DefaultMaxChoices
	}
	if c.BlankLineLimit <= 0 {
		c.BlankLineLimit = DefaultBlankLineLimit
	}
	if c.DefaultPoints <= 0 {
		c.DefaultPoints = DefaultPoints
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	return c
}

// Supports reports whether path has an extension in the supported set.
func (c PipelineConfig) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
