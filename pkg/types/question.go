// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QuestionType is the response cardinality of a question.
type QuestionType string

const (
	// QuestionSingle accepts exactly one correct selection.
	QuestionSingle QuestionType = "single"
	// QuestionMultiple accepts two or more correct selections.
	QuestionMultiple QuestionType = "multiple"
)

// Choice is one answer option of a question.
type Choice struct {
	// ID is assigned by the assembler from the choice's position
	// (e.g. "item_0003_c02"). Empty until the bundle is built.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Label is the letter the source used for this choice ("A", "b").
	Label string `json:"label" yaml:"label"`

	// Text is the choice text with its label and correctness markers removed.
	Text string `json:"text" yaml:"text"`

	// Correct reports whether the source marked this choice as correct.
	Correct bool `json:"correct" yaml:"correct"`
}

// Candidate is a question-shaped span found by the recognizer. It has not
// been validated and carries no identifiers.
type Candidate struct {
	Text    string   `json:"text" yaml:"text"`
	Choices []Choice `json:"choices" yaml:"choices"`

	// SourceFile is the path of the document the span came from.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// Line and EndLine are the 1-based first and last lines of the span in
	// the extracted text.
	Line    int `json:"line" yaml:"line"`
	EndLine int `json:"end_line" yaml:"end_line"`

	// Detector names the detector that produced the span.
	Detector string `json:"detector" yaml:"detector"`
}

// CorrectCount returns the number of choices marked correct.
func (c Candidate) CorrectCount() int {
	n := 0
	for _, ch := range c.Choices {
		if ch.Correct {
			n++
		}
	}
	return n
}

// Question is an accepted, validated quiz question.
type Question struct {
	// ID is assigned by the assembler (e.g. "item_0003"). Empty until the
	// bundle is built.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	Text    string       `json:"text" yaml:"text"`
	Choices []Choice     `json:"choices" yaml:"choices"`
	Type    QuestionType `json:"type" yaml:"type"`
	Points  int          `json:"points" yaml:"points"`

	// SourceFile is the originating document path, relative to the run root
	// in multi-file mode.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// CorrectIDs returns the identifiers of the correct choices in choice order.
func (q Question) CorrectIDs() []string {
	var ids []string
	for _, c := range q.Choices {
		if c.Correct {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ReasonCode names why a candidate was rejected.
type ReasonCode string

// Reason codes are checked in this order; the first failure wins.
const (
	ReasonTextTooShort    ReasonCode = "TEXT_TOO_SHORT"
	ReasonTooFewChoices   ReasonCode = "TOO_FEW_CHOICES"
	ReasonTooManyChoices  ReasonCode = "TOO_MANY_CHOICES"
	ReasonEmptyChoiceText ReasonCode = "EMPTY_CHOICE_TEXT"
	ReasonNoCorrectAnswer ReasonCode = "NO_CORRECT_ANSWER"
)

// ReasonCodes lists every reason code in check order.
var ReasonCodes = []ReasonCode{
	ReasonTextTooShort,
	ReasonTooFewChoices,
	ReasonTooManyChoices,
	ReasonEmptyChoiceText,
	ReasonNoCorrectAnswer,
}

// Rejection is a candidate that failed validation, with exactly one reason.
type Rejection struct {
	Candidate Candidate  `json:"candidate" yaml:"candidate"`
	Reason    ReasonCode `json:"reason" yaml:"reason"`
}

// ParseResult is the outcome of running one document through the
// adapter, recognizer, and validator.
type ParseResult struct {
	Path       string      `json:"path" yaml:"path"`
	Format     Format      `json:"format" yaml:"format"`
	Recognized int         `json:"recognized" yaml:"recognized"`
	Accepted   []Question  `json:"accepted" yaml:"accepted"`
	Rejected   []Rejection `json:"rejected" yaml:"rejected"`

	// Err is set when the document could not be decoded (*DecodeError) or
	// held no question-shaped blocks (ErrRecognitionGap).
	Err error `json:"-" yaml:"-"`
}

// Failed reports whether the document could not be decoded.
func (r ParseResult) Failed() bool {
	return IsDecodeError(r.Err)
}
