// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/qtipack/pkg/types"
)

var (
	// "A) text", "b. text", "C: text", "(D) text"
	choicePattern = regexp.MustCompile(`^\(?([A-Za-z])[).:](?:\s+(.*))?$`)

	// "Answer: B", "Correct answers: A, C", "Answer - b and d", "Answer: Paris"
	answerKeyPattern = regexp.MustCompile(`(?i)^(?:correct\s+)?answers?\s*[:\-]\s*(.*)$`)
	answerLetter     = regexp.MustCompile(`\b([A-Za-z])\b`)

	// Symbol markers count only at either end of the choice text, so
	// "2*3" and "2 * 3" are not marked.
	symbolMarker = regexp.MustCompile(`^[*✓✔]+|[*✓✔]+$`)
	wordMarker   = regexp.MustCompile(`(?i)[(\[]\s*correct\s*[)\]]|\bcorrect\b`)

	// Running page headers and footers left by PDF extraction.
	pageMarker = regexp.MustCompile(`(?i)^page\s+\d+(?:\s*(?:of|/)\s*\d+)?$`)
)

// readBlock consumes the lines after a question marker at lines[start].
// stem is the question text found on the marker line itself. It reports
// false when no choice lines follow.
//
// The block ends at the next question marker, the end of the text, an
// answer-key line, a blank-line run longer than limit, or prose that
// follows a blank line once choices have begun.
func readBlock(lines []string, start int, stem string, limit int) (Span, bool) {
	var stemParts []string
	if stem != "" {
		stemParts = append(stemParts, stem)
	}
	var (
		choices []types.Choice
		key     string
		keyed   bool
	)
	last := start
	blank := 0

	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			blank++
			if blank > limit {
				break
			}
			continue
		}
		if pageMarker.MatchString(line) {
			continue
		}
		if isQuestionStart(line) {
			break
		}
		if len(choices) > 0 {
			if k, ok := parseAnswerKey(line); ok {
				key, keyed = k, true
				last = i
				break
			}
		}
		if c, ok := parseChoice(line); ok {
			choices = append(choices, c)
			last = i
			blank = 0
			continue
		}
		if len(choices) == 0 {
			stemParts = append(stemParts, line)
			last = i
			blank = 0
			continue
		}
		// Prose after choices: a wrapped choice only when directly adjacent
		// and not itself a new question.
		if blank > 0 || strings.HasSuffix(line, "?") {
			break
		}
		prev := &choices[len(choices)-1]
		prev.Text = strings.TrimSpace(prev.Text + " " + line)
		last = i
	}

	if len(choices) == 0 {
		return Span{}, false
	}
	for i := range choices {
		text, marked := stripMarkers(choices[i].Text)
		choices[i].Text = text
		choices[i].Correct = choices[i].Correct || marked
	}
	if keyed {
		applyAnswerKey(choices, key)
	}

	return Span{
		Candidate: types.Candidate{
			Text:    strings.Join(stemParts, " "),
			Choices: choices,
		},
		Start: start,
		End:   last,
	}, true
}

// parseChoice splits a labeled choice line into label and raw text. The
// text may be empty ("B)" alone) and still keeps its correctness markers.
func parseChoice(line string) (types.Choice, bool) {
	m := choicePattern.FindStringSubmatch(line)
	if m == nil {
		return types.Choice{}, false
	}
	return types.Choice{
		Label: strings.ToUpper(m[1]),
		Text:  strings.TrimSpace(m[2]),
	}, true
}

// stripMarkers removes correctness markers from a choice and reports
// whether any were present. Any marker counts; none takes precedence.
func stripMarkers(text string) (string, bool) {
	marked := false
	if wordMarker.MatchString(text) {
		marked = true
		text = wordMarker.ReplaceAllString(text, " ")
	}
	text = strings.TrimSpace(text)
	if symbolMarker.MatchString(text) {
		marked = true
		text = symbolMarker.ReplaceAllString(text, " ")
	}
	text = strings.Join(strings.Fields(text), " ")
	if marked {
		text = strings.Trim(text, " -–:,")
	}
	return text, marked
}

// parseAnswerKey returns the value of an answer-key line.
func parseAnswerKey(line string) (string, bool) {
	m := answerKeyPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// applyAnswerKey marks the choices named by an answer-key value. A value
// equal to a choice's text (ignoring case) names that choice; otherwise
// every single letter in it is taken as a label. Unmatched values are
// dropped.
func applyAnswerKey(choices []types.Choice, key string) {
	for i := range choices {
		if key != "" && strings.EqualFold(choices[i].Text, key) {
			choices[i].Correct = true
			return
		}
	}
	for _, m := range answerLetter.FindAllStringSubmatch(key, -1) {
		label := strings.ToUpper(m[1])
		for i := range choices {
			if choices[i].Label == label {
				choices[i].Correct = true
			}
		}
	}
}
