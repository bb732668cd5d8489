// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recognize

import (
	"regexp"
	"strings"
)

var (
	// "Question 1:", "Q2.", "Question #3)", "q4 -"
	leadNumberedPattern = regexp.MustCompile(`(?i)^(?:question|q)\s*#?\s*\d+\s*[.:)\-]\s*(.*)$`)
	// "12. Which...", "3) Which..."
	bareNumberedPattern = regexp.MustCompile(`^\d{1,3}\s*[.)](?:\s+(.*))?$`)
	// "Question: ...", "Question - ..."
	labeledPattern = regexp.MustCompile(`(?i)^question\s*[:.\-]\s*(.*)$`)
)

// markerDetector opens a block at a line matching one of its patterns. The
// first capture group is the stem text on the marker line.
type markerDetector struct {
	name     string
	patterns []*regexp.Regexp
	limit    int
}

// NumberedDetector matches numbered exam-style markers such as "Q2.",
// "Question 1:" or "3.".
func NumberedDetector(blankLimit int) Detector {
	return markerDetector{
		name:     "numbered",
		patterns: []*regexp.Regexp{leadNumberedPattern, bareNumberedPattern},
		limit:    blankLimit,
	}
}

// LabeledDetector matches an unnumbered "Question:" marker.
func LabeledDetector(blankLimit int) Detector {
	return markerDetector{
		name:     "labeled",
		patterns: []*regexp.Regexp{labeledPattern},
		limit:    blankLimit,
	}
}

func (d markerDetector) Name() string { return d.name }

func (d markerDetector) Detect(lines []string, cursor int) (Span, bool) {
	line := strings.TrimSpace(lines[cursor])
	for _, p := range d.patterns {
		m := p.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return readBlock(lines, cursor, strings.TrimSpace(m[1]), d.limit)
	}
	return Span{}, false
}

// isQuestionStart reports whether line opens a new marked question block.
func isQuestionStart(line string) bool {
	return leadNumberedPattern.MatchString(line) ||
		bareNumberedPattern.MatchString(line) ||
		labeledPattern.MatchString(line)
}

type interrogativeDetector struct {
	limit int
}

// InterrogativeDetector matches an unmarked line ending in "?" whose next
// non-blank line is a labeled choice.
func InterrogativeDetector(blankLimit int) Detector {
	return interrogativeDetector{limit: blankLimit}
}

func (interrogativeDetector) Name() string { return "interrogative" }

func (d interrogativeDetector) Detect(lines []string, cursor int) (Span, bool) {
	line := strings.TrimSpace(lines[cursor])
	if !strings.HasSuffix(line, "?") || isQuestionStart(line) {
		return Span{}, false
	}
	if _, ok := parseChoice(line); ok {
		return Span{}, false
	}

	blank := 0
	for i := cursor + 1; i < len(lines); i++ {
		next := strings.TrimSpace(lines[i])
		if next == "" {
			blank++
			if blank > d.limit {
				return Span{}, false
			}
			continue
		}
		if pageMarker.MatchString(next) {
			continue
		}
		if _, ok := parseChoice(next); !ok {
			return Span{}, false
		}
		break
	}
	return readBlock(lines, cursor, line, d.limit)
}
