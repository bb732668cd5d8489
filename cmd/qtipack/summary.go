// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/qtipack/pkg/types"
)

var (
	colorTitle = lipgloss.Color("33")
	colorOK    = lipgloss.Color("42")
	colorWarn  = lipgloss.Color("214")
	colorFail  = lipgloss.Color("196")
	colorDim   = lipgloss.Color("244")
)

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderReport writes a human-readable run summary.
func renderReport(w io.Writer, r types.RunReport, noColor bool) {
	header := r.Title
	if !noColor {
		header = lipgloss.NewStyle().Bold(true).Foreground(colorTitle).Render(r.Title)
	}
	fmt.Fprintln(w, header)
	if r.Archive != "" {
		fmt.Fprintln(w, stylize("archive: "+r.Archive, noColor, colorDim))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-40s  %-6s  %10s  %8s  %8s\n", "File", "Format", "Recognized", "Accepted", "Rejected")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, f := range r.Files {
		line := fmt.Sprintf("%-40s  %-6s  %10d  %8d  %8d", truncate(f.Path, 40), f.Format, f.Recognized, f.Accepted, f.Rejected)
		switch {
		case f.Failed:
			line = stylize(line+"  failed", noColor, colorFail)
		case f.Gap:
			line = stylize(line+"  no questions", noColor, colorWarn)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	totals := fmt.Sprintf("%d files, %d recognized, %d accepted (%d single, %d multiple), %d rejected",
		r.TotalFiles, r.Recognized, r.Accepted,
		r.Types[types.QuestionSingle], r.Types[types.QuestionMultiple], r.Rejected)
	fmt.Fprintln(w, stylize(totals, noColor, colorOK))

	if r.Rejected > 0 {
		var parts []string
		for _, code := range types.ReasonCodes {
			if n := r.Reasons[code]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", code, n))
			}
		}
		fmt.Fprintln(w, stylize("rejections: "+strings.Join(parts, ", "), noColor, colorWarn))
	}
	if r.FailedFiles > 0 {
		fmt.Fprintln(w, stylize(fmt.Sprintf("%d file(s) could not be read", r.FailedFiles), noColor, colorFail))
	}
	if r.GapFiles > 0 {
		fmt.Fprintln(w, stylize(fmt.Sprintf("%d file(s) held no questions", r.GapFiles), noColor, colorWarn))
	}

	if len(r.Ranking) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top files:")
		for i, f := range r.Ranking {
			if i == 5 {
				break
			}
			fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, f.Path, f.Accepted)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}
