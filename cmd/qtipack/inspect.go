// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/qtipack/internal/qti"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect ARCHIVE",
	Short: "Show the contents of a QTI package",
	Long: `Inspect lists the entries of a QTI package archive with their sizes,
prints the manifest title, identifier, timestamp, and item count, and
checks that every XML document in the archive is well-formed.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)

	s, err := qti.Inspect(args[0])
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		return writeJSON(os.Stdout, s)
	}
	printSummary(os.Stdout, s, v.GetBool("no_color"))
	if !s.Valid() {
		return fmt.Errorf("%s is not a valid package", args[0])
	}
	return nil
}

func printSummary(w io.Writer, s qti.Summary, noColor bool) {
	fmt.Fprintf(w, "%s (%s)\n", s.Path, humanize.Bytes(uint64(s.Size)))
	fmt.Fprintf(w, "title:      %s\n", s.Title)
	fmt.Fprintf(w, "identifier: %s\n", s.Identifier)
	fmt.Fprintf(w, "generated:  %s\n", s.GeneratedAt)
	fmt.Fprintf(w, "items:      %d\n\n", s.ItemCount)

	fmt.Fprintf(w, "%-30s  %10s  %10s  %s\n", "Entry", "Size", "Compressed", "XML")
	fmt.Fprintln(w, strings.Repeat("-", 66))
	for _, e := range s.Entries {
		status := stylize("ok", noColor, colorOK)
		if !e.WellFormed {
			status = stylize("malformed", noColor, colorFail)
		}
		fmt.Fprintf(w, "%-30s  %10s  %10s  %s\n", e.Name, humanize.Bytes(e.Size), humanize.Bytes(e.Compressed), status)
	}
}

func init() {
	inspectCmd.Flags().Bool("json", false, "print the summary as JSON")
	rootCmd.AddCommand(inspectCmd)
}
