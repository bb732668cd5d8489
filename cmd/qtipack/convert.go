// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/qtipack/internal/aggregate"
	"github.com/pdiddy/qtipack/internal/qti"
	"github.com/pdiddy/qtipack/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert one document into a QTI quiz package",
	Long: `Convert reads a single HTML, PDF, DOCX, XLSX, or text file, recognizes
its multiple-choice questions, and writes them to a QTI 2.1 zip archive.

The format is chosen from the file extension. A file that cannot be read
is an error; a file without valid questions produces an empty package.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	cfg := pipelineConfig(v)

	generatedAt, err := resolveTimestamp(v.GetString("timestamp"))
	if err != nil {
		return err
	}
	doc, err := aggregate.FileDocument(args[0])
	if err != nil {
		return err
	}

	p := aggregate.New(cfg, aggregate.Options{Logger: slog.Default()})
	res, err := p.Run(cmd.Context(), []types.Document{doc})
	if err != nil {
		return err
	}
	if f := res.Files[0]; f.Failed() {
		return f.Err
	}

	out := archivePath(v.GetString("output"), cfg)
	bundle := qti.NewBundle(res.Questions, qti.Meta{Title: cfg.Title, GeneratedAt: generatedAt})
	if err := qti.Write(bundle, out); err != nil {
		return err
	}
	slog.Info("package written", "path", out, "items", bundle.ItemCount())

	report := res.Report
	report.Archive = out
	report.GeneratedAt = generatedAt
	if v.GetBool("json") {
		return writeJSON(os.Stdout, report)
	}
	renderReport(os.Stdout, report, v.GetBool("no_color"))
	if bundle.ItemCount() == 0 {
		fmt.Fprintln(os.Stderr, "warning: no questions were accepted; the package is empty")
	}
	return nil
}

func init() {
	addPipelineFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}
