// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtipack/internal/aggregate"
	"github.com/pdiddy/qtipack/internal/history"
	"github.com/pdiddy/qtipack/internal/qti"
	"github.com/pdiddy/qtipack/pkg/types"
)

// defaultInputDir is scanned when build is given no directory.
const defaultInputDir = "documents"

// reportFile is the run report written next to the archive.
const reportFile = "report.yaml"

var buildCmd = &cobra.Command{
	Use:   "build [DIR]",
	Short: "Convert every document under a directory into one QTI package",
	Long: `Build walks DIR (default: documents) recursively, converts every
supported file in lexical order, and packages all accepted questions into
a single QTI 2.1 zip archive. Each question records the file it came from.

Files that cannot be read are reported and skipped; they never stop the
run. A run report is written to report.yaml in the output directory and
the run is recorded in the history ledger.

Archive entries carry a fixed 1980-01-01 modification time. The only
varying field is the manifest date, taken from --timestamp, else
SOURCE_DATE_EPOCH, else the current time; pin one of those to make
repeated builds byte-identical.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	cfg := pipelineConfig(v)

	root := defaultInputDir
	if len(args) == 1 {
		root = args[0]
	}
	generatedAt, err := resolveTimestamp(v.GetString("timestamp"))
	if err != nil {
		return err
	}

	docs, err := aggregate.Walk(root, cfg)
	if err != nil {
		return err
	}
	slog.Info("scanning documents", "root", root, "files", len(docs))

	opts := aggregate.Options{Logger: slog.Default()}
	if !v.GetBool("json") {
		opts.Out = os.Stderr
	}
	res, err := aggregate.New(cfg, opts).Run(cmd.Context(), docs)
	if err != nil {
		return err
	}

	out := archivePath(v.GetString("output"), cfg)
	bundle := qti.NewBundle(res.Questions, qti.Meta{Title: cfg.Title, GeneratedAt: generatedAt})
	if err := qti.Write(bundle, out); err != nil {
		return err
	}
	slog.Info("package written", "path", out, "items", bundle.ItemCount())

	report := res.Report
	report.Root = root
	report.Archive = out
	report.GeneratedAt = generatedAt

	if err := writeReport(filepath.Join(filepath.Dir(out), reportFile), report); err != nil {
		slog.Warn("report not written", "error", err)
	}
	if !v.GetBool("no_history") {
		if err := recordHistory(cmd, historyPath(cfg), report); err != nil {
			slog.Warn("run not recorded in history", "error", err)
		}
	}

	if v.GetBool("json") {
		return writeJSON(os.Stdout, report)
	}
	renderReport(os.Stdout, report, v.GetBool("no_color"))
	if report.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d file(s) failed; see %s\n", report.FailedFiles, reportFile)
	}
	return nil
}

// writeReport saves the run report as YAML.
func writeReport(path string, r types.RunReport) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func recordHistory(cmd *cobra.Command, path string, r types.RunReport) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), r)
	if err != nil {
		return err
	}
	slog.Debug("run recorded", "id", id, "db", path)
	return nil
}

func init() {
	addPipelineFlags(buildCmd)
	buildCmd.Flags().StringSlice("extensions", nil, "file extensions to convert (default: .html,.htm,.pdf,.docx,.xlsx,.txt)")
	buildCmd.Flags().String("history-db", "", "run history database (default: <output-dir>/history.db)")
	buildCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(buildCmd)
}
