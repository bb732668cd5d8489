// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/qtipack/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded build runs",
	Long: `History lists the runs recorded by build, newest first. Use --run to
show the per-file results of one run, or --yaml to export the list.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	v := viperForCmd(cmd)
	cfg := pipelineConfig(v)

	store, err := history.Open(historyPath(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	limit := v.GetInt("limit")

	if runID := v.GetInt64("run"); runID > 0 {
		files, err := store.Files(ctx, runID)
		if err != nil {
			return err
		}
		if v.GetBool("json") {
			return writeJSON(os.Stdout, files)
		}
		if len(files) == 0 {
			fmt.Printf("No files recorded for run %d.\n", runID)
			return nil
		}
		fmt.Printf("%-40s  %8s  %8s  %s\n", "File", "Accepted", "Rejected", "Status")
		fmt.Println(strings.Repeat("-", 72))
		for _, f := range files {
			status := "ok"
			switch {
			case f.Failed:
				status = "failed: " + f.Error
			case f.Gap:
				status = "no questions"
			}
			fmt.Printf("%-40s  %8d  %8d  %s\n", truncate(f.Path, 40), f.Accepted, f.Rejected, status)
		}
		return nil
	}

	if v.GetBool("yaml") {
		return store.ExportYAML(ctx, os.Stdout, limit)
	}

	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		return writeJSON(os.Stdout, runs)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-4s  %-20s  %-30s  %5s  %8s  %8s  %6s\n", "ID", "Generated", "Title", "Files", "Accepted", "Rejected", "Failed")
	fmt.Println(strings.Repeat("-", 94))
	for _, r := range runs {
		fmt.Printf("%-4d  %-20s  %-30s  %5d  %8d  %8d  %6d\n",
			r.ID, r.GeneratedAt.Format(time.RFC3339), truncate(r.Title, 30),
			r.TotalFiles, r.Accepted, r.Rejected, r.FailedFiles)
	}
	return nil
}

func init() {
	f := historyCmd.Flags()
	f.String("history-db", "", "run history database (default: <output-dir>/history.db)")
	f.String("output-dir", "", "output directory holding the default history database")
	f.Int("limit", history.DefaultListLimit, "maximum number of runs to list")
	f.Int64("run", 0, "show the per-file results of this run ID")
	f.Bool("json", false, "print as JSON")
	f.Bool("yaml", false, "export runs as YAML")

	rootCmd.AddCommand(historyCmd)
}
