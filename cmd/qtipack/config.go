// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/qtipack/pkg/types"
)

// addPipelineFlags registers the flags shared by convert and build. Zero
// defaults defer to the config file, then to built-in defaults.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "archive path (default: <output-dir>/<title>.zip)")
	f.String("output-dir", "", "directory for archives and reports (default: output)")
	f.StringP("title", "t", "", "quiz title written to the manifest (default: Imported Quiz)")
	f.String("timestamp", "", "generation time, RFC 3339 or Unix seconds (default: $SOURCE_DATE_EPOCH or now)")
	f.Int("default-points", 0, "points per question (default: 1)")
	f.Int("min-choices", 0, "minimum choices per question (default: 2)")
	f.Int("max-choices", 0, "maximum choices per question (default: 20)")
	f.Int("min-question-length", 0, "minimum question text length in characters (default: 5)")
	f.Int("blank-line-limit", 0, "blank lines tolerated inside a question block (default: 2)")
	f.Int64("max-file-size", 0, "largest input file in bytes (default: 100 MiB)")
	f.Bool("json", false, "print the run report as JSON")
}

// pipelineConfig builds the normalized pipeline configuration from flags,
// environment, and config file.
func pipelineConfig(v *viper.Viper) types.PipelineConfig {
	return types.PipelineConfig{
		Extensions:        v.GetStringSlice("extensions"),
		MaxFileSize:       v.GetInt64("max_file_size"),
		MinQuestionLength: v.GetInt("min_question_length"),
		MinChoices:        v.GetInt("min_choices"),
		MaxChoices:        v.GetInt("max_choices"),
		BlankLineLimit:    v.GetInt("blank_line_limit"),
		DefaultPoints:     v.GetInt("default_points"),
		Title:             v.GetString("title"),
		OutputDir:         v.GetString("output_dir"),
		HistoryDB:         v.GetString("history_db"),
	}.Normalize()
}

// resolveTimestamp returns the package generation time: the flag value if
// set, else SOURCE_DATE_EPOCH, else the current time truncated to seconds.
func resolveTimestamp(flag string) (time.Time, error) {
	if flag != "" {
		return parseTimestamp(flag)
	}
	if epoch := os.Getenv("SOURCE_DATE_EPOCH"); epoch != "" {
		t, err := parseTimestamp(epoch)
		if err != nil {
			return time.Time{}, fmt.Errorf("SOURCE_DATE_EPOCH: %w", err)
		}
		return t, nil
	}
	return time.Now().UTC().Truncate(time.Second), nil
}

func parseTimestamp(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339 or Unix seconds", s)
	}
	return t.UTC(), nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// archivePath returns the explicit output path or one derived from the
// title inside the output directory.
func archivePath(output string, cfg types.PipelineConfig) string {
	if output != "" {
		return output
	}
	name := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(cfg.Title), "_"), "_")
	if name == "" {
		name = "quiz"
	}
	return filepath.Join(cfg.OutputDir, name+".zip")
}

// historyPath returns the ledger path, defaulting to history.db in the
// output directory.
func historyPath(cfg types.PipelineConfig) string {
	if cfg.HistoryDB != "" {
		return cfg.HistoryDB
	}
	return filepath.Join(cfg.OutputDir, "history.db")
}
