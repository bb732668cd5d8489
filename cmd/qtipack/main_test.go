// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtipack/internal/history"
	"github.com/pdiddy/qtipack/internal/qti"
	"github.com/pdiddy/qtipack/pkg/types"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "0", want: time.Unix(0, 0).UTC()},
		{in: "1700000000", want: time.Unix(1700000000, 0).UTC()},
		{in: "2026-03-14T15:09:26+02:00", want: time.Date(2026, 3, 14, 13, 9, 26, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}
}

func TestResolveTimestamp(t *testing.T) {
	t.Setenv("SOURCE_DATE_EPOCH", "1700000000")

	got, err := resolveTimestamp("")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), got.Unix())

	got, err = resolveTimestamp("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Unix(), "flag wins over environment")

	t.Setenv("SOURCE_DATE_EPOCH", "not-a-time")
	_, err = resolveTimestamp("")
	assert.Error(t, err)

	t.Setenv("SOURCE_DATE_EPOCH", "")
	got, err = resolveTimestamp("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Minute)
}

func TestArchivePath(t *testing.T) {
	cfg := types.PipelineConfig{Title: "Week 3: Cloud Basics!", OutputDir: "out"}.Normalize()
	assert.Equal(t, filepath.Join("out", "week_3_cloud_basics.zip"), archivePath("", cfg))
	assert.Equal(t, "custom.zip", archivePath("custom.zip", cfg))

	cfg.Title = "???"
	assert.Equal(t, filepath.Join("out", "quiz.zip"), archivePath("", cfg))
}

func TestPipelineConfig(t *testing.T) {
	v := viper.New()
	v.Set("title", "Midterm")
	v.Set("max_choices", 6)
	v.Set("extensions", []string{"TXT", "html"})

	cfg := pipelineConfig(v)
	assert.Equal(t, "Midterm", cfg.Title)
	assert.Equal(t, 6, cfg.MaxChoices)
	assert.Equal(t, types.DefaultMinChoices, cfg.MinChoices)
	assert.Equal(t, []string{".txt", ".html"}, cfg.Extensions)
	assert.Equal(t, filepath.Join(types.DefaultOutputDir, "history.db"), historyPath(cfg))
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "documents")
	out := filepath.Join(root, "output")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "week1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "week1", "a.txt"),
		[]byte("Question: What is 2+2?\nA) 3\nB) 4 *\nC) 5"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "b.html"),
		[]byte("<p>Q1. Which are even?</p><p>A) 2 *</p><p>B) 3</p><p>C) 4 *</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "broken.docx"), []byte("garbage"), 0o644))

	rootCmd.SetArgs([]string{
		"build", docs,
		"--output-dir", out,
		"--title", "Week 1",
		"--timestamp", "1700000000",
		"--log-level", "error",
		"--json",
	})
	require.NoError(t, rootCmd.Execute())

	archive := filepath.Join(out, "week_1.zip")
	s, err := qti.Inspect(archive)
	require.NoError(t, err)
	assert.True(t, s.Valid())
	assert.Equal(t, 2, s.ItemCount)
	assert.Equal(t, "Week 1", s.Title)

	data, err := os.ReadFile(filepath.Join(out, reportFile))
	require.NoError(t, err)
	var report types.RunReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, 3, report.TotalFiles)
	assert.Equal(t, 1, report.FailedFiles)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, archive, report.Archive)

	store, err := history.Open(filepath.Join(out, "history.db"))
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(t.Context(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Week 1", runs[0].Title)
}
