// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/qtipack/internal/adapter"
	"github.com/pdiddy/qtipack/pkg/types"
)

// Walk enumerates the supported documents under root, recursively, in
// lexical order within each directory. Hidden files and directories are
// skipped, as are subdirectories that cannot be read. Document paths are relative to root and slash-separated.
func Walk(root string, cfg types.PipelineConfig) ([]types.Document, error) {
	cfg = cfg.Normalize()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", root)
	}

	var docs []types.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root || d == nil {
				return err
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", err)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !cfg.Supports(path) {
			return nil
		}
		format, err := adapter.Detect(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		docs = append(docs, types.Document{
			Path:   filepath.ToSlash(rel),
			Format: format,
			Source: types.FileSource(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return docs, nil
}

// FileDocument builds the document for a single file, detecting its format
// from the extension. The document path is the file's base name.
func FileDocument(path string) (types.Document, error) {
	format, err := adapter.Detect(path)
	if err != nil {
		return types.Document{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading input file: %w", err)
	}
	if info.IsDir() {
		return types.Document{}, fmt.Errorf("input %s is a directory", path)
	}
	return types.Document{
		Path:   filepath.Base(path),
		Format: format,
		Source: types.FileSource(path),
	}, nil
}
