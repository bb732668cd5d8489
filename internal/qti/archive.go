// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package qti

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/qtipack/pkg/types"
)

// marshalIndent serializes every document. Tests replace it to force
// assembly failures.
var marshalIndent = xml.MarshalIndent

// zipEpoch is the earliest time a zip entry header can record. Every entry
// carries it, so only the manifest date varies between runs.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// entry is one rendered archive member.
type entry struct {
	name string
	data []byte
}

// renderBundle serializes every document of b in archive order: manifest,
// assessment test, then items. Each document is re-parsed before it is
// returned. Failures are *types.AssemblyFailure.
func renderBundle(b Bundle) ([]entry, error) {
	entries := make([]entry, 0, len(b.Questions)+2)

	data, err := render(newManifest(b))
	if err != nil {
		return nil, &types.AssemblyFailure{Stage: "manifest", Name: ManifestEntry, Err: err}
	}
	entries = append(entries, entry{ManifestEntry, data})

	data, err = render(newAssessment(b))
	if err != nil {
		return nil, &types.AssemblyFailure{Stage: "assessment", Name: AssessmentEntry, Err: err}
	}
	entries = append(entries, entry{AssessmentEntry, data})

	for _, q := range b.Questions {
		name := ItemPath(q.ID)
		data, err := render(newItem(q))
		if err != nil {
			return nil, &types.AssemblyFailure{Stage: "item", Name: name, Err: err}
		}
		entries = append(entries, entry{name, data})
	}
	return entries, nil
}

func render(v any) ([]byte, error) {
	body, err := marshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	if err := wellFormed(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("well-formedness check: %w", err)
	}
	return buf.Bytes(), nil
}

// wellFormed parses data to the end and reports the first syntax error.
func wellFormed(data []byte) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	for {
		_, err := d.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Write assembles b into a zip archive at path. The archive is written to
// a temporary file in the same directory and renamed into place only when
// complete; on any failure no file remains at path and the error is a
// *types.AssemblyFailure.
func Write(b Bundle, path string) error {
	entries, err := renderBundle(b)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.AssemblyFailure{Stage: "archive", Err: fmt.Errorf("creating output dir: %w", err)}
	}
	tmp, err := os.CreateTemp(dir, ".qtipack-*.zip.tmp")
	if err != nil {
		return &types.AssemblyFailure{Stage: "archive", Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := writeZip(tmp, entries); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return &types.AssemblyFailure{Stage: "archive", Err: fmt.Errorf("closing temp file: %w", err)}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &types.AssemblyFailure{Stage: "archive", Err: fmt.Errorf("renaming to %s: %w", path, err)}
	}
	committed = true
	return nil
}

// writeZip writes entries in order with fixed headers so the output
// depends only on the entries.
func writeZip(w io.Writer, entries []entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return &types.AssemblyFailure{Stage: "archive", Name: e.name, Err: err}
		}
		if _, err := fw.Write(e.data); err != nil {
			return &types.AssemblyFailure{Stage: "archive", Name: e.name, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &types.AssemblyFailure{Stage: "archive", Err: fmt.Errorf("finalizing zip: %w", err)}
	}
	return nil
}
