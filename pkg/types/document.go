// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"io"
	"os"
)

// Format identifies a supported document shape.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
	FormatXlsx Format = "xlsx"
	FormatText Format = "text"
)

// ByteSource opens a document's raw bytes. Every call returns a fresh
// reader that the caller must close.
type ByteSource interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads a document from the local filesystem.
type FileSource string

// Open opens the file at the source path.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// BytesSource serves an in-memory document.
type BytesSource []byte

// Open returns a reader over the in-memory bytes.
func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Document is the uniform input handed to the pipeline by whatever
// retrieves raw bytes (local walk, object storage, tests).
type Document struct {
	// Path identifies the document in provenance and reports.
	Path   string
	Format Format
	Source ByteSource
}
