// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adapter turns raw document bytes into ordered text blocks.
//
// Supported formats form a closed set selected by declared format:
//   - html: block-level elements via golang.org/x/net/html
//   - pdf:  one block per page via github.com/ledongthuc/pdf
//   - docx: one block per paragraph or table row (word/document.xml)
//   - xlsx: one block per non-empty row via github.com/xuri/excelize/v2
//   - text: the whole file
//
// Blocks are produced lazily. Benign anomalies, such as an image-only PDF
// page, yield an empty block rather than an error.
package adapter

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pdiddy/qtipack/pkg/types"
)

// Adapter extracts text blocks from one document format.
type Adapter interface {
	// Format returns the format this adapter decodes.
	Format() types.Format

	// Blocks yields text blocks in source order. A non-nil error ends the
	// sequence and means the document could not be decoded.
	Blocks(data []byte) iter.Seq2[string, error]
}

// Detect returns the document format for path based on its extension.
func Detect(path string) (types.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return types.FormatHTML, nil
	case ".pdf":
		return types.FormatPDF, nil
	case ".docx":
		return types.FormatDocx, nil
	case ".xlsx":
		return types.FormatXlsx, nil
	case ".txt", ".text":
		return types.FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", filepath.Ext(path))
	}
}

// For returns the adapter for a declared format. A nil logger uses
// slog.Default().
func For(format types.Format, logger *slog.Logger) (Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch format {
	case types.FormatHTML:
		return htmlAdapter{}, nil
	case types.FormatPDF:
		return pdfAdapter{logger: logger}, nil
	case types.FormatDocx:
		return docxAdapter{}, nil
	case types.FormatXlsx:
		return xlsxAdapter{logger: logger}, nil
	case types.FormatText:
		return textAdapter{}, nil
	default:
		return nil, fmt.Errorf("no adapter for format: %q", format)
	}
}

// Load reads a document's bytes, refusing anything larger than maxSize.
// The byte source is closed before Load returns.
func Load(doc types.Document, maxSize int64) ([]byte, error) {
	rc, err := doc.Source.Open()
	if err != nil {
		return nil, fmt.Errorf("opening: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("file too large (max %d bytes)", maxSize)
	}
	return data, nil
}

// Text loads doc, runs the adapter for its declared format, and joins the
// blocks with newlines. Every failure is returned as a *types.DecodeError.
func Text(doc types.Document, maxSize int64, logger *slog.Logger) (string, error) {
	a, err := For(doc.Format, logger)
	if err != nil {
		return "", &types.DecodeError{Path: doc.Path, Err: err}
	}
	data, err := Load(doc, maxSize)
	if err != nil {
		return "", &types.DecodeError{Path: doc.Path, Err: err}
	}

	var sb strings.Builder
	n := 0
	for block, err := range a.Blocks(data) {
		if err != nil {
			return "", &types.DecodeError{Path: doc.Path, Err: err}
		}
		if n > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(block)
		n++
	}
	return sb.String(), nil
}
