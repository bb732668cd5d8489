// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"bytes"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/qtipack/pkg/types"
)

type pdfAdapter struct {
	logger *slog.Logger
}

func (pdfAdapter) Format() types.Format { return types.FormatPDF }

// Blocks yields one block per page, one line per text row. Pages without
// extractable text yield an empty block.
func (a pdfAdapter) Blocks(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		r, err := openPDF(data)
		if err != nil {
			yield("", err)
			return
		}
		pages, err := pageCount(r)
		if err != nil {
			yield("", err)
			return
		}
		for n := 1; n <= pages; n++ {
			text, err := pageText(r, n)
			if err != nil {
				a.logger.Debug("unreadable pdf page", "page", n, "error", err)
				text = ""
			} else if text == "" {
				a.logger.Debug("pdf page has no text", "page", n)
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// The pdf reader panics on some malformed inputs; recover so a broken file
// becomes a decode failure instead of aborting the run.
func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf read: %w", err)
	}
	return r, nil
}

func pageCount(r *pdf.Reader) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf page tree: %v", p)
		}
	}()
	return r.NumPage(), nil
}

func pageText(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("page %d: %v", n, p)
		}
	}()

	page := r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for _, t := range row.Content {
			sb.WriteString(t.S)
		}
		lines = append(lines, strings.TrimSpace(sb.String()))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
