// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"bytes"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/qtipack/pkg/types"
)

type xlsxAdapter struct {
	logger *slog.Logger
}

func (xlsxAdapter) Format() types.Format { return types.FormatXlsx }

// Blocks yields one block per non-empty row, sheets in workbook order.
// Non-empty cells of a row are joined with a single space.
func (a xlsxAdapter) Blocks(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			yield("", fmt.Errorf("open workbook: %w", err))
			return
		}
		defer f.Close()

		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			if err != nil {
				yield("", fmt.Errorf("sheet %q: %w", sheet, err))
				return
			}
			a.logger.Debug("reading sheet", "sheet", sheet, "rows", len(rows))
			for _, row := range rows {
				cells := make([]string, 0, len(row))
				for _, c := range row {
					if c = strings.TrimSpace(c); c != "" {
						cells = append(cells, c)
					}
				}
				if len(cells) == 0 {
					continue
				}
				if !yield(strings.Join(cells, " "), nil) {
					return
				}
			}
		}
	}
}
