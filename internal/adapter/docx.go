// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/pdiddy/qtipack/pkg/types"
)

const docxBody = "word/document.xml"

type docxAdapter struct{}

func (docxAdapter) Format() types.Format { return types.FormatDocx }

// Blocks yields one block per body paragraph (empty paragraphs included,
// so blank lines survive) and one "cell | cell" block per table row.
func (docxAdapter) Blocks(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			yield("", fmt.Errorf("open zip: %w", err))
			return
		}
		var body *zip.File
		for _, f := range zr.File {
			if f.Name == docxBody {
				body = f
				break
			}
		}
		if body == nil {
			yield("", fmt.Errorf("%s not found in archive", docxBody))
			return
		}
		rc, err := body.Open()
		if err != nil {
			yield("", fmt.Errorf("open %s: %w", docxBody, err))
			return
		}
		defer rc.Close()

		decodeDocxBody(rc, yield)
	}
}

func decodeDocxBody(r io.Reader, yield func(string, error) bool) {
	dec := xml.NewDecoder(r)
	var (
		para     strings.Builder
		cell     strings.Builder
		cells    []string
		inText   bool
		tblDepth int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield("", fmt.Errorf("parse %s: %w", docxBody, err))
			return
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "tr":
				if tblDepth == 1 {
					cells = cells[:0]
				}
			case "tc":
				if tblDepth == 1 {
					cell.Reset()
				}
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte(' ')
			case "br", "cr":
				para.WriteByte('\n')
			}

		case xml.CharData:
			if inText {
				para.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(para.String())
				if tblDepth > 0 {
					if text != "" {
						if cell.Len() > 0 {
							cell.WriteByte(' ')
						}
						cell.WriteString(text)
					}
					continue
				}
				if !yield(text, nil) {
					return
				}
			case "tc":
				if tblDepth == 1 {
					cells = append(cells, strings.TrimSpace(cell.String()))
				}
			case "tr":
				if tblDepth != 1 {
					continue
				}
				row := strings.Join(cells, " | ")
				if strings.Trim(row, " |") == "" {
					continue
				}
				if !yield(row, nil) {
					return
				}
			case "tbl":
				tblDepth--
			}
		}
	}
}
