// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/qtipack/pkg/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want types.Format
	}{
		{"exam.html", types.FormatHTML},
		{"exam.HTM", types.FormatHTML},
		{"dir/exam.pdf", types.FormatPDF},
		{"exam.docx", types.FormatDocx},
		{"exam.xlsx", types.FormatXlsx},
		{"exam.txt", types.FormatText},
	}
	for _, tt := range tests {
		got, err := Detect(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := Detect("exam.xls")
	assert.Error(t, err)
	_, err = Detect("README")
	assert.Error(t, err)
}

func TestFor(t *testing.T) {
	for _, f := range []types.Format{types.FormatHTML, types.FormatPDF, types.FormatDocx, types.FormatXlsx, types.FormatText} {
		a, err := For(f, nil)
		require.NoError(t, err)
		assert.Equal(t, f, a.Format())
	}
	_, err := For("odt", nil)
	assert.Error(t, err)
}

func collect(t *testing.T, a Adapter, data []byte) []string {
	t.Helper()
	var blocks []string
	for b, err := range a.Blocks(data) {
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	return blocks
}

func TestTextBlocks(t *testing.T) {
	data := []byte("\ufeffQuestion: What is 2+2?\r\nA) 3\r\nB) 4 *\xff\n")
	blocks := collect(t, textAdapter{}, data)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Question: What is 2+2?\nA) 3\nB) 4 *\n", blocks[0])
}

func TestHTMLBlocks(t *testing.T) {
	page := `<html><head><title>Quiz</title><style>p{}</style></head><body>
<div class="question"><p>Question 1: Which <b>planet</b> is largest?</p>
<ul><li>A) Mars</li><li>B) Jupiter *</li></ul></div>
<p style="display:none">A) hidden</p>
<script>var x = "A) nope";</script>
<pre>Q2. Pick one
A) x
B) y *</pre>
</body></html>`

	blocks := collect(t, htmlAdapter{}, []byte(page))
	assert.Equal(t, []string{
		"Question 1: Which planet is largest?",
		"A) Mars",
		"B) Jupiter *",
		"Q2. Pick one",
		"A) x",
		"B) y *",
	}, blocks)
}

func TestHTMLBlocks_StopsEarly(t *testing.T) {
	page := `<p>one</p><p>two</p><p>three</p>`
	var got []string
	for b, err := range (htmlAdapter{}).Blocks([]byte(page)) {
		require.NoError(t, err)
		got = append(got, b)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

// buildDocx writes a minimal .docx whose body is the given XML fragment.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		body+`</w:body></w:document>`)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocxBlocks(t *testing.T) {
	body := `<w:p><w:r><w:t>Question: What is </w:t></w:r><w:r><w:t>2+2?</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>A) 3</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>B)</w:t><w:tab/><w:t>4 *</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>C) 5</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>note</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`

	blocks := collect(t, docxAdapter{}, buildDocx(t, body))
	assert.Equal(t, []string{
		"Question: What is 2+2?",
		"A) 3",
		"",
		"B) 4 *",
		"C) 5 | note",
	}, blocks)
}

func TestDocxBlocks_Corrupt(t *testing.T) {
	var gotErr error
	for _, err := range (docxAdapter{}).Blocks([]byte("not a zip")) {
		gotErr = err
	}
	assert.Error(t, gotErr)
}

func TestDocxBlocks_MissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var gotErr error
	for _, err := range (docxAdapter{}).Blocks(buf.Bytes()) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "word/document.xml")
}

func TestXlsxBlocks(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Question 1:"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Which is a prime?"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "A) 4"))
	require.NoError(t, f.SetCellValue(sheet, "A4", "B) 7 *"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	a, err := For(types.FormatXlsx, nil)
	require.NoError(t, err)
	blocks := collect(t, a, buf.Bytes())
	assert.Equal(t, []string{"Question 1: Which is a prime?", "A) 4", "B) 7 *"}, blocks)
}

func TestPDFBlocks_Corrupt(t *testing.T) {
	a, err := For(types.FormatPDF, nil)
	require.NoError(t, err)

	var gotErr error
	for _, err := range a.Blocks([]byte("%PDF-1.4 truncated garbage")) {
		gotErr = err
	}
	assert.Error(t, gotErr)
}

func TestText_DecodeError(t *testing.T) {
	doc := types.Document{Path: "bad.docx", Format: types.FormatDocx, Source: types.BytesSource("garbage")}
	_, err := Text(doc, 1024, nil)
	require.Error(t, err)

	var de *types.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "bad.docx", de.Path)
}

func TestText_TooLarge(t *testing.T) {
	doc := types.Document{Path: "big.txt", Format: types.FormatText, Source: types.BytesSource(bytes.Repeat([]byte("x"), 64))}
	_, err := Text(doc, 32, nil)
	require.Error(t, err)
	assert.True(t, types.IsDecodeError(err))
	assert.Contains(t, err.Error(), "too large")
}

// closeTracker records whether the reader it hands out was closed.
type closeTracker struct {
	data   []byte
	closed bool
}

func (c *closeTracker) Open() (io.ReadCloser, error) {
	return &trackedReader{Reader: bytes.NewReader(c.data), owner: c}, nil
}

type trackedReader struct {
	*bytes.Reader
	owner *closeTracker
}

func (r *trackedReader) Close() error {
	r.owner.closed = true
	return nil
}

func TestText_ReleasesSource(t *testing.T) {
	tests := []struct {
		name    string
		format  types.Format
		data    string
		wantErr bool
	}{
		{name: "success", format: types.FormatText, data: "Question: x?\nA) a\nB) b *"},
		{name: "decode failure", format: types.FormatDocx, data: "garbage", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &closeTracker{data: []byte(tt.data)}
			_, err := Text(types.Document{Path: "f", Format: tt.format, Source: src}, 1<<20, nil)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.True(t, src.closed, "byte source must be closed on every path")
		})
	}
}

func TestText_JoinsBlocks(t *testing.T) {
	page := `<p>Question: What is 2+2?</p><p>A) 3</p><p>B) 4 *</p>`
	doc := types.Document{Path: "q.html", Format: types.FormatHTML, Source: types.BytesSource(page)}
	text, err := Text(doc, 1<<20, nil)
	require.NoError(t, err)
	assert.Equal(t, "Question: What is 2+2?\nA) 3\nB) 4 *", text)
}
