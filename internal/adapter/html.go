// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"iter"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/qtipack/pkg/types"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
}

// blockElements end the current text block when entered or left.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Br: true, atom.Hr: true,
	atom.Form: true, atom.Fieldset: true, atom.Label: true,
}

type htmlAdapter struct{}

func (htmlAdapter) Format() types.Format { return types.FormatHTML }

// Blocks yields one block per block-level element. Inline text inside an
// element is joined with single spaces; <pre> keeps its line breaks.
func (htmlAdapter) Blocks(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		doc, err := html.Parse(strings.NewReader(normalizeText(string(data))))
		if err != nil {
			yield("", err)
			return
		}
		w := &htmlWalker{yield: yield}
		w.walk(doc, false)
		w.flush()
	}
}

type htmlWalker struct {
	yield   func(string, error) bool
	line    strings.Builder
	space   bool // whitespace seen since the last word
	stopped bool
}

func (w *htmlWalker) flush() {
	w.space = false
	if w.stopped || w.line.Len() == 0 {
		return
	}
	text := w.line.String()
	w.line.Reset()
	if !w.yield(text, nil) {
		w.stopped = true
	}
}

// appendText adds inline text, collapsing whitespace runs. Adjacent inline
// nodes without whitespace between them ("<b>A</b>) x") stay joined.
func (w *htmlWalker) appendText(s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}
	if w.line.Len() > 0 && (w.space || strings.TrimLeftFunc(s, unicode.IsSpace) != s) {
		w.line.WriteByte(' ')
	}
	w.line.WriteString(strings.Join(fields, " "))
	w.space = strings.TrimRightFunc(s, unicode.IsSpace) != s
}

func (w *htmlWalker) walk(n *html.Node, inPre bool) {
	if w.stopped {
		return
	}
	switch n.Type {
	case html.TextNode:
		if !inPre {
			w.appendText(n.Data)
			return
		}
		parts := strings.Split(n.Data, "\n")
		for i, part := range parts {
			w.appendText(part)
			if i < len(parts)-1 {
				w.flush()
			}
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		}
		if hasHiddenStyle(n) {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		w.flush()
	}
	pre := inPre || n.DataAtom == atom.Pre
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, pre)
	}
	if block {
		w.flush()
	}
}

func hasHiddenStyle(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "hidden" {
			return true
		}
		if a.Key != "style" {
			continue
		}
		for _, pat := range hiddenStylePatterns {
			if pat.MatchString(a.Val) {
				return true
			}
		}
	}
	return false
}
