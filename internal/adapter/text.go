// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"iter"
	"strings"

	"github.com/pdiddy/qtipack/pkg/types"
)

type textAdapter struct{}

func (textAdapter) Format() types.Format { return types.FormatText }

// Blocks yields the whole file as one block with line endings normalized
// and invalid UTF-8 dropped.
func (textAdapter) Blocks(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield(normalizeText(string(data)), nil)
	}
}

func normalizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
