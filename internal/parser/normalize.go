// SPDX-License-Identifier: MIT

package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes the string and drops combining marks, so
// "Mesorregião" and "Mesorregiao" normalize identically.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeader canonicalizes a spreadsheet header cell: accents stripped,
// lowercased, underscores treated as spaces, whitespace collapsed.
func normalizeHeader(s string) string {
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
