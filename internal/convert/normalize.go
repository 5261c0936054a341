// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// spaceReplacer folds line endings to LF and the non-breaking spaces that
// word processors put after "§" and "Čl." into plain spaces.
var spaceReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u00a0", " ",
	"\u2007", " ",
	"\u202f", " ",
)

// Normalize rewrites raw extracted text into the form the statute parser
// expects: NFC-composed (so "Č" is one rune, as in the patterns), every
// line left-trimmed, blank lines removed, and each remaining line followed
// by one blank line.
func Normalize(raw string) string {
	text := spaceReplacer.Replace(norm.NFC.String(raw))

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRightFunc(strings.TrimLeftFunc(line, unicode.IsSpace), unicode.IsSpace)
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return b.String()
}
