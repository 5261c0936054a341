// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statute

import (
	"regexp"
	"strings"
)

const (
	// NoArticle titles the single article span of a section without
	// article markers.
	NoArticle = "No Article"

	// NoParagraph titles the single paragraph span of an article without
	// paragraph markers.
	NoParagraph = "No Paragraph"
)

// Span is one segment of a parent text at a single hierarchy level.
type Span struct {
	// Title is the matched marker text, or a fallback title.
	Title string

	// Content is the trimmed text between this boundary and the next one.
	Content string

	// Start and End delimit the span in the parent text: Start is where the
	// boundary match begins and End is where the next one begins (or the
	// length of the parent). Consecutive spans satisfy End == next.Start.
	Start, End int
}

// level describes how one hierarchy level is cut out of its parent.
type level struct {
	boundary *regexp.Regexp

	// titleGroup selects the submatch used as the span title; 0 is the
	// whole match.
	titleGroup int

	// fallback titles the single span produced when nothing matches. An
	// empty fallback means the level yields no spans at all in that case.
	fallback string
}

// segment splits text at every boundary match of lvl, in document order.
// Each span's content runs from the end of its boundary match to the start
// of the next match, or to the end of text for the last one.
func segment(text string, lvl level) []Span {
	matches := lvl.boundary.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if lvl.fallback == "" {
			return nil
		}
		return []Span{{
			Title:   lvl.fallback,
			Content: strings.TrimSpace(text),
			Start:   0,
			End:     len(text),
		}}
	}

	spans := make([]Span, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		g := 2 * lvl.titleGroup
		spans[i] = Span{
			Title:   strings.TrimSpace(text[m[g]:m[g+1]]),
			Content: strings.TrimSpace(text[m[1]:end]),
			Start:   m[0],
			End:     end,
		}
	}
	return spans
}
