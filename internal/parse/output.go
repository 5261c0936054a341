// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statute-parser/pkg/types"
)

// previewWidth is how much of a record's content Preview shows.
const previewWidth = 100

// Encode writes records to w as "yaml" or "json".
func Encode(w io.Writer, records []types.Record, format string) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// Preview prints the first n records in a human-readable block each.
func Preview(w io.Writer, records []types.Record, n int) {
	if n > len(records) {
		n = len(records)
	}
	for _, r := range records[:n] {
		fmt.Fprintf(w, "Law Number: %s\n", r.LawNumber)
		fmt.Fprintf(w, "Date: %s\n", r.Date)
		fmt.Fprintf(w, "Section: %s\n", r.SectionTitle)
		fmt.Fprintf(w, "Article: %s\n", r.ArticleTitle)
		fmt.Fprintf(w, "Paragraph: %s\n", r.ParagraphTitle)
		fmt.Fprintf(w, "Content: %s...\n\n", truncateRunes(r.Content, previewWidth))
	}
}

// truncateRunes shortens s to at most n runes without splitting one.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
