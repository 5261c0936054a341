// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// documentPart is the main story of a WordprocessingML package.
const documentPart = "word/document.xml"

// DocxConverter reads the paragraphs of a .docx file directly from its
// WordprocessingML, without external tools.
type DocxConverter struct{}

// Convert returns the text of every w:p in document order, one per line.
// Tabs and breaks inside a paragraph become "\t" and "\n".
func (DocxConverter) Convert(_ context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == documentPart {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("opening %s in %s: %w", documentPart, path, err)
			}
			defer rc.Close()
			return docxText(rc)
		}
	}
	return "", fmt.Errorf("%s not found in %s", documentPart, path)
}

// docxText extracts paragraph text from a document.xml stream.
func docxText(r io.Reader) (string, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return "", fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	body := doc.FindElement("//w:body")
	if body == nil {
		return "", fmt.Errorf("%s has no w:body", documentPart)
	}

	var lines []string
	for _, p := range body.FindElements(".//w:p") {
		var b strings.Builder
		writeRuns(&b, p)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}

// writeRuns appends the visible text below e. Nested paragraphs (text boxes)
// are skipped because FindElements visits them on their own.
func writeRuns(b *strings.Builder, e *etree.Element) {
	for _, c := range e.ChildElements() {
		if c.Space != "w" {
			continue
		}
		switch c.Tag {
		case "t":
			b.WriteString(c.Text())
		case "tab":
			b.WriteByte('\t')
		case "br", "cr":
			b.WriteByte('\n')
		case "p", "delText", "instrText":
		default:
			writeRuns(b, c)
		}
	}
}
