// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector matches the HTML elements that carry one structural block
// of a statute page: headings, paragraphs, list items and table cells.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, td, th, dt, dd, pre, blockquote, div"

// HTMLConverter extracts text from statute pages saved as HTML, such as
// the consolidated versions published on Slov-Lex.
type HTMLConverter struct{}

// Convert returns the text of every innermost block element, one per
// line, with runs of whitespace inside a block collapsed to one space.
func (HTMLConverter) Convert(_ context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parsing HTML %s: %w", path, err)
	}
	return htmlText(doc), nil
}

func htmlText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, head").Remove()

	var lines []string
	doc.Find("body").Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}
