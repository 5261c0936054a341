// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statute

import (
	"errors"
	"regexp"

	"github.com/pdiddy/statute-parser/pkg/types"
)

// ErrNoSections reports a document without a single ČASŤ heading. It
// usually means the text was not normalized so that headings start a line.
var ErrNoSections = errors.New("no section headers found")

// Parser segments statute text using a fixed pattern set.
type Parser struct {
	patterns   Patterns
	sections   level
	articles   level
	paragraphs level
}

// NewParser returns a parser for the given patterns.
func NewParser(p Patterns) *Parser {
	return &Parser{
		patterns:   p,
		sections:   level{boundary: p.Section, titleGroup: 1},
		articles:   level{boundary: p.Article, fallback: NoArticle},
		paragraphs: level{boundary: p.Paragraph, fallback: NoParagraph},
	}
}

var defaultParser = NewParser(DefaultPatterns())

// Parse segments text with the default patterns. See Parser.Parse.
func Parse(text string) []types.Record {
	return defaultParser.Parse(text)
}

// ParseStrict segments text with the default patterns. See
// Parser.ParseStrict.
func ParseStrict(text string) ([]types.Record, error) {
	return defaultParser.ParseStrict(text)
}

// ExtractMetadata returns the law number and date found in text using the
// default patterns.
func ExtractMetadata(text string) types.LawMetadata {
	return defaultParser.Metadata(text)
}

// Metadata returns the first law number and the first date found anywhere
// in text. A field that cannot be found is set to types.Unknown.
func (p *Parser) Metadata(text string) types.LawMetadata {
	return types.LawMetadata{
		LawNumber: firstGroup(p.patterns.LawNumber, text),
		Date:      firstGroup(p.patterns.Date, text),
	}
}

// Sections splits the full text at ČASŤ headings. Text before the first
// heading belongs to no section. A text without headings has no sections.
func (p *Parser) Sections(text string) []Span {
	return segment(text, p.sections)
}

// Articles splits one section's content at "Čl." markers, or returns a
// single NoArticle span holding the whole content.
func (p *Parser) Articles(content string) []Span {
	return segment(content, p.articles)
}

// Paragraphs splits one article's content at "§" markers, or returns a
// single NoParagraph span holding the whole content.
func (p *Parser) Paragraphs(content string) []Span {
	return segment(content, p.paragraphs)
}

// Parse returns one record per non-empty paragraph of text, in document
// order: by section, then article, then paragraph. A text without section
// headings yields no records.
func (p *Parser) Parse(text string) []types.Record {
	return p.Assemble(p.Metadata(text), p.Sections(text))
}

// ParseStrict is like Parse but returns ErrNoSections when text contains
// no section heading instead of an empty result.
func (p *Parser) ParseStrict(text string) ([]types.Record, error) {
	sections := p.Sections(text)
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	return p.Assemble(p.Metadata(text), sections), nil
}

// Assemble flattens sections into records carrying meta. Each section is
// split into articles and each article into paragraphs; paragraphs with
// empty content are dropped.
func (p *Parser) Assemble(meta types.LawMetadata, sections []Span) []types.Record {
	var records []types.Record
	for _, section := range sections {
		for _, article := range p.Articles(section.Content) {
			for _, para := range p.Paragraphs(article.Content) {
				if para.Content == "" {
					continue
				}
				records = append(records, types.Record{
					LawNumber:      meta.LawNumber,
					Date:           meta.Date,
					SectionTitle:   section.Title,
					ArticleTitle:   article.Title,
					ParagraphTitle: para.Title,
					Content:        para.Content,
				})
			}
		}
	}
	return records
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return types.Unknown
	}
	return m[1]
}
