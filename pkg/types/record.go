// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Unknown is the sentinel stored in a LawMetadata field when the document
// does not contain a recognizable value for it.
const Unknown = "Unknown"

// LawMetadata identifies the statute a record belongs to. It is extracted
// once per document and copied by value into every Record.
type LawMetadata struct {
	// LawNumber is the gazette number, e.g. "595/2003".
	LawNumber string `json:"law_number" yaml:"law_number"`

	// Date is the enactment date as written, e.g. "24. novembra 2003".
	Date string `json:"date" yaml:"date"`
}

// Record is one flattened output unit: a paragraph body tagged with the
// law's metadata and the titles of its section, article and paragraph.
type Record struct {
	LawNumber      string `json:"law_number" yaml:"law_number"`
	Date           string `json:"date" yaml:"date"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ArticleTitle   string `json:"article_title" yaml:"article_title"`
	ParagraphTitle string `json:"paragraph_title" yaml:"paragraph_title"`
	Content        string `json:"content" yaml:"content"`
}

// LawRecords is the on-disk unit written by the parse stage and read by
// the record store: all records of one document in document order.
type LawRecords struct {
	// ID is a slug derived from the source file name (e.g. "ZZ_2003_595").
	ID string `json:"id" yaml:"id"`

	// Source is the path of the normalized text the records came from.
	Source string `json:"source" yaml:"source"`

	Metadata LawMetadata `json:"metadata" yaml:"metadata"`
	Records  []Record    `json:"records" yaml:"records"`
}
