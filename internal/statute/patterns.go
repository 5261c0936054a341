// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package statute segments the normalized text of a Slovak statute into a
// flat, ordered stream of records. Each record carries the law's number and
// date together with the titles of the section (ČASŤ), article (Čl.) and
// paragraph (§) it belongs to.
//
// The package is pure: it performs no I/O and holds no mutable state, so a
// single Parser may be shared by goroutines parsing different documents.
package statute

import (
	"regexp"
	"strings"
)

// sectionOrdinals lists the ordinal words that introduce a ČASŤ heading,
// in document order. "Základné zásady" heads the principles part that some
// codes place before the first numbered part.
var sectionOrdinals = []string{
	"Základné zásady",
	"Prvá", "Druhá", "Tretia", "Štvrtá", "Piata",
	"Šiesta", "Siedma", "Ôsma", "Deviata", "Desiata",
	"Jedenásta", "Dvanásta", "Trinásta", "Štrnásta", "Pätnásta",
	"Šestnásta", "Sedemnásta", "Osemnásta", "Devätnásta", "Dvadsiata",
}

// Patterns is the compiled pattern set the parser works with. It is built
// once and only read afterwards.
type Patterns struct {
	// LawNumber captures the gazette number in its first group ("595/2003").
	LawNumber *regexp.Regexp

	// Date captures the enactment date in its first group ("24. novembra 2003").
	Date *regexp.Regexp

	// Section matches a ČASŤ heading line and captures the ordinal word.
	Section *regexp.Regexp

	// Article matches a "Čl. N" marker line.
	Article *regexp.Regexp

	// Paragraph matches a "§ N" marker line.
	Paragraph *regexp.Regexp
}

// DefaultPatterns compiles the patterns for statutes published in the
// Slovak Collection of Laws (Zbierka zákonov).
func DefaultPatterns() Patterns {
	return Patterns{
		LawNumber: regexp.MustCompile(`(\d{3}/\d{4})\s+Z\.\s*z\.`),
		Date:      regexp.MustCompile(`(?:^|[^\p{L}\p{N}])z\s+(\d{1,2}\.\s*\p{L}+\s+\d{4})`),
		Section: regexp.MustCompile(
			`(?im)^[ \t]*(` + ordinalAlternation() + `)[ \t]+ČASŤ(?:[^\p{L}\p{N}_\n][^\n]*)?$`),
		Article:   regexp.MustCompile(`(?im)^[ \t]*Čl\.[ \t]*\d+\b.*$`),
		Paragraph: regexp.MustCompile(`(?im)^[ \t]*§[ \t]*\d+\b.*$`),
	}
}

// ordinalAlternation joins sectionOrdinals into a regexp alternation.
// "Piata" and the words ending in "ásta" also accept a long final vowel
// ("Piatá", "Dvanástá"), a spelling that shows up in converted documents.
func ordinalAlternation() string {
	alts := make([]string, len(sectionOrdinals))
	for i, word := range sectionOrdinals {
		quoted := strings.ReplaceAll(regexp.QuoteMeta(word), " ", `[ \t]+`)
		if word == "Piata" || strings.HasSuffix(quoted, "ásta") {
			quoted = strings.TrimSuffix(quoted, "a") + "[aá]"
		}
		alts[i] = quoted
	}
	return strings.Join(alts, "|")
}
