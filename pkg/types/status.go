// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of normalizing one source document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ParseStatus indicates the outcome of segmenting one normalized text.
type ParseStatus string

const (
	ParseNone   ParseStatus = "none"
	ParseDone   ParseStatus = "parsed"
	ParseEmpty  ParseStatus = "empty"
	ParseFailed ParseStatus = "failed"
)

// BatchResult holds the outcome counts of a batch run of any stage.
type BatchResult struct {
	Done    int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Done + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}
