// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse runs the statute parser over normalized texts and stores
// the resulting records, one YAML file per law.
package parse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statute-parser/internal/batch"
	"github.com/pdiddy/statute-parser/internal/convert"
	"github.com/pdiddy/statute-parser/internal/statute"
	"github.com/pdiddy/statute-parser/pkg/types"
)

const (
	textDir    = "text"
	recordsDir = "records"

	// RecordsSuffix ends the name of every record file.
	RecordsSuffix = "-records.yaml"
)

// RecordsPath returns where the records of document id are stored.
func RecordsPath(statutesDir, id string) string {
	return filepath.Join(statutesDir, recordsDir, id+RecordsSuffix)
}

// Document segments text into a LawRecords value. It returns
// statute.ErrNoSections when the text has no section heading; with
// allowEmpty the result is an empty record list instead.
func Document(p *statute.Parser, id, source, text string, allowEmpty bool) (types.LawRecords, error) {
	law := types.LawRecords{
		ID:       id,
		Source:   source,
		Metadata: p.Metadata(text),
	}

	sections := p.Sections(text)
	if len(sections) == 0 {
		if allowEmpty {
			law.Records = []types.Record{}
			return law, nil
		}
		return law, statute.ErrNoSections
	}

	law.Records = p.Assemble(law.Metadata, sections)
	if law.Records == nil {
		law.Records = []types.Record{}
	}
	return law, nil
}

// ParseText segments the text at textPath and writes its records to
// statutesDir/records/<id>-records.yaml. The text is normalized first, so
// hand-placed files without frontmatter parse like converted ones. A record
// file newer than its text is left alone.
func ParseText(p *statute.Parser, textPath string, cfg types.ParseConfig, w io.Writer) types.ParseStatus {
	id := convert.DocumentID(textPath)
	outPath := RecordsPath(cfg.StatutesDir, id)

	if upToDate(textPath, outPath) {
		fmt.Fprintf(w, "skipped: %s (records up to date)\n", id)
		return types.ParseNone
	}

	_, text, err := convert.ReadText(textPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ParseFailed
	}

	law, err := Document(p, id, textPath, convert.Normalize(text), cfg.AllowEmpty)
	if errors.Is(err, statute.ErrNoSections) {
		fmt.Fprintf(w, "failed:  %s (%v; check that headings start a line)\n", id, err)
		return types.ParseFailed
	}
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ParseFailed
	}

	if err := WriteRecords(outPath, law); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ParseFailed
	}

	if len(law.Records) == 0 {
		fmt.Fprintf(w, "empty:   %s (law %s, no records)\n", id, law.Metadata.LawNumber)
		return types.ParseEmpty
	}
	fmt.Fprintf(w, "parsed:  %s (law %s, %d records)\n", id, law.Metadata.LawNumber, len(law.Records))
	return types.ParseDone
}

// ParseBatch parses textPaths with up to cfg.Workers texts in flight,
// printing one status line per text and a summary to w. Empty results
// count as done: they are only produced when cfg.AllowEmpty is set.
func ParseBatch(ctx context.Context, p *statute.Parser, textPaths []string, cfg types.ParseConfig, w io.Writer) (types.BatchResult, error) {
	result, err := batch.Run(ctx, textPaths, cfg.Workers, w, func(_ context.Context, path string, w io.Writer) batch.Outcome {
		switch ParseText(p, path, cfg, w) {
		case types.ParseDone, types.ParseEmpty:
			return batch.Done
		case types.ParseNone:
			return batch.Skipped
		default:
			return batch.Failed
		}
	})
	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d skipped, %d failed (total: %d)\n",
		result.Done, result.Skipped, result.Failed, result.Total())
	return result, err
}

// PendingTexts lists the normalized texts in statutesDir/text.
func PendingTexts(statutesDir string) ([]string, error) {
	dir := filepath.Join(statutesDir, textDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading text directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// WriteRecords stores law as YAML at path.
func WriteRecords(path string, law types.LawRecords) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating records directory: %w", err)
	}
	data, err := yaml.Marshal(&law)
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRecords loads a record file written by WriteRecords.
func ReadRecords(path string) (types.LawRecords, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LawRecords{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var law types.LawRecords
	if err := yaml.Unmarshal(data, &law); err != nil {
		return types.LawRecords{}, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return law, data, nil
}

// upToDate reports whether out exists and is not older than src.
func upToDate(src, out string) bool {
	outInfo, err := os.Stat(out)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	return !outInfo.ModTime().Before(srcInfo.ModTime())
}
