// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// csvHeader names the columns written by ExportCSV.
var csvHeader = []string{
	"id", "law_id", "position", "law_number", "date",
	"section_title", "article_title", "paragraph_title", "content",
}

// Export writes the records matching opts to statutesDir/index/export.<format>
// and returns the written path. Format is yaml, json, or csv. A zero
// MaxResults exports every match.
func (s *Store) Export(ctx context.Context, format string, opts QueryOptions) (string, error) {
	switch format {
	case "yaml", "":
		return s.ExportYAML(ctx, opts)
	case "json":
		return s.ExportJSON(ctx, opts)
	case "csv":
		return s.ExportCSV(ctx, opts)
	default:
		return "", fmt.Errorf("unsupported export format %q: use yaml, json, or csv", format)
	}
}

// ExportYAML writes the matching records to index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport("export.yaml", data)
}

// ExportJSON writes the matching records to index/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport("export.json", data)
}

// ExportCSV writes the matching records to index/export.csv, one row per
// record under csvHeader.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) (path string, err error) {
	results, err := s.exportResults(ctx, opts)
	if err != nil {
		return "", err
	}

	path = filepath.Join(s.statutesDir, indexDir, "export.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.ID, r.LawID, strconv.Itoa(r.Position), r.LawNumber, r.Date,
			r.SectionTitle, r.ArticleTitle, r.ParagraphTitle, r.Content,
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return path, nil
}

func (s *Store) exportResults(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	results, err := s.query(ctx, opts, max(opts.MaxResults, 0))
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if results == nil {
		results = []QueryResult{}
	}
	return results, nil
}

func (s *Store) writeExport(name string, data []byte) (string, error) {
	path := filepath.Join(s.statutesDir, indexDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
