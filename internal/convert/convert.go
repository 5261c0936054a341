// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns source statute documents into normalized text: one
// structural block per line, blocks separated by a blank line, so that
// section headings and article and paragraph markers always start a line.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/statute-parser/internal/batch"
	"github.com/pdiddy/statute-parser/pkg/types"
)

const (
	// rawDir is the subdirectory under the statutes base for source documents.
	rawDir = "raw"
	// textDir is the subdirectory under the statutes base for normalized text.
	textDir = "text"
)

// Converter extracts the text of a source document. Backends return one
// block (paragraph, heading, list item) per line; Normalize does the rest.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Extensions lists the source file extensions a backend accepts.
func Extensions(backend types.ConversionBackend) []string {
	switch backend {
	case types.BackendHTML:
		return []string{".html", ".htm"}
	default:
		return []string{".docx"}
	}
}

// DocumentID derives a document slug from its file name
// ("raw/ZZ_2003_595.docx" -> "ZZ_2003_595").
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// TextPath returns where the normalized text of document id is stored.
func TextPath(statutesDir, id string) string {
	return filepath.Join(statutesDir, textDir, id+".txt")
}

// ConvertDocument normalizes one source document and writes it to
// statutesDir/text/<id>.txt. It skips documents whose text already exists.
func ConvertDocument(ctx context.Context, c Converter, srcPath, statutesDir string, w io.Writer) types.ConversionStatus {
	id := DocumentID(srcPath)
	textPath := TextPath(statutesDir, id)

	if _, err := os.Stat(textPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", id)
		return types.ConversionNone
	}

	raw, err := c.Convert(ctx, srcPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ConversionFailed
	}

	text := Normalize(raw)
	if text == "" {
		fmt.Fprintf(w, "failed:  %s (no text extracted)\n", id)
		return types.ConversionFailed
	}

	hdr := TextHeader{
		Source:      srcPath,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		Fingerprint: Fingerprint(text),
	}
	if err := WriteText(textPath, hdr, text); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", id)
	return types.ConversionDone
}

// ConvertBatch converts srcPaths with up to cfg.Workers documents in
// flight, printing one status line per document and a summary to w.
func ConvertBatch(ctx context.Context, c Converter, srcPaths []string, cfg types.ConversionConfig, w io.Writer) (types.BatchResult, error) {
	result, err := batch.Run(ctx, srcPaths, cfg.Workers, w, func(ctx context.Context, path string, w io.Writer) batch.Outcome {
		switch ConvertDocument(ctx, c, path, cfg.StatutesDir, w) {
		case types.ConversionDone:
			return batch.Done
		case types.ConversionNone:
			return batch.Skipped
		default:
			return batch.Failed
		}
	})
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Done, result.Skipped, result.Failed, result.Total())
	return result, err
}

// PendingSources lists the source documents in statutesDir/raw that the
// backend accepts, sorted by name.
func PendingSources(statutesDir string, backend types.ConversionBackend) ([]string, error) {
	dir := filepath.Join(statutesDir, rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	exts := Extensions(backend)
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range exts {
			if ext == want {
				paths = append(paths, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	return paths, nil
}
