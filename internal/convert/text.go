// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.yaml.in/yaml/v3"
)

const frontmatterDelim = "---\n"

// TextHeader is the frontmatter written above a normalized text. It records
// provenance only and is stripped again by ReadText.
type TextHeader struct {
	Source      string `yaml:"source"`
	ConvertedAt string `yaml:"converted_at"`
	Fingerprint string `yaml:"fingerprint"`
}

// Fingerprint returns the xxhash of text as 16 hex digits.
func Fingerprint(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// WriteText writes hdr and text to path, creating the parent directory.
// The file is closed on every return path and removed if writing fails.
func WriteText(path string, hdr TextHeader, text string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating text directory: %w", err)
	}

	meta, err := yaml.Marshal(&hdr)
	if err != nil {
		return fmt.Errorf("marshaling text header: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	for _, chunk := range []string{frontmatterDelim, string(meta), frontmatterDelim, "\n", text} {
		if _, err := f.WriteString(chunk); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// ReadText reads a normalized text file. A leading frontmatter block is
// parsed into the header and removed from the returned text; files without
// one are returned unchanged with a zero header.
func ReadText(path string) (TextHeader, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextHeader{}, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return splitFrontmatter(data)
}

func splitFrontmatter(data []byte) (TextHeader, string, error) {
	var hdr TextHeader
	if !bytes.HasPrefix(data, []byte(frontmatterDelim)) {
		return hdr, string(data), nil
	}

	rest := data[len(frontmatterDelim):]
	end := bytes.Index(rest, []byte("\n"+frontmatterDelim))
	if end < 0 {
		return hdr, "", fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal(rest[:end+1], &hdr); err != nil {
		return hdr, "", fmt.Errorf("parsing frontmatter: %w", err)
	}

	body := rest[end+1+len(frontmatterDelim):]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return hdr, string(body), nil
}
