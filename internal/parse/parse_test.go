// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statute-parser/internal/convert"
	"github.com/pdiddy/statute-parser/internal/statute"
	"github.com/pdiddy/statute-parser/pkg/types"
)

const lawText = "595/2003 Z. z.\n\nZÁKON\n\nz 24. novembra 2003\n\n" +
	"Prvá ČASŤ Foo\n\nČl. 1\n\n§ 1\n\nA.\n\n§ 2\n\nB.\n\n"

// writeText stores a normalized text under statutesDir/text the way the
// convert stage does.
func writeText(t *testing.T, statutesDir, id, text string) string {
	t.Helper()
	path := convert.TextPath(statutesDir, id)
	require.NoError(t, convert.WriteText(path, convert.TextHeader{Source: id + ".docx"}, text))
	return path
}

func newParser() *statute.Parser {
	return statute.NewParser(statute.DefaultPatterns())
}

func TestParseText(t *testing.T) {
	dir := t.TempDir()
	textPath := writeText(t, dir, "ZZ_2003_595", lawText)
	cfg := types.ParseConfig{StatutesDir: dir}

	var log bytes.Buffer
	status := ParseText(newParser(), textPath, cfg, &log)

	require.Equal(t, types.ParseDone, status, log.String())
	assert.Contains(t, log.String(), "parsed:  ZZ_2003_595 (law 595/2003, 2 records)")

	law, _, err := ReadRecords(RecordsPath(dir, "ZZ_2003_595"))
	require.NoError(t, err)
	assert.Equal(t, "ZZ_2003_595", law.ID)
	assert.Equal(t, textPath, law.Source)
	assert.Equal(t, types.LawMetadata{LawNumber: "595/2003", Date: "24. novembra 2003"}, law.Metadata)
	require.Len(t, law.Records, 2)
	assert.Equal(t, "§ 1", law.Records[0].ParagraphTitle)
	assert.Equal(t, "A.", law.Records[0].Content)
	assert.Equal(t, "§ 2", law.Records[1].ParagraphTitle)
	assert.Equal(t, "B.", law.Records[1].Content)
}

func TestParseText_SkipsUpToDate(t *testing.T) {
	dir := t.TempDir()
	textPath := writeText(t, dir, "ZZ_2003_595", lawText)
	cfg := types.ParseConfig{StatutesDir: dir}
	require.Equal(t, types.ParseDone, ParseText(newParser(), textPath, cfg, &bytes.Buffer{}))

	var log bytes.Buffer
	assert.Equal(t, types.ParseNone, ParseText(newParser(), textPath, cfg, &log))
	assert.Contains(t, log.String(), "skipped: ZZ_2003_595")

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(textPath, later, later))
	assert.Equal(t, types.ParseDone, ParseText(newParser(), textPath, cfg, &bytes.Buffer{}))
}

func TestParseText_NoSections(t *testing.T) {
	text := "595/2003 Z. z.\n\nČl. 1\n\n§ 1\n\nText.\n\n"

	t.Run("fails by default", func(t *testing.T) {
		dir := t.TempDir()
		textPath := writeText(t, dir, "broken", text)

		var log bytes.Buffer
		status := ParseText(newParser(), textPath, types.ParseConfig{StatutesDir: dir}, &log)

		assert.Equal(t, types.ParseFailed, status)
		assert.Contains(t, log.String(), "no section headers found")
		assert.NoFileExists(t, RecordsPath(dir, "broken"))
	})

	t.Run("allowed empty", func(t *testing.T) {
		dir := t.TempDir()
		textPath := writeText(t, dir, "broken", text)

		var log bytes.Buffer
		status := ParseText(newParser(), textPath, types.ParseConfig{StatutesDir: dir, AllowEmpty: true}, &log)

		assert.Equal(t, types.ParseEmpty, status)
		law, _, err := ReadRecords(RecordsPath(dir, "broken"))
		require.NoError(t, err)
		assert.Empty(t, law.Records)
		assert.Equal(t, "595/2003", law.Metadata.LawNumber)
	})
}

func TestParseText_NormalizesRawText(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "text", "raw.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(textPath), 0o755))
	// Decomposed "á", CRLF line ends, a no-break space after "§" and no
	// frontmatter, as left by copying text out of a PDF viewer.
	raw := "595/2003 Z. z.\r\nPrva\u0301 ČASŤ\r\n  Čl. 1\r\n§\u00a01\r\nA.\r\n§ 2\r\nB.\r\n"
	require.NoError(t, os.WriteFile(textPath, []byte(raw), 0o644))

	var log bytes.Buffer
	status := ParseText(newParser(), textPath, types.ParseConfig{StatutesDir: dir}, &log)

	require.Equal(t, types.ParseDone, status, log.String())
	law, _, err := ReadRecords(RecordsPath(dir, "raw"))
	require.NoError(t, err)
	require.Len(t, law.Records, 2)
	assert.Equal(t, "Prvá", law.Records[0].SectionTitle)
	assert.Equal(t, "Čl. 1", law.Records[0].ArticleTitle)
	assert.Equal(t, "§ 1", law.Records[0].ParagraphTitle)
	assert.Equal(t, "A.", law.Records[0].Content)
	assert.Equal(t, "§ 2", law.Records[1].ParagraphTitle)
	assert.Equal(t, "B.", law.Records[1].Content)
}

func TestParseText_MissingText(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer

	status := ParseText(newParser(), filepath.Join(dir, "text", "gone.txt"), types.ParseConfig{StatutesDir: dir}, &log)

	assert.Equal(t, types.ParseFailed, status)
	assert.Contains(t, log.String(), "failed:  gone")
}

func TestParseBatch(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, "a", lawText)
	writeText(t, dir, "b", strings.Replace(lawText, "595/2003", "222/2004", 1))
	writeText(t, dir, "c", "no structure at all\n\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "text", "README.md"), []byte("x"), 0o644))

	paths, err := PendingTexts(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	var log bytes.Buffer
	result, err := ParseBatch(context.Background(), newParser(), paths, types.ParseConfig{StatutesDir: dir, Workers: 2}, &log)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Done)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, log.String(), "Batch summary: 2 parsed, 0 skipped, 1 failed (total: 3)")

	b, _, err := ReadRecords(RecordsPath(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, "222/2004", b.Metadata.LawNumber)
}

func TestDocument_MatchesParser(t *testing.T) {
	p := newParser()

	law, err := Document(p, "x", "x.txt", lawText, false)

	require.NoError(t, err)
	assert.Equal(t, p.Parse(lawText), law.Records)
}
