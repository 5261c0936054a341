// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statute-parser/pkg/types"
)

// fakeConverter returns canned text per source path, or err for paths
// listed in errs.
type fakeConverter struct {
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeConverter) Convert(_ context.Context, path string) (string, error) {
	if err, ok := f.errs[path]; ok {
		return "", err
	}
	if out, ok := f.outputs[path]; ok {
		return out, nil
	}
	return "", errors.New("unexpected path: " + path)
}

// setupSource creates statutes/raw/<name> under a temp dir and returns the
// source path and the statutes dir.
func setupSource(t *testing.T, name string) (srcPath, statutesDir string) {
	t.Helper()
	statutesDir = t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(statutesDir, rawDir), 0o755))
	srcPath = filepath.Join(statutesDir, rawDir, name)
	require.NoError(t, os.WriteFile(srcPath, []byte("fake docx"), 0o644))
	return srcPath, statutesDir
}

func TestConvertDocument(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		err        error
		preCreate  bool
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name:       "successful conversion",
			output:     "595/2003 Z. z.\nPrvá ČASŤ\n§ 1\nText.",
			wantStatus: types.ConversionDone,
			wantLog:    "converted: ZZ_2003_595",
		},
		{
			name:       "skip existing text",
			output:     "should not be used",
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "skipped: ZZ_2003_595",
		},
		{
			name:       "converter failure",
			err:        errors.New("corrupt archive"),
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:  ZZ_2003_595 (corrupt archive)",
		},
		{
			name:       "blank output",
			output:     " \n\t\n",
			wantStatus: types.ConversionFailed,
			wantLog:    "no text extracted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dir := setupSource(t, "ZZ_2003_595.docx")
			conv := &fakeConverter{outputs: map[string]string{src: tt.output}}
			if tt.err != nil {
				conv.errs = map[string]error{src: tt.err}
			}
			if tt.preCreate {
				require.NoError(t, WriteText(TextPath(dir, "ZZ_2003_595"), TextHeader{}, "existing"))
			}

			var log bytes.Buffer
			status := ConvertDocument(context.Background(), conv, src, dir, &log)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, log.String(), tt.wantLog)
			if tt.wantStatus == types.ConversionFailed {
				assert.NoFileExists(t, TextPath(dir, "ZZ_2003_595"))
			}
		})
	}
}

func TestConvertDocument_WritesNormalizedText(t *testing.T) {
	src, dir := setupSource(t, "ZZ_2003_595.docx")
	conv := &fakeConverter{outputs: map[string]string{
		src: "  595/2003 Z. z.\r\n\r\nPrvá ČASŤ\n\t§ 1\n",
	}}

	var log bytes.Buffer
	require.Equal(t, types.ConversionDone, ConvertDocument(context.Background(), conv, src, dir, &log))

	hdr, text, err := ReadText(TextPath(dir, "ZZ_2003_595"))
	require.NoError(t, err)
	assert.Equal(t, "595/2003 Z. z.\n\nPrvá ČASŤ\n\n§ 1\n\n", text)
	assert.Equal(t, src, hdr.Source)
	assert.Equal(t, Fingerprint(text), hdr.Fingerprint)
	assert.NotEmpty(t, hdr.ConvertedAt)
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, rawDir)
	require.NoError(t, os.MkdirAll(raw, 0o755))

	paths := map[string]string{}
	for _, name := range []string{"a", "b", "c"} {
		paths[name] = filepath.Join(raw, name+".docx")
		require.NoError(t, os.WriteFile(paths[name], []byte("docx"), 0o644))
	}
	require.NoError(t, WriteText(TextPath(dir, "b"), TextHeader{}, "existing"))

	conv := &fakeConverter{
		outputs: map[string]string{paths["a"]: "Prvá ČASŤ", paths["b"]: "Prvá ČASŤ"},
		errs:    map[string]error{paths["c"]: errors.New("bad docx")},
	}
	cfg := types.ConversionConfig{StatutesDir: dir, Workers: 2}

	var log bytes.Buffer
	result, err := ConvertBatch(context.Background(), conv,
		[]string{paths["a"], paths["b"], paths["c"]}, cfg, &log)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Done)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.HasFailures())
	assert.Contains(t, log.String(), "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)")
}

func TestPendingSources(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, rawDir)
	require.NoError(t, os.MkdirAll(filepath.Join(raw, "nested.docx"), 0o755))
	for _, name := range []string{"b.docx", "a.DOCX", "c.html", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(raw, name), nil, 0o644))
	}

	docx, err := PendingSources(dir, types.BackendDocx)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(raw, "a.DOCX"), filepath.Join(raw, "b.docx")}, docx)

	html, err := PendingSources(dir, types.BackendHTML)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(raw, "c.html")}, html)

	_, err = PendingSources(filepath.Join(dir, "missing"), types.BackendDocx)
	assert.Error(t, err)
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "ZZ_2003_595", DocumentID("statutes/raw/ZZ_2003_595.docx"))
	assert.Equal(t, "zakon.o.dani", DocumentID("zakon.o.dani.html"))
	assert.True(t, strings.HasSuffix(TextPath("statutes", "x"), filepath.Join("text", "x.txt")))
}
