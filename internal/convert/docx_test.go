// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>595/2003 Z. z.</w:t></w:r></w:p>
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t xml:space="preserve">Prvá </w:t></w:r><w:r><w:t>ČASŤ</w:t></w:r></w:p>
    <w:p><w:r><w:t>§</w:t><w:tab/><w:t>1</w:t></w:r></w:p>
    <w:p><w:r><w:t>Riadok</w:t><w:br/><w:t>zalomený</w:t></w:r></w:p>
    <w:p><w:r><w:delText>zmazané</w:delText></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Bunka</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
    <w:sectPr/>
  </w:body>
</w:document>`

// writeDocx builds a minimal .docx package holding the given parts.
func writeDocx(t *testing.T, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ZZ_2003_595.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestDocxConverter(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		documentPart:          documentXML,
	})

	got, err := DocxConverter{}.Convert(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "595/2003 Z. z.\nPrvá ČASŤ\n§\t1\nRiadok\nzalomený\n\nBunka", got)
	assert.Equal(t, "595/2003 Z. z.\n\nPrvá ČASŤ\n\n§\t1\n\nRiadok\n\nzalomený\n\nBunka\n\n", Normalize(got))
}

func TestDocxConverter_Errors(t *testing.T) {
	t.Run("missing document part", func(t *testing.T) {
		path := writeDocx(t, map[string]string{"word/styles.xml": `<w:styles/>`})
		_, err := DocxConverter{}.Convert(context.Background(), path)
		assert.ErrorContains(t, err, "word/document.xml not found")
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain.docx")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
		_, err := DocxConverter{}.Convert(context.Background(), path)
		assert.Error(t, err)
	})

	t.Run("no body", func(t *testing.T) {
		path := writeDocx(t, map[string]string{
			documentPart: `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`,
		})
		_, err := DocxConverter{}.Convert(context.Background(), path)
		assert.ErrorContains(t, err, "no w:body")
	})
}
