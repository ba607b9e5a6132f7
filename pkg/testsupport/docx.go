// Package testsupport provides fixture helpers shared by the engine's test
// suites.
package testsupport

import (
	"archive/zip"
	"bytes"
	"testing"
)

// BuildPackage zips the supplied parts into a document package. Part order
// follows the iteration order of names, so callers pass names explicitly.
func BuildPackage(t *testing.T, names []string, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range names {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("create part %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(parts[name])); err != nil {
			t.Fatalf("write part %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("finalize package: %v", err)
	}
	return buf.Bytes()
}

// BuildDocument wraps body markup in a minimal word-processing package with
// only the primary part.
func BuildDocument(t *testing.T, bodyXML string) []byte {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + bodyXML + `</w:body></w:document>`
	return BuildPackage(t,
		[]string{"[Content_Types].xml", "word/document.xml"},
		map[string]string{
			"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
				`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
				`<Default Extension="xml" ContentType="application/xml"/></Types>`,
			"word/document.xml": document,
		})
}

// Paragraph wraps text in a single-run paragraph.
func Paragraph(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}
