package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DocumentPart is the primary markup part of a word-processing package.
const DocumentPart = "word/document.xml"

// Package is an opened document container. Parts are kept as raw bytes; only
// parts a caller explicitly rewrites change, everything else round-trips
// untouched.
type Package struct {
	names []string
	parts map[string][]byte
}

// OpenPackage reads a zip-based document package into memory.
func OpenPackage(data []byte) (*Package, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("ooxml: open package: %w", err)
	}

	pkg := &Package{parts: make(map[string][]byte, len(reader.File))}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("ooxml: open part %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("ooxml: read part %s: %w", file.Name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("ooxml: close part %s: %w", file.Name, closeErr)
		}
		if _, exists := pkg.parts[file.Name]; !exists {
			pkg.names = append(pkg.names, file.Name)
		}
		pkg.parts[file.Name] = content
	}
	return pkg, nil
}

// Part returns the raw bytes of a named part.
func (p *Package) Part(name string) ([]byte, bool) {
	content, ok := p.parts[name]
	return content, ok
}

// SetPart replaces or adds a part.
func (p *Package) SetPart(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

// TextPartNames lists the parts that carry document text: the primary part
// plus any headers and footers, in a stable order.
func (p *Package) TextPartNames() []string {
	var names []string
	if _, ok := p.parts[DocumentPart]; ok {
		names = append(names, DocumentPart)
	}
	var extra []string
	for name := range p.parts {
		if name == DocumentPart {
			continue
		}
		if strings.HasPrefix(name, "word/header") && strings.HasSuffix(name, ".xml") {
			extra = append(extra, name)
		}
		if strings.HasPrefix(name, "word/footer") && strings.HasSuffix(name, ".xml") {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Bytes re-serializes the package, preserving the original part order.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range p.names {
		entry, err := writer.Create(name)
		if err != nil {
			return nil, fmt.Errorf("ooxml: create part %s: %w", name, err)
		}
		if _, err := entry.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("ooxml: write part %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("ooxml: finalize package: %w", err)
	}
	return buf.Bytes(), nil
}
