package ooxml

import (
	"fmt"
	"strings"
)

// Builder assembles a complete word-processing package from scratch. It
// covers the structural needs of generated documents: headings, body
// paragraphs with optional clause indentation, and requisites tables.
type Builder struct {
	blocks []string
}

// NewBuilder returns an empty document builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Title appends a centered top-level heading.
func (b *Builder) Title(text string) {
	b.blocks = append(b.blocks,
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/><w:jc w:val="center"/><w:spacing w:after="400"/></w:pPr>`+
			`<w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr><w:t xml:space="preserve">`+EscapeText(text)+`</w:t></w:r></w:p>`)
}

// Heading appends a subheading paragraph.
func (b *Builder) Heading(text string) {
	b.blocks = append(b.blocks,
		`<w:p><w:pPr><w:pStyle w:val="Heading2"/><w:spacing w:before="300" w:after="200"/></w:pPr>`+
			`<w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t xml:space="preserve">`+EscapeText(text)+`</w:t></w:r></w:p>`)
}

// Paragraph appends a body paragraph. Indented paragraphs carry the left
// indentation used for numbered clauses.
func (b *Builder) Paragraph(text string, indented bool) {
	indent := ""
	if indented {
		indent = `<w:ind w:left="720"/>`
	}
	b.blocks = append(b.blocks,
		`<w:p><w:pPr><w:spacing w:after="150"/>`+indent+`</w:pPr>`+
			`<w:r><w:t xml:space="preserve">`+EscapeText(text)+`</w:t></w:r></w:p>`)
}

// Spacer appends an empty paragraph separating the body from appended
// sections.
func (b *Builder) Spacer() {
	b.blocks = append(b.blocks, `<w:p><w:pPr><w:spacing w:before="600"/></w:pPr></w:p>`)
}

// Table appends a requisites table.
func (b *Builder) Table(items []RequisiteItem) {
	if len(items) == 0 {
		return
	}
	b.blocks = append(b.blocks, TableXML(items))
}

// Package serializes the built document into a complete zip container with
// the minimal fixed parts a word processor expects.
func (b *Builder) Package() ([]byte, error) {
	pkg := &Package{parts: make(map[string][]byte)}
	pkg.SetPart("[Content_Types].xml", []byte(contentTypesXML))
	pkg.SetPart("_rels/.rels", []byte(rootRelsXML))
	pkg.SetPart("word/_rels/document.xml.rels", []byte(documentRelsXML))
	pkg.SetPart("word/styles.xml", []byte(stylesXML))
	pkg.SetPart(DocumentPart, []byte(b.documentXML()))

	data, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("ooxml: build package: %w", err)
	}
	return data, nil
}

func (b *Builder) documentXML() string {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	doc.WriteString(`<w:body>`)
	for _, block := range b.blocks {
		doc.WriteString(block)
	}
	// 2.5 cm page margins on every side
	doc.WriteString(`<w:sectPr><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>`)
	doc.WriteString(`</w:body></w:document>`)
	return doc.String()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
</w:styles>`
