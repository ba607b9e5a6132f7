package ooxml

import "strings"

// RequisiteItem is one label/value row of a requisites table.
type RequisiteItem struct {
	Label string
	Value string
}

const bodyClose = "</w:body>"

// requisitesTitle heads the generated requisites section.
const requisitesTitle = "РЕКВИЗИТЫ"

// RequisitesBlock renders a spacer paragraph, a bold section title and a
// bordered two-column table, ready to be spliced into an existing body.
func RequisitesBlock(items []RequisiteItem) string {
	if len(items) == 0 {
		return ""
	}
	var block strings.Builder
	block.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + "\u00a0" + `</w:t></w:r></w:p>`)
	block.WriteString(`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>` + requisitesTitle + `</w:t></w:r></w:p>`)
	block.WriteString(TableXML(items))
	return block.String()
}

// TableXML renders items as a two-column table with single-line borders on
// every edge, bold labels and 2400/3600 relative column widths.
func TableXML(items []RequisiteItem) string {
	var table strings.Builder
	table.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
		`</w:tblBorders></w:tblPr>`)
	for _, item := range items {
		table.WriteString(`<w:tr>` +
			`<w:tc><w:tcPr><w:tcW w:w="2400" w:type="pct"/></w:tcPr>` +
			`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">` + EscapeText(item.Label) + `</w:t></w:r></w:p></w:tc>` +
			`<w:tc><w:tcPr><w:tcW w:w="3600" w:type="pct"/></w:tcPr>` +
			`<w:p><w:r><w:t xml:space="preserve">` + EscapeText(item.Value) + `</w:t></w:r></w:p></w:tc>` +
			`</w:tr>`)
	}
	table.WriteString(`</w:tbl>`)
	return table.String()
}

// AppendToBody splices a fragment immediately before the closing body marker
// of a document part. When the marker is absent it reports ok=false and
// returns the markup unchanged; callers are expected to skip the append
// rather than risk corrupting the part.
func AppendToBody(xml, fragment string) (string, bool) {
	if fragment == "" {
		return xml, true
	}
	idx := strings.LastIndex(xml, bodyClose)
	if idx < 0 {
		return xml, false
	}
	return xml[:idx] + fragment + xml[idx:], true
}
