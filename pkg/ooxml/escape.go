package ooxml

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var decoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// EscapeText escapes the five reserved XML characters for insertion into
// markup text.
func EscapeText(value string) string {
	return escaper.Replace(value)
}

// DecodeEntities decodes the five standard XML entities. Unknown entities
// pass through unchanged.
func DecodeEntities(value string) string {
	return decoder.Replace(value)
}
