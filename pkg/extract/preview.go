package extract

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/docgenlab/go-docgen/pkg/ooxml"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

func tagStripper() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// sanitizeText strips any markup from document-sourced display text and
// decodes the standard entities the sanitizer re-escapes.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(ooxml.DecodeEntities(tagStripper().Sanitize(trimmed)))
}

// Preview produces a best-effort plain-text rendition of a template package.
// It never fails: a structured pass over the markup is tried first and a
// crude tag-stripping pass covers anything the structured pass cannot read.
func Preview(data []byte) string {
	if text, err := richPreview(data); err == nil && text != "" {
		return text
	}
	return crudePreview(data)
}

// richPreview walks the primary part's element stream, mapping paragraphs,
// line breaks and tabs onto their plain-text equivalents.
func richPreview(data []byte) (string, error) {
	pkg, err := ooxml.OpenPackage(data)
	if err != nil {
		return "", err
	}
	part, ok := pkg.Part(ooxml.DocumentPart)
	if !ok {
		return "", nil
	}

	var text strings.Builder
	decoder := xml.NewDecoder(bytes.NewReader(part))
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "br":
				text.WriteByte('\n')
			case "tab":
				text.WriteByte('\t')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				text.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				text.Write(el)
			}
		}
	}
	return normalizeWhitespace(text.String()), nil
}

var (
	paragraphOpen  = regexp.MustCompile(`<w:p[^>]*>`)
	paragraphClose = regexp.MustCompile(`</w:p>`)
	lineBreak      = regexp.MustCompile(`<w:br\s*/>`)
	tabMark        = regexp.MustCompile(`<w:tab\s*/>`)
)

// crudePreview is the last-resort pass over the raw primary part: swap
// paragraph, break and tab markup for whitespace, strip every remaining tag,
// decode the standard entities and tidy the result.
func crudePreview(data []byte) string {
	pkg, err := ooxml.OpenPackage(data)
	if err != nil {
		return ""
	}
	part, ok := pkg.Part(ooxml.DocumentPart)
	if !ok {
		return ""
	}

	text := string(part)
	text = paragraphOpen.ReplaceAllString(text, "\n")
	text = lineBreak.ReplaceAllString(text, "\n")
	text = tabMark.ReplaceAllString(text, "\t")
	text = paragraphClose.ReplaceAllString(text, "\n")
	text = tagStripper().Sanitize(text)
	text = ooxml.DecodeEntities(text)
	return normalizeWhitespace(text)
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = trailingSpace.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
