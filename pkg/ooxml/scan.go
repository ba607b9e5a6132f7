package ooxml

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docgenlab/go-docgen/pkg/token"
)

var tokenPattern = regexp.MustCompile(`\$\{[^{}]*\}`)

// ScanResult lists the tags found in one scan plus any delimiter warnings.
// Warnings are advisory; a scan never fails.
type ScanResult struct {
	Tags     []token.Tag
	Warnings []string
}

// ScanText finds placeholder tokens in plain text.
func ScanText(text string) ScanResult {
	return scan(text)
}

// ScanPart finds placeholder tokens in the text runs of a markup part.
func ScanPart(xml string) ScanResult {
	return scan(newRunStream(xml).text)
}

func scan(text string) ScanResult {
	var result ScanResult
	seen := make(map[string]struct{})
	warn := func(message string) {
		if _, ok := seen[message]; ok {
			return
		}
		seen[message] = struct{}{}
		result.Warnings = append(result.Warnings, message)
	}

	matches := tokenPattern.FindAllStringIndex(text, -1)
	starts := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		starts[match[0]] = struct{}{}
		result.Tags = append(result.Tags, token.Parse(text[match[0]:match[1]]))

		if match[0] > 0 && text[match[0]-1] == '{' {
			warn("Несбалансированные фигурные скобки рядом с плейсхолдером")
		}
		if match[1] < len(text) && text[match[1]] == '}' {
			warn("Несбалансированные фигурные скобки рядом с плейсхолдером")
		}
	}

	for idx := strings.Index(text, token.DelimStart); idx >= 0; {
		if _, ok := starts[idx]; !ok {
			warn("Незакрытый плейсхолдер в тексте документа")
		}
		next := strings.Index(text[idx+1:], token.DelimStart)
		if next < 0 {
			break
		}
		idx += 1 + next
	}

	return result
}

// SubstitutePart replaces placeholder tokens inside the text runs of a markup
// part. The resolver receives each parsed tag and returns the replacement
// value; returning ok=false leaves the occurrence untouched. Replacement
// values are XML-escaped before insertion. Tokens split across several runs
// collapse into the run where they begin.
func SubstitutePart(xml string, resolver func(token.Tag) (string, bool)) string {
	stream := newRunStream(xml)
	if len(stream.segments) == 0 {
		return xml
	}

	type edit struct {
		start, end int
		value      string
	}
	var edits []edit
	for _, match := range tokenPattern.FindAllStringIndex(stream.text, -1) {
		tag := token.Parse(stream.text[match[0]:match[1]])
		value, ok := resolver(tag)
		if !ok {
			continue
		}
		edits = append(edits, edit{start: match[0], end: match[1], value: EscapeText(value)})
	}
	if len(edits) == 0 {
		return xml
	}

	rewritten := make([]strings.Builder, len(stream.segments))
	editIdx := 0
	for pos := 0; pos < len(stream.text); {
		if editIdx < len(edits) && pos == edits[editIdx].start {
			seg := stream.segmentAt(pos)
			rewritten[seg].WriteString(edits[editIdx].value)
			pos = edits[editIdx].end
			editIdx++
			continue
		}
		seg := stream.segmentAt(pos)
		rewritten[seg].WriteByte(stream.text[pos])
		pos++
	}

	var out strings.Builder
	out.Grow(len(xml))
	cursor := 0
	for i, seg := range stream.segments {
		out.WriteString(xml[cursor:seg.start])
		out.WriteString(rewritten[i].String())
		cursor = seg.end
	}
	out.WriteString(xml[cursor:])
	return out.String()
}

// segment marks a [start,end) byte range of run text inside the raw markup.
type segment struct {
	start, end int
}

// runStream is the concatenated text of all <w:t> runs in a part, with
// offsets mapping positions in the concatenation back to their segments.
type runStream struct {
	segments []segment
	offsets  []int // cumulative start offset of each segment within text
	text     string
}

func newRunStream(xml string) *runStream {
	stream := &runStream{}
	var text strings.Builder

	inText := false
	cursor := 0
	for cursor < len(xml) {
		open := strings.IndexByte(xml[cursor:], '<')
		if open < 0 {
			break
		}
		open += cursor
		if inText && open > cursor {
			stream.offsets = append(stream.offsets, text.Len())
			stream.segments = append(stream.segments, segment{start: cursor, end: open})
			text.WriteString(xml[cursor:open])
		}

		end := strings.IndexByte(xml[open:], '>')
		if end < 0 {
			break
		}
		end += open
		tag := xml[open+1 : end]
		switch {
		case strings.HasPrefix(tag, "w:t") && !isNameByte(tagNameTail(tag, "w:t")):
			// opening <w:t> or <w:t ...>; a self-closing run holds no text
			inText = !strings.HasSuffix(tag, "/")
		case strings.HasPrefix(tag, "/w:t") && !isNameByte(tagNameTail(tag, "/w:t")):
			inText = false
		}
		cursor = end + 1
	}

	stream.text = text.String()
	return stream
}

// tagNameTail returns the byte following the candidate tag name, or 0 when
// the name ends the tag.
func tagNameTail(tag, name string) byte {
	if len(tag) == len(name) {
		return 0
	}
	return tag[len(name)]
}

// isNameByte reports whether b continues an element name, which would mean
// the candidate prefix matched a longer element such as w:tbl.
func isNameByte(b byte) bool {
	if b == 0 || b == ' ' || b == '/' || b == '\t' || b == '\n' || b == '\r' {
		return false
	}
	return true
}

func (s *runStream) segmentAt(pos int) int {
	idx := sort.Search(len(s.offsets), func(i int) bool { return s.offsets[i] > pos })
	return idx - 1
}
