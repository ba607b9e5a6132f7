// Package extract scans uploaded template packages for placeholder tokens
// and produces the review payload administrators see after an upload: the
// aggregated token list with suggested metadata, extraction warnings, and a
// best-effort plain-text preview of the document.
//
// Extraction never fails. A corrupt or unsupported package degrades to zero
// tokens plus a warning so the upload can still be accepted and inspected.
package extract

import (
	"github.com/docgenlab/go-docgen/pkg/ooxml"
	"github.com/docgenlab/go-docgen/pkg/token"
)

// Placeholder is one aggregated token discovered in a template package.
type Placeholder struct {
	// Name is the canonical identifier, case-sensitive.
	Name string
	// RawTags lists every surface form seen, in document order.
	RawTags []string
	// Occurrences counts how many times the token appears.
	Occurrences int
	// SuggestedSource classifies the likely value source.
	SuggestedSource token.Source
	// SuggestedLabel is the display label seeded from the first occurrence
	// or the dictionaries.
	SuggestedLabel string
	// InferredFieldCode is set only for preset tokens.
	InferredFieldCode string
	// DefaultValue is captured from the first occurrence that specified one.
	DefaultValue string
	// Warnings flag problems with this token, such as a malformed name.
	Warnings []string
}

// Result is the full extraction outcome for one uploaded package.
type Result struct {
	Placeholders    []Placeholder
	Warnings        []string
	PreviewText     string
	HasPlaceholders bool
}

const (
	warnUnparseable   = "Не удалось полностью проанализировать плейсхолдеры. Проверьте корректность шаблона."
	warnEmptyName     = "Пустой плейсхолдер пропущен"
	warnMalformedName = "Некорректный формат кода плейсхолдера"
)

// Placeholders extracts every placeholder token from a template package.
func Placeholders(data []byte) Result {
	var result Result

	pkg, err := ooxml.OpenPackage(data)
	if err != nil {
		result.Warnings = append(result.Warnings, warnUnparseable)
	} else {
		agg := newAggregator()
		for _, name := range pkg.TextPartNames() {
			part, ok := pkg.Part(name)
			if !ok {
				continue
			}
			scanned := ooxml.ScanPart(string(part))
			result.Warnings = append(result.Warnings, scanned.Warnings...)
			for _, tag := range scanned.Tags {
				if warning := agg.add(tag); warning != "" {
					result.Warnings = append(result.Warnings, warning)
				}
			}
		}
		result.Placeholders = agg.placeholders()
	}

	result.PreviewText = Preview(data)
	result.HasPlaceholders = len(result.Placeholders) > 0
	return result
}

// aggregator folds repeated occurrences of the same canonical name into a
// single placeholder, preserving first-seen order.
type aggregator struct {
	order   []string
	entries map[string]*Placeholder
}

func newAggregator() *aggregator {
	return &aggregator{entries: make(map[string]*Placeholder)}
}

// add records one occurrence and returns a top-level warning when the
// occurrence cannot be kept at all.
func (a *aggregator) add(tag token.Tag) string {
	if tag.Name == "" {
		return warnEmptyName
	}

	if existing, ok := a.entries[tag.Name]; ok {
		existing.Occurrences++
		existing.RawTags = append(existing.RawTags, tag.Raw)
		if tag.Default != "" && existing.DefaultValue == "" {
			existing.DefaultValue = tag.Default
		}
		return ""
	}

	classified := token.Classify(tag.Name, sanitizeText(tag.Label))
	entry := &Placeholder{
		Name:              tag.Name,
		RawTags:           []string{tag.Raw},
		Occurrences:       1,
		SuggestedSource:   classified.Source,
		SuggestedLabel:    classified.Label,
		InferredFieldCode: classified.FieldCode,
		DefaultValue:      tag.Default,
	}
	if !token.Valid(tag.Name) {
		entry.Warnings = append(entry.Warnings, warnMalformedName)
	}
	a.order = append(a.order, tag.Name)
	a.entries[tag.Name] = entry
	return ""
}

func (a *aggregator) placeholders() []Placeholder {
	if len(a.order) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.entries[name])
	}
	return out
}
