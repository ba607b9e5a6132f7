// Package token defines the placeholder grammar shared by extraction and
// substitution, plus the static dictionaries used to classify token names.
// A placeholder on the wire looks like ${name}, ${name|Label} or
// ${name|Label|Default}; the name must match Pattern to be considered valid,
// but invalid names are never dropped by callers — administrators have to see
// every token that exists in a file.
package token

import (
	"regexp"
	"strings"
)

// Delimiters used by the wire grammar.
const (
	DelimStart = "${"
	DelimEnd   = "}"
)

// Pattern is the canonical identifier grammar for placeholder names.
var Pattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._:-]{1,63}$`)

// Source classifies where a token's value is expected to come from.
type Source string

const (
	SourceSystem Source = "system"
	SourcePreset Source = "preset"
	SourceCustom Source = "custom"
)

// Tag is a single parsed placeholder occurrence.
type Tag struct {
	// Raw is the surface form as seen in the document, delimiters included.
	Raw string
	// Name is the identifier segment, trimmed. May fail Pattern.
	Name string
	// Label is the optional display-label segment.
	Label string
	// Default is the optional default-value segment.
	Default string
}

// Parse splits a raw surface form into its pipe-separated segments. Any of
// the three segments may be absent.
func Parse(raw string) Tag {
	body := strings.TrimPrefix(raw, DelimStart)
	body = strings.TrimSuffix(body, DelimEnd)
	body = strings.TrimSpace(body)

	tag := Tag{Raw: raw}
	parts := strings.SplitN(body, "|", 3)
	tag.Name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		tag.Label = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		tag.Default = strings.TrimSpace(parts[2])
	}
	return tag
}

// Valid reports whether name satisfies the identifier grammar.
func Valid(name string) bool {
	return Pattern.MatchString(name)
}

// Classification carries the suggested metadata inferred for a token name.
type Classification struct {
	Source Source
	// Label is the suggested display label; empty for custom tokens without
	// a provided label.
	Label string
	// FieldCode is set only for preset tokens.
	FieldCode string
}

// Classify infers the likely source of a token name. A provided label always
// wins over the dictionary label.
func Classify(name, providedLabel string) Classification {
	if label, ok := SystemLabels[name]; ok {
		if providedLabel == "" {
			providedLabel = label
		}
		return Classification{Source: SourceSystem, Label: providedLabel}
	}
	if label, ok := PresetLabels[name]; ok {
		if providedLabel == "" {
			providedLabel = label
		}
		return Classification{Source: SourcePreset, Label: providedLabel, FieldCode: name}
	}
	return Classification{Source: SourceCustom, Label: providedLabel}
}
