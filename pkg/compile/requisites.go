package compile

import (
	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/ooxml"
	"github.com/docgenlab/go-docgen/pkg/resolve"
	"github.com/docgenlab/go-docgen/pkg/token"
)

// RequisiteItems builds the rows of a synthesized requisites section from
// the enabled field definitions. User-filled requisites win over the
// organization profile, rows resolving empty are dropped, and duplicate
// field codes keep only their first row.
func RequisiteItems(fields []config.Field, requisites, organization map[string]any) []ooxml.RequisiteItem {
	var items []ooxml.RequisiteItem
	seen := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		if _, dup := seen[field.Code]; dup {
			continue
		}

		value, ok := requisites[field.Code]
		if !ok || value == nil {
			value = organization[field.Code]
		}
		text := resolve.Scalar(value)
		if text == "" {
			continue
		}

		label := field.Label
		if label == "" {
			label = token.FieldLabel(field.Code)
		}

		seen[field.Code] = struct{}{}
		items = append(items, ooxml.RequisiteItem{Label: label, Value: text})
	}
	return items
}
