package config

import (
	"github.com/docgenlab/go-docgen/pkg/extract"
	"github.com/docgenlab/go-docgen/pkg/token"
)

// Merge reconciles a previously configured template with the token list
// extracted from a re-uploaded file. Bindings whose placeholder still exists
// keep their configured metadata (identity is the canonical name); new tokens
// receive freshly suggested bindings; bindings for removed tokens are
// orphaned — left out of the active configuration, though callers typically
// keep the previous document in storage for history.
func Merge(prev Config, placeholders []extract.Placeholder) Config {
	merged := Config{
		AppendMode: prev.AppendMode,
		Fields:     prev.Fields,
	}
	if merged.AppendMode == "" {
		merged.AppendMode = AppendAuto
	}

	existing := make(map[string]Binding, len(prev.Bindings))
	for _, binding := range prev.Bindings {
		existing[binding.Name] = binding
	}

	for _, placeholder := range placeholders {
		if binding, ok := existing[placeholder.Name]; ok {
			merged.Bindings = append(merged.Bindings, binding)
			continue
		}
		merged.Bindings = append(merged.Bindings, suggestBinding(placeholder))
	}
	return merged
}

// suggestBinding derives a starting binding from extraction metadata: system
// tokens bind to the system source, preset tokens to the organization
// profile via their inferred field code, everything else to a custom value.
func suggestBinding(placeholder extract.Placeholder) Binding {
	binding := Binding{
		Name:         placeholder.Name,
		Label:        placeholder.SuggestedLabel,
		FieldCode:    placeholder.Name,
		DefaultValue: placeholder.DefaultValue,
	}
	if binding.Label == "" {
		binding.Label = placeholder.Name
	}

	switch placeholder.SuggestedSource {
	case token.SourceSystem:
		binding.Source = SourceSystem
	case token.SourcePreset:
		binding.Source = SourceOrganization
		if placeholder.InferredFieldCode != "" {
			binding.FieldCode = placeholder.InferredFieldCode
		}
		binding.AutofillFromOrg = true
	default:
		binding.Source = SourceCustom
	}
	return binding
}
