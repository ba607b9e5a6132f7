package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/docgenlab/go-docgen/pkg/token"
)

// Parse converts a decoded, loosely-typed configuration document into the
// strict Config shape. It performs no I/O and is deterministic and
// idempotent: feeding a normalized configuration back through Parse yields
// the same structure.
func Parse(raw map[string]any) Config {
	cfg := Config{AppendMode: AppendAuto}
	if raw == nil {
		return cfg
	}

	if mode, _ := raw["appendMode"].(string); mode == string(AppendDisabled) {
		cfg.AppendMode = AppendDisabled
	}

	if entries, ok := raw["placeholderBindings"].([]any); ok {
		for _, entry := range entries {
			if binding, ok := parseBinding(entry); ok {
				cfg.Bindings = append(cfg.Bindings, binding)
			}
		}
	}

	if entries, ok := raw["fields"].([]any); ok {
		for _, entry := range entries {
			if field, ok := parseField(entry); ok {
				cfg.Fields = append(cfg.Fields, field)
			}
		}
	}
	sort.SliceStable(cfg.Fields, func(i, j int) bool {
		return cfg.Fields[i].Order < cfg.Fields[j].Order
	})

	return cfg
}

// ParseDocument decodes a persisted JSON configuration document and
// normalizes it.
func ParseDocument(data []byte) (Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: decode document: %w", err)
	}
	return Parse(raw), nil
}

func parseBinding(entry any) (Binding, bool) {
	values, ok := entry.(map[string]any)
	if !ok {
		return Binding{}, false
	}

	name := stringValue(values["name"])
	if name == "" {
		return Binding{}, false
	}

	binding := Binding{
		Name:         name,
		Label:        name,
		Source:       SourceRequisite,
		FieldCode:    name,
		DefaultValue: stringValue(values["defaultValue"]),
	}

	switch Source(stringValue(values["source"])) {
	case SourceRequisite, SourceOrganization, SourceSystem, SourceCustom:
		binding.Source = Source(stringValue(values["source"]))
	}

	if label := stringValue(values["label"]); label != "" {
		binding.Label = label
	}
	if code := stringValue(values["fieldCode"]); code != "" {
		binding.FieldCode = code
	}

	// required/autofillFromOrg may live on the binding itself or be
	// inherited from an embedded field definition
	definition, _ := values["fieldDefinition"].(map[string]any)
	binding.Required = flagValue(values, definition, "required")
	binding.AutofillFromOrg = flagValue(values, definition, "autofillFromOrg")

	return binding, true
}

func parseField(entry any) (Field, bool) {
	values, ok := entry.(map[string]any)
	if !ok {
		return Field{}, false
	}

	code := stringValue(values["code"])
	if code == "" {
		// legacy documents carried the code under "name"
		code = stringValue(values["name"])
	}
	if code == "" {
		return Field{}, false
	}

	if enabled, present := values["enabled"].(bool); present && !enabled {
		return Field{}, false
	}

	label := stringValue(values["label"])
	if label == "" {
		label = token.FieldLabel(code)
	}

	return Field{Code: code, Label: label, Order: intValue(values["order"])}, true
}

func stringValue(value any) string {
	text, _ := value.(string)
	return text
}

func intValue(value any) int {
	switch number := value.(type) {
	case int:
		return number
	case int64:
		return int(number)
	case float64:
		return int(number)
	case json.Number:
		if parsed, err := strconv.Atoi(number.String()); err == nil {
			return parsed
		}
	}
	return 0
}

func flagValue(values, definition map[string]any, key string) bool {
	if flag, present := values[key].(bool); present {
		return flag
	}
	if definition != nil {
		if flag, present := definition[key].(bool); present {
			return flag
		}
	}
	return false
}
