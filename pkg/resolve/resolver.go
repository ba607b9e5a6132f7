// Package resolve computes the final string value for one configured binding
// from the run-time input maps. Resolution is a pure function: the only
// non-deterministic input, the clock, is carried explicitly in Context so
// callers control it.
package resolve

import (
	"strconv"

	"github.com/docgenlab/go-docgen/pkg/config"
)

// Inputs bundles the run-time value sources for one render.
type Inputs struct {
	// Requisites are the values the end user filled in for this document.
	Requisites map[string]any
	// Organization is the caller's organization profile.
	Organization map[string]any
	// System carries clock, template metadata and caller identity.
	System Context
}

// Value resolves one binding to its final string. It never returns a
// sentinel for "missing": absence is the empty string.
func Value(binding config.Binding, in Inputs) string {
	key := binding.FieldCode
	if key == "" {
		key = binding.Name
	}

	switch binding.Source {
	case config.SourceRequisite:
		return Scalar(mapLookup(in.Requisites, key, binding.Name))
	case config.SourceOrganization:
		return Scalar(mapLookup(in.Organization, key, binding.Name))
	case config.SourceSystem:
		return systemValue(key, in.System)
	case config.SourceCustom:
		return binding.DefaultValue
	default:
		// unknown source: prefer the user-filled value, then the stored default
		if value, ok := in.Requisites[key]; ok && value != nil {
			return Scalar(value)
		}
		return binding.DefaultValue
	}
}

// mapLookup reads values[key], falling back to values[fallback] when the
// field-code key is absent.
func mapLookup(values map[string]any, key, fallback string) any {
	if value, ok := values[key]; ok {
		return value
	}
	return values[fallback]
}

// Scalar coerces a loosely-typed input value to a string. Nil becomes the
// empty string, strings pass through, numbers and booleans stringify, and
// anything else (objects, arrays) is dropped to the empty string.
func Scalar(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	default:
		return ""
	}
}
