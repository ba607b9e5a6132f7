// Package config turns the loosely-typed template configuration that
// administrators persist into a strict, closed in-memory shape. Parsing is
// pure, deterministic and idempotent; invalid entries are dropped silently as
// routine data hygiene. Validate lints a persisted document against the
// published schema before normalization, and Merge reconciles an existing
// configuration with a freshly extracted token list after a re-upload.
package config

// AppendMode controls whether a requisites table is synthesized into
// rendered output.
type AppendMode string

const (
	AppendAuto     AppendMode = "auto"
	AppendDisabled AppendMode = "disabled"
)

// Source names the value source of a configured binding.
type Source string

const (
	SourceRequisite    Source = "requisite"
	SourceOrganization Source = "organization"
	SourceSystem       Source = "system"
	SourceCustom       Source = "custom"
)

// Binding is an administrator decision about one placeholder.
type Binding struct {
	Name            string `json:"name"`
	Label           string `json:"label"`
	Source          Source `json:"source"`
	FieldCode       string `json:"fieldCode,omitempty"`
	DefaultValue    string `json:"defaultValue,omitempty"`
	Required        bool   `json:"required,omitempty"`
	AutofillFromOrg bool   `json:"autofillFromOrg,omitempty"`
}

// Field is one enabled row of the requisites section contract. Disabled
// fields never survive normalization.
type Field struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Config is the strict template configuration consumed by the compiler and
// the fallback generator.
type Config struct {
	AppendMode AppendMode `json:"appendMode"`
	Fields     []Field    `json:"fields"`
	Bindings   []Binding  `json:"placeholderBindings"`
}
