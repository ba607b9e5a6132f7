package compile

import "github.com/docgenlab/go-docgen/pkg/config"

// ShouldAppendRequisites decides whether a requisites table is synthesized
// into the output. The decision inspects configuration only, never resolved
// values: a table is appended when appending is not disabled and no
// configured binding already consumes requisite or organization data through
// an explicit placeholder. Templates whose bindings are purely system or
// custom sourced — or that have no bindings at all — get the table.
func ShouldAppendRequisites(cfg config.Config) bool {
	if cfg.AppendMode == config.AppendDisabled {
		return false
	}
	for _, binding := range cfg.Bindings {
		if binding.Source == config.SourceRequisite || binding.Source == config.SourceOrganization {
			return false
		}
	}
	return true
}
