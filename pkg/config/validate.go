package config

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schema/template_config.yaml
var schemaFS embed.FS

var (
	schemaOnce sync.Once
	schemaRef  *openapi3.Schema
	schemaErr  error
)

// Issue is one schema violation found in a persisted configuration document.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Validate lints a persisted configuration document against the published
// schema. Violations are advisory: normalization still proceeds and silently
// drops what it cannot use, but surfacing the issues lets administrators fix
// documents instead of wondering why entries vanished. A document that is
// not valid JSON yields a single issue.
func Validate(ctx context.Context, raw []byte) []Issue {
	schema, err := configSchema()
	if err != nil {
		return []Issue{{Message: err.Error()}}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return []Issue{{Message: fmt.Sprintf("document is not valid JSON: %v", err)}}
	}

	err = schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]Issue, 0, len(multi))
		for _, item := range multi {
			issues = append(issues, issueFromError(item))
		}
		return issues
	}
	return []Issue{issueFromError(err)}
}

func configSchema() (*openapi3.Schema, error) {
	schemaOnce.Do(func() {
		data, err := schemaFS.ReadFile("schema/template_config.yaml")
		if err != nil {
			schemaErr = fmt.Errorf("config: read embedded schema: %w", err)
			return
		}
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(data)
		if err != nil {
			schemaErr = fmt.Errorf("config: load embedded schema: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			schemaErr = fmt.Errorf("config: embedded schema invalid: %w", err)
			return
		}
		ref, ok := doc.Components.Schemas["TemplateConfiguration"]
		if !ok || ref.Value == nil {
			schemaErr = errors.New("config: embedded schema is missing TemplateConfiguration")
			return
		}
		schemaRef = ref.Value
	})
	return schemaRef, schemaErr
}

func issueFromError(err error) Issue {
	var schemaError *openapi3.SchemaError
	if errors.As(err, &schemaError) {
		return Issue{
			Path:    "/" + strings.Join(schemaError.JSONPointer(), "/"),
			Message: schemaError.Reason,
		}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}
