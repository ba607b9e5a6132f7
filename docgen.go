// Package docgen renders filled office documents from uploaded templates.
// It exposes the full pipeline as one API: placeholder extraction for
// administrator review, configuration normalization, multi-source value
// resolution, and compilation of final document bytes — by token
// substitution inside the uploaded package, or by synthesizing a package
// from plain text when none was uploaded.
package docgen

import (
	"context"

	"github.com/docgenlab/go-docgen/pkg/compile"
	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/extract"
	"github.com/docgenlab/go-docgen/pkg/resolve"
)

// ExtractResult aliases the extraction payload exported via the root package
// for convenience.
type ExtractResult = extract.Result

// Placeholder is one aggregated token discovered during extraction.
type Placeholder = extract.Placeholder

// Config is the strict, normalized template configuration.
type Config = config.Config

// Inputs bundles the run-time value sources for one render.
type Inputs = resolve.Inputs

// CompileRequest carries one compilation's template, configuration and
// inputs.
type CompileRequest = compile.Request

// GenerateRequest carries the inputs for template-less generation.
type GenerateRequest = compile.GenerateRequest

// ExtractPlaceholders scans an uploaded template package. It never fails:
// corrupt packages degrade to zero tokens plus a warning.
func ExtractPlaceholders(data []byte) ExtractResult {
	return extract.Placeholders(data)
}

// ParseConfig normalizes a decoded administrator configuration document.
func ParseConfig(raw map[string]any) Config {
	return config.Parse(raw)
}

// Compile fills a template package and returns the final document bytes.
func Compile(ctx context.Context, req CompileRequest, options ...compile.Option) ([]byte, error) {
	return compile.NewCompiler(options...).Compile(ctx, req)
}

// Generate synthesizes a document package from plain body text, used when a
// template has no uploaded package.
func Generate(ctx context.Context, req GenerateRequest) ([]byte, error) {
	return compile.NewGenerator().Generate(ctx, req)
}
