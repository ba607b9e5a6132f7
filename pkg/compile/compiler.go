package compile

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/ooxml"
	"github.com/docgenlab/go-docgen/pkg/resolve"
	"github.com/docgenlab/go-docgen/pkg/token"
)

// FileResolver maps a stored template path onto an absolute filesystem path.
// Storage backends implement it; the compiler only ever performs the single
// read.
type FileResolver interface {
	Resolve(path string) (string, error)
}

// Template identifies the package to fill. Inline bytes take precedence;
// a stored path is read as fallback; with neither, compilation fails.
type Template struct {
	Data []byte
	Path string
}

// Request carries everything one compilation needs.
type Request struct {
	Template Template
	Config   config.Config
	Inputs   resolve.Inputs
}

// Option customises a Compiler.
type Option func(*Compiler)

// WithFileResolver injects the storage resolver used for stored template
// paths.
func WithFileResolver(files FileResolver) Option {
	return func(c *Compiler) {
		c.files = files
	}
}

// WithLogger injects a logger. The compiler logs only degradations, never
// values.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Compiler fills template packages. The zero options configuration works for
// callers that always supply inline bytes.
type Compiler struct {
	files  FileResolver
	logger *slog.Logger
}

// NewCompiler constructs a Compiler applying any provided options.
func NewCompiler(options ...Option) *Compiler {
	c := &Compiler{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compile fills every placeholder in the template package, optionally
// appends a requisites table, and returns the final document bytes. On any
// fatal error the original template bytes are untouched and no output is
// produced.
func (c *Compiler) Compile(ctx context.Context, req Request) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := c.templateBytes(req.Template)
	if err != nil {
		return nil, err
	}

	renderData, missing := buildRenderData(req.Config.Bindings, req.Inputs)
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Labels: missing}
	}

	pkg, err := ooxml.OpenPackage(content)
	if err != nil {
		return nil, fmt.Errorf("compile: open template package: %w", err)
	}

	resolver := substitutionResolver(renderData, req.Inputs.Requisites)
	for _, name := range pkg.TextPartNames() {
		part, ok := pkg.Part(name)
		if !ok {
			continue
		}
		pkg.SetPart(name, []byte(ooxml.SubstitutePart(string(part), resolver)))
	}

	if ShouldAppendRequisites(req.Config) {
		items := RequisiteItems(req.Config.Fields, req.Inputs.Requisites, req.Inputs.Organization)
		if len(items) > 0 {
			c.appendRequisites(pkg, items)
		}
	}

	output, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("compile: serialize package: %w", err)
	}
	return output, nil
}

// templateBytes prefers inline content, then the stored path. Read failures
// on the stored path are not fatal when inline bytes exist; with no content
// at all compilation cannot proceed.
func (c *Compiler) templateBytes(tpl Template) ([]byte, error) {
	if len(tpl.Data) > 0 {
		return tpl.Data, nil
	}
	if tpl.Path != "" {
		path := tpl.Path
		if c.files != nil {
			resolved, err := c.files.Resolve(tpl.Path)
			if err != nil {
				c.logger.Warn("stored template path did not resolve", "path", tpl.Path, "error", err)
				return nil, ErrTemplateUnavailable
			}
			path = resolved
		}
		content, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("stored template not readable", "path", tpl.Path, "error", err)
			return nil, ErrTemplateUnavailable
		}
		if len(content) > 0 {
			return content, nil
		}
	}
	return nil, ErrTemplateUnavailable
}

// buildRenderData resolves every configured binding and collects the labels
// of required bindings that resolved empty. All bindings are processed so
// the resulting error message is complete.
func buildRenderData(bindings []config.Binding, in resolve.Inputs) (map[string]string, []string) {
	renderData := make(map[string]string, len(bindings))
	var missing []string
	listed := make(map[string]struct{})

	for _, binding := range bindings {
		value := resolve.Value(binding, in)
		if value == "" && binding.Required {
			label := binding.Label
			if label == "" {
				label = binding.Name
			}
			if _, dup := listed[label]; !dup {
				listed[label] = struct{}{}
				missing = append(missing, label)
			}
		}
		renderData[binding.Name] = value
	}
	return renderData, missing
}

// substitutionResolver feeds the substitution pass. Configured bindings win;
// tokens physically present without a binding are orphans filled straight
// from the requisites map, or blanked, so substitution never fails merely
// because the configuration lags behind the file.
func substitutionResolver(renderData map[string]string, requisites map[string]any) func(token.Tag) (string, bool) {
	return func(tag token.Tag) (string, bool) {
		if value, ok := renderData[tag.Name]; ok {
			return value, true
		}
		if value, ok := requisites[tag.Name]; ok && value != nil {
			return resolve.Scalar(value), true
		}
		return "", true
	}
}

// appendRequisites splices the synthesized table into the primary part. A
// missing closing body marker skips the append rather than corrupting the
// package.
func (c *Compiler) appendRequisites(pkg *ooxml.Package, items []ooxml.RequisiteItem) {
	part, ok := pkg.Part(ooxml.DocumentPart)
	if !ok {
		c.logger.Warn("primary document part missing, requisites append skipped")
		return
	}
	spliced, ok := ooxml.AppendToBody(string(part), ooxml.RequisitesBlock(items))
	if !ok {
		c.logger.Warn("closing body marker not found, requisites append skipped")
		return
	}
	pkg.SetPart(ooxml.DocumentPart, []byte(spliced))
}
