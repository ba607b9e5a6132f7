package compile

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/ooxml"
	"github.com/docgenlab/go-docgen/pkg/resolve"
)

// GenerateRequest carries the inputs for template-less generation.
type GenerateRequest struct {
	// BodyText is the plain document text, one paragraph per line.
	BodyText string
	// DisplayName, when present, becomes a centered document title.
	DisplayName string
	Config      config.Config
	Inputs      resolve.Inputs
}

// Generator synthesizes a complete document package from plain body text.
// It is used only when a template has no uploaded package.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator constructs a Generator.
func NewGenerator(options ...func(*Generator)) *Generator {
	g := &Generator{logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// WithGeneratorLogger injects a logger.
func WithGeneratorLogger(logger *slog.Logger) func(*Generator) {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

var (
	headingLine  = regexp.MustCompile(`^[А-ЯЁ\s]+$`)
	numberedLine = regexp.MustCompile(`^\d+\.`)
)

const headingRuneLimit = 50

// requisitesHeading titles the appended section in generated documents.
const requisitesHeading = "РЕКВИЗИТЫ"

// Generate builds the document: optional centered title, classified body
// paragraphs, and — unless appending is disabled — the same requisites rows
// the compiler would splice, rendered through the structural builder.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := ooxml.NewBuilder()
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		builder.Title(name)
	}

	for _, line := range strings.Split(req.BodyText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isHeadingLine(trimmed) {
			builder.Heading(trimmed)
			continue
		}
		builder.Paragraph(line, numberedLine.MatchString(trimmed))
	}

	if req.Config.AppendMode != config.AppendDisabled {
		items := RequisiteItems(req.Config.Fields, req.Inputs.Requisites, req.Inputs.Organization)
		if len(items) > 0 {
			builder.Spacer()
			builder.Heading(requisitesHeading)
			builder.Table(items)
		}
	}

	output, err := builder.Package()
	if err != nil {
		return nil, fmt.Errorf("compile: generate package: %w", err)
	}
	return output, nil
}

// isHeadingLine treats short lines of uppercase letters and spaces as
// section headings.
func isHeadingLine(trimmed string) bool {
	return utf8.RuneCountInString(trimmed) < headingRuneLimit && headingLine.MatchString(trimmed)
}
