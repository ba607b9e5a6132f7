// Command docgen drives the rendering engine from the terminal: inspect an
// uploaded template, save it into the local store, and render documents from
// a template package or from plain body text.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/docgenlab/go-docgen/pkg/compile"
	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/extract"
	"github.com/docgenlab/go-docgen/pkg/resolve"

	"github.com/docgenlab/go-docgen/internal/store"
)

func main() {
	// a missing .env is fine; environment variables still apply
	_ = godotenv.Load()

	logger := newLogger()
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "inspect":
		err = runInspect(os.Args[2:])
	case "save":
		err = runSave(ctx, os.Args[2:], logger)
	case "render":
		err = runRender(ctx, os.Args[2:], logger)
	case "generate":
		err = runGenerate(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("docgen: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: docgen <inspect|save|render|generate> [flags]`)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DOCGEN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runInspect extracts placeholders from a template file and prints the
// review payload.
func runInspect(args []string) error {
	flags := flag.NewFlagSet("inspect", flag.ExitOnError)
	templatePath := flags.String("template", "", "template package path")
	asJSON := flags.Bool("json", false, "print the result as JSON")
	_ = flags.Parse(args)

	if *templatePath == "" {
		return fmt.Errorf("inspect: -template is required")
	}
	data, err := os.ReadFile(*templatePath)
	if err != nil {
		return fmt.Errorf("inspect: read template: %w", err)
	}

	result := extract.Placeholders(data)
	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	for _, placeholder := range result.Placeholders {
		fmt.Printf("%-30s source=%-8s occurrences=%d", placeholder.Name, placeholder.SuggestedSource, placeholder.Occurrences)
		if placeholder.SuggestedLabel != "" {
			fmt.Printf(" label=%q", placeholder.SuggestedLabel)
		}
		fmt.Println()
		for _, warning := range placeholder.Warnings {
			fmt.Printf("    ! %s\n", warning)
		}
	}
	for _, warning := range result.Warnings {
		fmt.Printf("! %s\n", warning)
	}
	if result.PreviewText != "" {
		fmt.Println("---")
		fmt.Println(result.PreviewText)
	}
	return nil
}

// runSave stores a template body and its (merged) configuration in the
// local store.
func runSave(ctx context.Context, args []string, logger *slog.Logger) error {
	flags := flag.NewFlagSet("save", flag.ExitOnError)
	code := flags.String("code", "", "template code")
	name := flags.String("name", "", "template display name")
	templatePath := flags.String("template", "", "template package path")
	dbPath := flags.String("db", envOr("DOCGEN_DB", "docgen.db"), "store database path")
	root := flags.String("root", envOr("DOCGEN_STORAGE_ROOT", "storage"), "storage root")
	_ = flags.Parse(args)

	if *code == "" || *templatePath == "" {
		return fmt.Errorf("save: -code and -template are required")
	}
	data, err := os.ReadFile(*templatePath)
	if err != nil {
		return fmt.Errorf("save: read template: %w", err)
	}

	st, err := store.Open(*dbPath, *root, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	previous := config.Config{AppendMode: config.AppendAuto}
	if record, err := st.Template(ctx, *code); err == nil {
		if parsed, err := config.ParseDocument(record.Config); err == nil {
			previous = parsed
		}
	}

	result := extract.Placeholders(data)
	for _, warning := range result.Warnings {
		logger.Warn("extraction warning", "warning", warning)
	}
	merged := config.Merge(previous, result.Placeholders)

	if _, err := st.SaveBody(ctx, *code, *name, data); err != nil {
		return err
	}
	document, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("save: encode config: %w", err)
	}
	if err := st.SaveConfig(ctx, *code, document); err != nil {
		return err
	}

	logger.Info("template saved", "code", *code, "placeholders", len(result.Placeholders))
	return nil
}

// runRender compiles a stored or local template with inputs from a YAML or
// JSON file, prompting for missing required values when asked to.
func runRender(ctx context.Context, args []string, logger *slog.Logger) error {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	code := flags.String("code", "", "stored template code")
	templatePath := flags.String("template", "", "template package path (bypasses the store)")
	configPath := flags.String("config", "", "configuration document path")
	inputsPath := flags.String("inputs", "", "render inputs path (YAML or JSON)")
	output := flags.String("output", "document.docx", "output file")
	prompt := flags.Bool("prompt", false, "prompt for missing required values")
	dbPath := flags.String("db", envOr("DOCGEN_DB", "docgen.db"), "store database path")
	root := flags.String("root", envOr("DOCGEN_STORAGE_ROOT", "storage"), "storage root")
	_ = flags.Parse(args)

	in, err := loadInputs(*inputsPath)
	if err != nil {
		return err
	}

	var cfg config.Config
	req := compile.Request{}
	var options []compile.Option

	switch {
	case *templatePath != "":
		data, err := os.ReadFile(*templatePath)
		if err != nil {
			return fmt.Errorf("render: read template: %w", err)
		}
		req.Template.Data = data
		cfg, err = loadConfig(ctx, *configPath, logger)
		if err != nil {
			return err
		}
	case *code != "":
		st, err := store.Open(*dbPath, *root, logger)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		record, err := st.Template(ctx, *code)
		if err != nil {
			return err
		}
		for _, issue := range config.Validate(ctx, record.Config) {
			logger.Warn("configuration issue", "path", issue.Path, "message", issue.Message)
		}
		cfg, err = config.ParseDocument(record.Config)
		if err != nil {
			return err
		}
		req.Template.Path = record.BodyPath
		options = append(options, compile.WithFileResolver(st.Files()))
		if in.System.Template.Name == "" {
			in.System.Template.Name = record.Name
		}
		if in.System.Template.Version == "" {
			in.System.Template.Version = fmt.Sprintf("%d", record.Version)
		}
	default:
		return fmt.Errorf("render: either -template or -code is required")
	}

	if *prompt {
		if err := promptMissing(cfg, &in); err != nil {
			return err
		}
	}

	req.Config = cfg
	req.Inputs = in
	options = append(options, compile.WithLogger(logger))

	document, err := compile.NewCompiler(options...).Compile(ctx, req)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, document, 0o644); err != nil {
		return fmt.Errorf("render: write output: %w", err)
	}
	fmt.Printf("Document written to %s\n", *output)
	return nil
}

// runGenerate builds a document from plain body text.
func runGenerate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	bodyPath := flags.String("body", "", "plain-text body path")
	name := flags.String("name", "", "document title")
	configPath := flags.String("config", "", "configuration document path")
	inputsPath := flags.String("inputs", "", "render inputs path (YAML or JSON)")
	output := flags.String("output", "document.docx", "output file")
	_ = flags.Parse(args)

	if *bodyPath == "" {
		return fmt.Errorf("generate: -body is required")
	}
	body, err := os.ReadFile(*bodyPath)
	if err != nil {
		return fmt.Errorf("generate: read body: %w", err)
	}
	in, err := loadInputs(*inputsPath)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, *configPath, slog.Default())
	if err != nil {
		return err
	}

	document, err := compile.NewGenerator().Generate(ctx, compile.GenerateRequest{
		BodyText:    string(body),
		DisplayName: *name,
		Config:      cfg,
		Inputs:      in,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, document, 0o644); err != nil {
		return fmt.Errorf("generate: write output: %w", err)
	}
	fmt.Printf("Document written to %s\n", *output)
	return nil
}

// inputsFile is the on-disk shape of render inputs.
type inputsFile struct {
	Requisites   map[string]any `yaml:"requisites" json:"requisites"`
	Organization map[string]any `yaml:"organization" json:"organization"`
	Template     struct {
		Name    string `yaml:"name" json:"name"`
		Version string `yaml:"version" json:"version"`
	} `yaml:"template" json:"template"`
	User *struct {
		FirstName  string `yaml:"firstName" json:"firstName"`
		LastName   string `yaml:"lastName" json:"lastName"`
		MiddleName string `yaml:"middleName" json:"middleName"`
	} `yaml:"user" json:"user"`
}

func loadInputs(path string) (resolve.Inputs, error) {
	in := resolve.Inputs{
		Requisites:   map[string]any{},
		Organization: map[string]any{},
		System:       resolve.Context{Now: timeNow()},
	}
	if path == "" {
		return in, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read inputs: %w", err)
	}
	var file inputsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return in, fmt.Errorf("decode inputs: %w", err)
	}

	if file.Requisites != nil {
		in.Requisites = file.Requisites
	}
	if file.Organization != nil {
		in.Organization = file.Organization
	}
	in.System.Template = resolve.TemplateMeta{Name: file.Template.Name, Version: file.Template.Version}
	if file.User != nil {
		in.System.User = &resolve.Identity{
			FirstName:  file.User.FirstName,
			LastName:   file.User.LastName,
			MiddleName: file.User.MiddleName,
		}
	}
	return in, nil
}

func loadConfig(ctx context.Context, path string, logger *slog.Logger) (config.Config, error) {
	if path == "" {
		return config.Config{AppendMode: config.AppendAuto}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	for _, issue := range config.Validate(ctx, data) {
		logger.Warn("configuration issue", "path", issue.Path, "message", issue.Message)
	}
	return config.ParseDocument(data)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func timeNow() time.Time {
	return time.Now()
}

// promptMissing asks interactively for every required binding whose value
// resolves empty and records the answers as requisites.
func promptMissing(cfg config.Config, in *resolve.Inputs) error {
	for _, binding := range cfg.Bindings {
		if !binding.Required || resolve.Value(binding, *in) != "" {
			continue
		}
		var answer string
		question := &survey.Input{Message: binding.Label + ":"}
		if err := survey.AskOne(question, &answer); err != nil {
			return fmt.Errorf("prompt for %s: %w", binding.Name, err)
		}
		key := binding.FieldCode
		if key == "" {
			key = binding.Name
		}
		in.Requisites[key] = answer
	}
	return nil
}
