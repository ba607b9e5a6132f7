package compile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/ooxml"
)

func generatedDocument(t *testing.T, req GenerateRequest) string {
	t.Helper()
	output, err := NewGenerator().Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return documentText(t, output)
}

func TestGenerateStructure(t *testing.T) {
	req := GenerateRequest{
		DisplayName: "Договор поставки",
		BodyText: "ОБЩИЕ ПОЛОЖЕНИЯ\n" +
			"\n" +
			"1. Поставщик обязуется поставить товар.\n" +
			"Прочий текст без номера.\n",
		Config: config.Config{AppendMode: config.AppendDisabled},
		Inputs: fixedInputs(),
	}

	document := generatedDocument(t, req)

	if !strings.Contains(document, `<w:pStyle w:val="Heading1"/><w:jc w:val="center"/>`) ||
		!strings.Contains(document, "Договор поставки") {
		t.Errorf("title missing:\n%s", document)
	}
	if !strings.Contains(document, `<w:pStyle w:val="Heading2"/>`) ||
		!strings.Contains(document, "ОБЩИЕ ПОЛОЖЕНИЯ") {
		t.Errorf("uppercase line not classified as heading:\n%s", document)
	}
	if !strings.Contains(document, `<w:ind w:left="720"/>`) {
		t.Errorf("numbered clause not indented:\n%s", document)
	}
	// blank lines produce no paragraphs
	if got := strings.Count(document, "<w:p>"); got != 4 {
		t.Errorf("got %d paragraphs, want 4 (title, heading, two body):\n%s", got, document)
	}
}

func TestGenerateHeadingRuneLimit(t *testing.T) {
	long := strings.Repeat("А", 60)
	document := generatedDocument(t, GenerateRequest{
		BodyText: long + "\n",
		Config:   config.Config{AppendMode: config.AppendDisabled},
	})
	if strings.Contains(document, `<w:pStyle w:val="Heading2"/>`) {
		t.Fatalf("long uppercase line treated as heading:\n%s", document)
	}
}

func TestGenerateAppendsRequisites(t *testing.T) {
	req := GenerateRequest{
		BodyText: "Текст.",
		Config: config.Config{
			AppendMode: config.AppendAuto,
			Fields:     []config.Field{{Code: "inn", Label: "ИНН", Order: 1}},
			// generated documents have no placeholders, so a requisite
			// binding does not suppress the section
			Bindings: []config.Binding{
				{Name: "inn", Label: "ИНН", Source: config.SourceRequisite, FieldCode: "inn"},
			},
		},
		Inputs: fixedInputs(),
	}

	document := generatedDocument(t, req)
	if !strings.Contains(document, "РЕКВИЗИТЫ") || !strings.Contains(document, "7701234567") {
		t.Fatalf("requisites section missing:\n%s", document)
	}
}

func TestGenerateAppendDisabled(t *testing.T) {
	req := GenerateRequest{
		BodyText: "Текст.",
		Config: config.Config{
			AppendMode: config.AppendDisabled,
			Fields:     []config.Field{{Code: "inn", Label: "ИНН", Order: 1}},
		},
		Inputs: fixedInputs(),
	}
	if document := generatedDocument(t, req); strings.Contains(document, "РЕКВИЗИТЫ") {
		t.Fatalf("requisites appended despite disabled mode:\n%s", document)
	}
}

func TestGenerateOutputIsReadablePackage(t *testing.T) {
	output, err := NewGenerator().Generate(context.Background(), GenerateRequest{BodyText: "Текст."})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	pkg, err := ooxml.OpenPackage(output)
	if err != nil {
		t.Fatalf("generated package does not open: %v", err)
	}
	if _, ok := pkg.Part("word/styles.xml"); !ok {
		t.Fatal("styles part missing from generated package")
	}
}

func TestGenerateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGenerator().Generate(ctx, GenerateRequest{BodyText: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
