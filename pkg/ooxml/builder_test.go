package ooxml

import (
	"strings"
	"testing"
)

func TestBuilderPackage(t *testing.T) {
	builder := NewBuilder()
	builder.Title("Договор поставки")
	builder.Heading("ОБЩИЕ ПОЛОЖЕНИЯ")
	builder.Paragraph("1. Предмет договора.", true)
	builder.Paragraph("Свободный текст.", false)
	builder.Spacer()
	builder.Table([]RequisiteItem{{Label: "ИНН", Value: "7701234567"}})

	data, err := builder.Package()
	if err != nil {
		t.Fatalf("build package: %v", err)
	}

	pkg, err := OpenPackage(data)
	if err != nil {
		t.Fatalf("generated package does not open: %v", err)
	}

	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", DocumentPart} {
		if _, ok := pkg.Part(name); !ok {
			t.Errorf("missing part %s", name)
		}
	}

	part, _ := pkg.Part(DocumentPart)
	document := string(part)

	if !strings.Contains(document, `<w:pStyle w:val="Heading1"/><w:jc w:val="center"/>`) {
		t.Error("title is not a centered Heading1")
	}
	if !strings.Contains(document, `<w:pStyle w:val="Heading2"/>`) {
		t.Error("heading paragraph missing")
	}
	if !strings.Contains(document, `<w:ind w:left="720"/>`) {
		t.Error("numbered clause indentation missing")
	}
	if !strings.Contains(document, "<w:tbl>") {
		t.Error("requisites table missing")
	}
	if !strings.Contains(document, `<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/>`) {
		t.Error("page margins missing")
	}
}

func TestBuilderEscapesText(t *testing.T) {
	builder := NewBuilder()
	builder.Paragraph(`Текст с <тегами> и "кавычками"`, false)

	data, err := builder.Package()
	if err != nil {
		t.Fatalf("build package: %v", err)
	}
	pkg, err := OpenPackage(data)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	part, _ := pkg.Part(DocumentPart)
	if !strings.Contains(string(part), `Текст с &lt;тегами&gt; и &quot;кавычками&quot;`) {
		t.Fatalf("body text not escaped: %s", part)
	}
}

func TestBuilderSkipsEmptyTable(t *testing.T) {
	builder := NewBuilder()
	builder.Table(nil)

	data, err := builder.Package()
	if err != nil {
		t.Fatalf("build package: %v", err)
	}
	pkg, err := OpenPackage(data)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	part, _ := pkg.Part(DocumentPart)
	if strings.Contains(string(part), "<w:tbl>") {
		t.Fatal("empty table was rendered")
	}
}
