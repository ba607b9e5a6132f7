package ooxml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docgenlab/go-docgen/pkg/token"
)

func TestScanText(t *testing.T) {
	cases := []struct {
		name         string
		text         string
		wantNames    []string
		wantWarnings int
	}{
		{
			name:      "plain token",
			text:      "Привет, ${user_full_name}!",
			wantNames: []string{"user_full_name"},
		},
		{
			name:      "token with label and default",
			text:      "${city|Город|Москва}",
			wantNames: []string{"city"},
		},
		{
			name:      "repeated tokens all reported",
			text:      "${inn} и снова ${inn}",
			wantNames: []string{"inn", "inn"},
		},
		{
			name:         "stray brace next to a token still yields both tokens",
			text:         "${inn|ИНН}{${ogrn}",
			wantNames:    []string{"inn", "ogrn"},
			wantWarnings: 1,
		},
		{
			name:         "unterminated placeholder warns",
			text:         "Итого: ${amount",
			wantWarnings: 1,
		},
		{
			name: "no tokens",
			text: "Обычный текст без плейсхолдеров",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScanText(tc.text)

			var names []string
			for _, tag := range got.Tags {
				names = append(names, tag.Name)
			}
			if diff := cmp.Diff(tc.wantNames, names); diff != "" {
				t.Errorf("tag names mismatch (-want +got):\n%s", diff)
			}
			if len(got.Warnings) != tc.wantWarnings {
				t.Errorf("got %d warnings %v, want %d", len(got.Warnings), got.Warnings, tc.wantWarnings)
			}
		})
	}
}

func TestScanPartAcrossRuns(t *testing.T) {
	xml := `<w:p><w:r><w:t>Дата: ${cur</w:t></w:r>` +
		`<w:r><w:rPr><w:b/></w:rPr><w:t>rent_date}</w:t></w:r></w:p>`

	got := ScanPart(xml)
	if len(got.Tags) != 1 {
		t.Fatalf("got %d tags, want 1", len(got.Tags))
	}
	if got.Tags[0].Name != "current_date" {
		t.Errorf("got name %q, want current_date", got.Tags[0].Name)
	}
}

func TestScanPartIgnoresTextOutsideRuns(t *testing.T) {
	// w:tbl must not be mistaken for an opening w:t
	xml := `<w:tbl>${inn}</w:tbl><w:p><w:r><w:t/></w:r></w:p>`

	got := ScanPart(xml)
	if len(got.Tags) != 0 {
		t.Fatalf("got %d tags from non-run markup, want 0", len(got.Tags))
	}
}

func TestSubstitutePart(t *testing.T) {
	resolver := func(values map[string]string) func(token.Tag) (string, bool) {
		return func(tag token.Tag) (string, bool) {
			value, ok := values[tag.Name]
			return value, ok
		}
	}

	t.Run("single run", func(t *testing.T) {
		xml := `<w:p><w:r><w:t xml:space="preserve">Дата: ${current_date}</w:t></w:r></w:p>`
		got := SubstitutePart(xml, resolver(map[string]string{"current_date": "01.02.2026"}))
		want := `<w:p><w:r><w:t xml:space="preserve">Дата: 01.02.2026</w:t></w:r></w:p>`
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("values are escaped", func(t *testing.T) {
		xml := `<w:p><w:r><w:t>${org_name}</w:t></w:r></w:p>`
		got := SubstitutePart(xml, resolver(map[string]string{"org_name": `ООО "Ромашка" <и партнёры>`}))
		if !strings.Contains(got, `ООО &quot;Ромашка&quot; &lt;и партнёры&gt;`) {
			t.Fatalf("value was not escaped: %q", got)
		}
	})

	t.Run("token split across runs collapses into the first", func(t *testing.T) {
		xml := `<w:p><w:r><w:t>до: ${na</w:t></w:r><w:r><w:t>me} конец</w:t></w:r></w:p>`
		got := SubstitutePart(xml, resolver(map[string]string{"name": "Иван"}))
		want := `<w:p><w:r><w:t>до: Иван</w:t></w:r><w:r><w:t> конец</w:t></w:r></w:p>`
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("unresolved tokens stay untouched", func(t *testing.T) {
		xml := `<w:p><w:r><w:t>${unknown} и ${known}</w:t></w:r></w:p>`
		got := SubstitutePart(xml, resolver(map[string]string{"known": "значение"}))
		if !strings.Contains(got, "${unknown}") {
			t.Errorf("unresolved token was altered: %q", got)
		}
		if !strings.Contains(got, "значение") {
			t.Errorf("resolved token was not substituted: %q", got)
		}
	})

	t.Run("markup outside runs survives byte for byte", func(t *testing.T) {
		xml := `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>${x1}</w:t></w:r></w:p>`
		got := SubstitutePart(xml, resolver(map[string]string{"x1": "y"}))
		if !strings.Contains(got, `<w:pPr><w:jc w:val="center"/></w:pPr>`) {
			t.Fatalf("formatting markup was damaged: %q", got)
		}
	})
}
