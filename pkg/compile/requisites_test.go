package compile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docgenlab/go-docgen/pkg/config"
	"github.com/docgenlab/go-docgen/pkg/ooxml"
)

func TestRequisiteItems(t *testing.T) {
	fields := []config.Field{
		{Code: "inn", Label: "ИНН", Order: 1},
		{Code: "inn", Label: "ИНН повторно", Order: 2},
		{Code: "name_full", Order: 3},
		{Code: "kpp", Label: "КПП", Order: 4},
		{Code: "seal_note", Label: "Печать", Order: 5},
	}
	requisites := map[string]any{
		"inn":       "7701234567",
		"seal_note": nil, // explicit null falls back to the organization
	}
	organization := map[string]any{
		"inn":       "7709876543",
		"name_full": `ООО "Ромашка"`,
		"seal_note": "М.П.",
	}

	got := RequisiteItems(fields, requisites, organization)

	want := []ooxml.RequisiteItem{
		{Label: "ИНН", Value: "7701234567"},
		{Label: "Полное наименование", Value: `ООО "Ромашка"`},
		{Label: "Печать", Value: "М.П."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRequisiteItemsEmptyStringDoesNotFallBack(t *testing.T) {
	// an empty string the user typed is a real value, not an absence; the
	// row is dropped instead of falling back to the organization profile
	got := RequisiteItems(
		[]config.Field{{Code: "kpp", Label: "КПП", Order: 1}},
		map[string]any{"kpp": ""},
		map[string]any{"kpp": "770101001"},
	)
	if len(got) != 0 {
		t.Fatalf("got %+v, want no rows", got)
	}
}

func TestRequisiteItemsAllEmpty(t *testing.T) {
	got := RequisiteItems(
		[]config.Field{{Code: "inn", Label: "ИНН", Order: 1}},
		map[string]any{},
		map[string]any{},
	)
	if len(got) != 0 {
		t.Fatalf("got %+v, want no rows", got)
	}
}
