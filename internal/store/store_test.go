package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "docgen.db"), filepath.Join(dir, "storage"),
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSaveBodyAndLoad(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	relPath, err := st.SaveBody(ctx, "contract", "Договор", []byte("первое тело"))
	if err != nil {
		t.Fatalf("save body: %v", err)
	}
	if !strings.HasSuffix(relPath, ".docx") {
		t.Errorf("stored path %q has no .docx suffix", relPath)
	}

	absolute, err := st.Files().Resolve(relPath)
	if err != nil {
		t.Fatalf("resolve stored path: %v", err)
	}
	content, err := os.ReadFile(absolute)
	if err != nil {
		t.Fatalf("read stored body: %v", err)
	}
	if string(content) != "первое тело" {
		t.Errorf("stored body = %q", content)
	}

	record, err := st.Template(ctx, "contract")
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.Name != "Договор" || record.Version != 1 || record.BodyPath != relPath {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestSaveBodyBumpsVersion(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if _, err := st.SaveBody(ctx, "contract", "Договор", []byte("v1")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := st.SaveBody(ctx, "contract", "Договор v2", []byte("v2"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	record, err := st.Template(ctx, "contract")
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.Version != 2 {
		t.Errorf("version = %d, want 2", record.Version)
	}
	if record.Name != "Договор v2" || record.BodyPath != second {
		t.Errorf("record not updated: %+v", record)
	}
}

func TestSaveConfig(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if _, err := st.SaveBody(ctx, "contract", "Договор", []byte("тело")); err != nil {
		t.Fatalf("save body: %v", err)
	}

	document := []byte(`{"appendMode":"auto","placeholderBindings":[{"name":"inn"}]}`)
	if err := st.SaveConfig(ctx, "contract", document); err != nil {
		t.Fatalf("save config: %v", err)
	}

	record, err := st.Template(ctx, "contract")
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if string(record.Config) != string(document) {
		t.Errorf("config = %s", record.Config)
	}
}

func TestSaveConfigUnknownCode(t *testing.T) {
	st := openStore(t)
	err := st.SaveConfig(context.Background(), "missing", []byte("{}"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestTemplateNotFound(t *testing.T) {
	st := openStore(t)
	if _, err := st.Template(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	for _, code := range []string{"zayavlenie", "contract"} {
		if _, err := st.SaveBody(ctx, code, code, []byte(code)); err != nil {
			t.Fatalf("save %s: %v", code, err)
		}
	}

	records, err := st.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 || records[0].Code != "contract" || records[1].Code != "zayavlenie" {
		t.Fatalf("unexpected listing: %+v", records)
	}
}

func TestResolveRejectsTraversal(t *testing.T) {
	st := openStore(t)
	for _, path := range []string{"../outside", "/etc/passwd"} {
		if _, err := st.Files().Resolve(path); err == nil {
			t.Errorf("Resolve(%q) accepted a path outside the root", path)
		}
	}
}

func TestSanitizeCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"contract", "contract"},
		{"заявление", "template"},
		{"a b/c", "a-b/c"},
		{"../../evil", "evil"},
	}
	for _, tc := range cases {
		if got := sanitizeCode(tc.code); got != tc.want {
			t.Errorf("sanitizeCode(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}
