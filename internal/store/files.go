package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

const bodiesDir = "template-bodies"

var unsafeCodeChars = regexp.MustCompile(`[^a-zA-Z0-9/_-]+`)

// Files writes template bodies and rendered output below a single storage
// root. Writes are atomic so a crash never leaves a half-written package
// behind.
type Files struct {
	root string
}

// NewFiles prepares the storage root.
func NewFiles(root string) (*Files, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve storage root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, bodiesDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: prepare storage root: %w", err)
	}
	return &Files{root: abs}, nil
}

// WriteBody stores a template body under a sanitized code directory with a
// fresh unique filename and returns the path relative to the root.
func (f *Files) WriteBody(code string, data []byte) (string, error) {
	dir := filepath.Join(f.root, bodiesDir, sanitizeCode(code))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("store: prepare body directory: %w", err)
	}

	name := uuid.NewString() + ".docx"
	absolute := filepath.Join(dir, name)
	if err := atomic.WriteFile(absolute, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("store: write template body: %w", err)
	}

	rel, err := filepath.Rel(f.root, absolute)
	if err != nil {
		return "", fmt.Errorf("store: relativize body path: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// WriteOutput stores rendered document bytes at a path below the root.
func (f *Files) WriteOutput(relPath string, data []byte) (string, error) {
	absolute, err := f.Resolve(relPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absolute), 0o755); err != nil {
		return "", fmt.Errorf("store: prepare output directory: %w", err)
	}
	if err := atomic.WriteFile(absolute, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("store: write output: %w", err)
	}
	return absolute, nil
}

// Resolve maps a stored relative path onto an absolute path below the root,
// rejecting traversal outside it. It implements the compiler's FileResolver.
func (f *Files) Resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("store: path %q escapes storage root", relPath)
	}
	return filepath.Join(f.root, cleaned), nil
}

func sanitizeCode(code string) string {
	sanitized := unsafeCodeChars.ReplaceAllString(code, "-")
	sanitized = strings.Trim(sanitized, "-/")
	if sanitized == "" {
		return "template"
	}
	return sanitized
}
