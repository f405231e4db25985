// Package manifest reads and rewrites a project's package.json.
//
// The manifest is kept as raw JSON bytes rather than decoded into a Go map,
// so a read-modify-write cycle preserves the key order npm produced; a new
// key is appended after the existing ones. Reads go through
// github.com/tidwall/jsonc (tolerating comments and trailing commas) and
// github.com/tidwall/gjson; edits use github.com/tidwall/sjson. Writes are
// re-indented with two spaces and end with a newline, the layout npm itself
// uses.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// FileName is the manifest file name inside a project directory.
const FileName = "package.json"

// indent is the per-level indentation of written manifests.
const indent = "  "

// ErrNotObject is returned when the manifest's top-level value is not a
// JSON object.
var ErrNotObject = errors.New("manifest is not a JSON object")

// Manifest is an in-memory package.json.
type Manifest struct {
	path string
	data []byte
}

// PathIn returns the manifest path for a project directory.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read loads dir/package.json.
//
// The returned error wraps os.ErrNotExist when the file is missing.
func Read(dir string) (*Manifest, error) {
	path := PathIn(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse builds a Manifest from raw bytes. path is where Write will save it.
func Parse(path string, data []byte) (*Manifest, error) {
	clean := jsonc.ToJSON(data)
	if !gjson.ValidBytes(clean) {
		return nil, fmt.Errorf("failed to parse %s: invalid JSON", path)
	}
	if !gjson.ParseBytes(clean).IsObject() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, ErrNotObject)
	}

	return &Manifest{path: path, data: clean}, nil
}

// Path returns the file the manifest was read from.
func (m *Manifest) Path() string {
	return m.path
}

// Name returns the "name" field, or "" when it is absent.
func (m *Manifest) Name() string {
	return m.Get("name").String()
}

// Get returns the top-level field key. Dots and wildcards in key are taken
// literally, not as a path.
func (m *Manifest) Get(key string) gjson.Result {
	return gjson.GetBytes(m.data, escapeKey(key))
}

// Set assigns value to the top-level field key. An existing field is
// replaced in place; a new one is appended after the last field.
func (m *Manifest) Set(key string, value interface{}) error {
	updated, err := sjson.SetBytes(m.data, escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("failed to set %q in %s: %w", key, m.path, err)
	}
	m.data = updated
	return nil
}

// Bytes returns the manifest formatted with two-space indentation and a
// trailing newline.
func (m *Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(m.data), "", indent); err != nil {
		return nil, fmt.Errorf("failed to format %s: %w", m.path, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write overwrites the manifest file with the formatted contents.
func (m *Manifest) Write() error {
	data, err := m.Bytes()
	if err != nil {
		return err
	}

	// 0644: the file is committed and read by every tool in the project.
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", m.path, err)
	}
	return nil
}

// escapeKey escapes gjson/sjson path metacharacters so key addresses a
// single top-level field.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\', '[', ']', '{', '}', '(', ')', ',', '"', '~':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
