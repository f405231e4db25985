package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// npmInitOutput is what `npm init --yes` writes for a directory named demo-app.
const npmInitOutput = `{
  "name": "demo-app",
  "version": "1.0.0",
  "description": "",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "keywords": [],
  "author": "",
  "license": "ISC"
}
`

// writeManifest creates dir/package.json with content and returns dir.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestRead(t *testing.T) {
	dir := writeManifest(t, npmInitOutput)

	m, err := Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "demo-app", m.Name())
	assert.Equal(t, "ISC", m.Get("license").String())
	assert.Equal(t, filepath.Join(dir, FileName), m.Path())
}

// TestSetAndWrite_AppendsField verifies the written manifest equals the
// original plus exactly one trailing field, with two-space indentation.
func TestSetAndWrite_AppendsField(t *testing.T) {
	dir := writeManifest(t, npmInitOutput)

	m, err := Read(dir)
	require.NoError(t, err)
	require.NoError(t, m.Set("module", "commonjs"))
	require.NoError(t, m.Write())

	written, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	expected := `{
  "name": "demo-app",
  "version": "1.0.0",
  "description": "",
  "main": "index.js",
  "scripts": {
    "test": "echo \"Error: no test specified\" && exit 1"
  },
  "keywords": [],
  "author": "",
  "license": "ISC",
  "module": "commonjs"
}
`
	assert.Equal(t, expected, string(written))
}

// TestSet_ReplacesInPlace verifies an existing field keeps its position.
func TestSet_ReplacesInPlace(t *testing.T) {
	m, err := Parse("package.json", []byte(`{"name":"a","module":"module","license":"MIT"}`))
	require.NoError(t, err)

	require.NoError(t, m.Set("module", "commonjs"))
	out, err := m.Bytes()
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"module\": \"commonjs\",\n  \"license\": \"MIT\"\n}\n", string(out))
}

// TestSet_LiteralDottedKey verifies keys are not interpreted as paths.
func TestSet_LiteralDottedKey(t *testing.T) {
	m, err := Parse("package.json", []byte(`{"name":"a"}`))
	require.NoError(t, err)

	require.NoError(t, m.Set("exports.node", true))

	assert.True(t, m.Get("exports.node").Bool())
	assert.False(t, m.Get("exports").Exists(), "a dotted key must not create a nested object")
}

// TestParse_JSONC verifies comments and trailing commas are tolerated.
func TestParse_JSONC(t *testing.T) {
	m, err := Parse("package.json", []byte("{\n  // generated\n  \"name\": \"commented\",\n}\n"))
	require.NoError(t, err)

	assert.Equal(t, "commented", m.Name())
	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"commented\"\n}\n", string(out))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `{"name": "a"`},
		{name: "array", content: `["a"]`},
		{name: "string", content: `"a"`},
		{name: "empty", content: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("package.json", []byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParse_NotObjectSentinel(t *testing.T) {
	_, err := Parse("package.json", []byte(`[]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestName_Absent(t *testing.T) {
	m, err := Parse("package.json", []byte(`{"version":"1.0.0"}`))
	require.NoError(t, err)
	assert.Empty(t, m.Name())
}
