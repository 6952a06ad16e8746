package io_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
	hpio "github.com/matzehuels/hierpart/pkg/io"
)

func tutorialX(t testing.TB) *hierpart.Partition[string] {
	t.Helper()
	p, err := hierpart.New([]string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	add := func(parent hierpart.ModuleID, elems ...string) hierpart.ModuleID {
		id, err := p.AddChild(parent, elems)
		require.NoError(t, err)
		return id
	}
	abc := add(0, "a", "b", "c")
	add(0, "d", "e", "f")
	add(abc, "a")
	bc := add(abc, "b", "c")
	add(bc, "b")
	add(bc, "c")
	return p
}

// partial leaves d, e and f as implicit singletons of the root.
func partial(t testing.TB) *hierpart.Partition[string] {
	t.Helper()
	p, err := hierpart.New([]string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	abc, err := p.AddChild(0, []string{"a", "b", "c"})
	require.NoError(t, err)
	_, err = p.AddChild(abc, []string{"b"})
	require.NoError(t, err)
	return p
}

func TestRoundTrip(t *testing.T) {
	for _, f := range hpio.Formats {
		for name, build := range map[string]func(testing.TB) *hierpart.Partition[string]{
			"tutorial": tutorialX,
			"partial":  partial,
		} {
			t.Run(string(f)+"/"+name, func(t *testing.T) {
				p := build(t)
				var buf bytes.Buffer
				require.NoError(t, hpio.Write(p, &buf, f))

				got, err := hpio.Read(&buf, f)
				require.NoError(t, err)
				assert.True(t, hierpart.Equivalent(p, got))
				assert.Equal(t, p.Complete(), got.Complete())
			})
		}
	}
}

func TestDocumentKeepsIdentifiers(t *testing.T) {
	p := tutorialX(t)
	doc := hpio.FromPartition(p)
	require.Len(t, doc.Modules, 7)
	assert.Nil(t, doc.Modules[0].Parent)
	assert.Equal(t, 4, *doc.Modules[5].Parent)
	assert.Equal(t, []string{"b"}, doc.Modules[5].Elements)

	got, err := doc.Partition()
	require.NoError(t, err)
	assert.Equal(t, p.Len(), got.Len())
	for id, elems := range p.Show() {
		assert.Equal(t, elems, got.Elements(id))
	}
}

func TestWriteJSON(t *testing.T) {
	p, err := hierpart.New([]string{"a", "b"})
	require.NoError(t, err)
	_, err = p.AddChild(0, []string{"a"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hpio.WriteJSON(p, &buf))
	want := `{
  "modules": [
    {
      "id": 0,
      "elements": [
        "a",
        "b"
      ]
    },
    {
      "id": 1,
      "parent": 0,
      "elements": [
        "a"
      ]
    }
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code herrors.Code
		is   error
	}{
		{"malformed", `{"modules": [`, herrors.ErrCodeInvalidFormat, nil},
		{"no root", `{"modules": [{"id": 1, "parent": 0, "elements": ["a"]}]}`, herrors.ErrCodeInvalidFormat, nil},
		{"two roots", `{"modules": [{"id": 0, "elements": ["a"]}, {"id": 1, "elements": ["a"]}]}`, herrors.ErrCodeInvalidFormat, nil},
		{"parent after child", `{"modules": [{"id": 0, "elements": ["a","b"]}, {"id": 2, "parent": 1, "elements": ["a"]}, {"id": 1, "parent": 0, "elements": ["a"]}]}`, herrors.ErrCodeInvalidFormat, nil},
		{"duplicate id", `{"modules": [{"id": 0, "elements": ["a","b"]}, {"id": 1, "parent": 0, "elements": ["a"]}, {"id": 1, "parent": 0, "elements": ["b"]}]}`, herrors.ErrCodeInvalidFormat, nil},
		{"empty universe", `{"modules": [{"id": 0, "elements": []}]}`, herrors.ErrCodeInvalidUniverse, hierpart.ErrInvalidUniverse},
		{"not a subset", `{"modules": [{"id": 0, "elements": ["a","b"]}, {"id": 1, "parent": 0, "elements": ["c"]}]}`, herrors.ErrCodeNotASubset, hierpart.ErrNotASubset},
		{"overlap", `{"modules": [{"id": 0, "elements": ["a","b"]}, {"id": 1, "parent": 0, "elements": ["a"]}, {"id": 2, "parent": 0, "elements": ["a","b"]}]}`, herrors.ErrCodeOverlap, hierpart.ErrOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hpio.ReadJSON(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.code, herrors.GetCode(err))
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestWriteYAML(t *testing.T) {
	p, err := hierpart.New([]string{"a", "b"})
	require.NoError(t, err)
	_, err = p.AddChild(0, []string{"b"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hpio.WriteYAML(p, &buf))
	want := `modules:
  - id: 0
    elements: [a, b]
  - id: 1
    parent: 0
    elements: [b]
`
	assert.Equal(t, want, buf.String())
}

func TestReadYAMLMalformed(t *testing.T) {
	_, err := hpio.ReadYAML(strings.NewReader("modules: [\n"))
	assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidFormat))
}

func TestWritePaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, hpio.WritePaths(tutorialX(t), &buf))
	assert.Equal(t, `0,0 "a"
0,1,0 "b"
0,1,1 "c"
1 "d","e","f"
`, buf.String())

	buf.Reset()
	require.NoError(t, hpio.WritePaths(partial(t), &buf))
	assert.Equal(t, `- "d","e","f"
0 "a","c"
0,0 "b"
`, buf.String())
}

func TestWritePathsRejectsElement(t *testing.T) {
	p, err := hierpart.New([]string{"a b"})
	require.NoError(t, err)
	err = hpio.WritePaths(p, &bytes.Buffer{})
	assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidElement))
}

func TestReadPaths(t *testing.T) {
	in := `# tutorial tree, written by hand
1 "d","e","f"
0,0 "a"

0,1,1 "c"
0,1,0 "b"
`
	p, err := hpio.ReadPaths(strings.NewReader(in))
	require.NoError(t, err)
	assert.True(t, hierpart.Equivalent(tutorialX(t), p))
	assert.Equal(t, []string{"d", "e", "f"}, p.Elements(1))
}

func TestReadPathsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code herrors.Code
	}{
		{"empty", "", herrors.ErrCodeInvalidUniverse},
		{"missing elements", "0,1\n", herrors.ErrCodeInvalidFormat},
		{"bad path", `x "a"` + "\n", herrors.ErrCodeInvalidFormat},
		{"unquoted", "0 a,b\n", herrors.ErrCodeInvalidFormat},
		{"empty element", `0 ""` + "\n", herrors.ErrCodeInvalidElement},
		{"duplicate", "0 \"a\"\n1 \"a\"\n", herrors.ErrCodeInvalidUniverse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hpio.ReadPaths(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Equal(t, tt.code, herrors.GetCode(err))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]hpio.Format{
		"tree.json":    hpio.FormatJSON,
		"tree.YAML":    hpio.FormatYAML,
		"a/b/tree.yml": hpio.FormatYAML,
		"tree.txt":     hpio.FormatPaths,
		"tree.hp":      hpio.FormatPaths,
		"tree.paths":   hpio.FormatPaths,
	}
	for path, want := range tests {
		got, err := hpio.DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := hpio.DetectFormat("tree.csv")
	assert.True(t, herrors.Is(err, herrors.ErrCodeUnsupported))
}

func TestParseFormat(t *testing.T) {
	f, err := hpio.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, hpio.FormatYAML, f)

	_, err = hpio.ParseFormat("xml")
	assert.True(t, herrors.Is(err, herrors.ErrCodeUnsupported))
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	p := tutorialX(t)
	for _, name := range []string{"x.json", "x.yaml", "x.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, hpio.Export(p, path))

		got, err := hpio.Import(path)
		require.NoError(t, err, name)
		assert.True(t, hierpart.Equivalent(p, got), name)
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := hpio.Import(filepath.Join(dir, "missing.json"))
	assert.True(t, herrors.Is(err, herrors.ErrCodeFileNotFound))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = hpio.Import(bad)
	assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidFormat))

	_, err = hpio.Import("")
	assert.Error(t, err)
}

func TestExportUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.out")
	err := hpio.ExportAs(tutorialX(t), path, hpio.Format("xml"))
	assert.True(t, herrors.Is(err, herrors.ErrCodeUnsupported))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
