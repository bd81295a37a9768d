// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package definitions

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/mimemap/internal/mapping"
)

func TestGenerateMapping_Fixture(t *testing.T) {
	m, err := GenerateMapping(filepath.Join("testdata", "mime.types"))
	require.NoError(t, err)

	want := &mapping.Mapping{
		Mimes: map[string][]string{
			"json": {"application/json"},
			"jpeg": {"image/jpeg"},
			"jpg":  {"image/jpeg"},
			"uvi":  {"image/vnd.dece.graphic"},
			"uvvi": {"image/vnd.dece.graphic"},
			"uvg":  {"image/vnd.dece.graphic"},
			"uvvg": {"image/vnd.dece.graphic"},
			"bar":  {"foo"},
			"qux":  {"foo"},
			"baz":  {"foo"},
		},
		Extensions: map[string][]string{
			"application/json":       {"json"},
			"image/jpeg":             {"jpeg", "jpg"},
			"image/vnd.dece.graphic": {"uvi", "uvvi", "uvg", "uvvg"},
			"foo":                    {"bar", "qux", "baz"},
		},
	}

	assert.Equal(t, want, m)
	assert.NoError(t, m.Mirrored())
}

func TestGenerateMapping_EmptyPath(t *testing.T) {
	m, err := GenerateMapping("")
	require.NoError(t, err)
	assert.Equal(t, mapping.New(), m)
}

func TestGenerateMapping_Missing(t *testing.T) {
	_, err := GenerateMapping(filepath.Join(t.TempDir(), "nope.types"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string][]string
	}{
		{
			name:  "blank and comment lines",
			input: "\n   \n# application/json json\n\t# indented comment\n",
			want:  map[string][]string{},
		},
		{
			name:  "mime without extensions",
			input: "text/plain\ntext/html   # no extensions here\n",
			want:  map[string][]string{},
		},
		{
			name:  "tabs and spaces between extensions",
			input: "text/html\thtml \t htm\tshtml\n",
			want:  map[string][]string{"text/html": {"html", "htm", "shtml"}},
		},
		{
			name:  "repeated key appends in file order",
			input: "a/b x\nc/d y\na/b z\n",
			want:  map[string][]string{"a/b": {"x", "z"}, "c/d": {"y"}},
		},
		{
			name:  "duplicates are kept",
			input: "a/b x x\n",
			want:  map[string][]string{"a/b": {"x", "x"}},
		},
		{
			name:  "no trailing newline",
			input: "application/wasm wasm",
			want:  map[string][]string{"application/wasm": {"wasm"}},
		},
		{
			name:  "crlf line endings",
			input: "text/css css\r\ntext/csv csv\r\n",
			want:  map[string][]string{"text/css": {"css"}, "text/csv": {"csv"}},
		},
		{
			name:  "leading slash is not a mime type",
			input: "/text/plain txt\n",
			want:  map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Extensions)
			assert.NoError(t, m.Mirrored())
		})
	}
}

// failingReader returns some data and then a non-EOF error.
type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("device went away")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestParse_UnexpectedEOF(t *testing.T) {
	_, err := Parse(&failingReader{data: "text/plain txt\n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "device went away")
}

func TestParse_LineTooLong(t *testing.T) {
	long := "text/plain " + strings.Repeat("x", maxLineSize+1)
	_, err := Parse(io.MultiReader(strings.NewReader(long)))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}
