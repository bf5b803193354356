package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidiff/apierrors"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swagger.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHandleFormat_Stdout(t *testing.T) {
	stdout, stderr := captureOutput(t)
	in := writeInput(t, `{"paths":{"/b":{},"/a":{}},"info":{"title":"Cửa hàng"},"note":"a<b"}`)

	require.NoError(t, HandleFormat([]string{in}))

	want := `{
  "paths": {
    "/b": {},
    "/a": {}
  },
  "info": {
    "title": "Cửa hàng"
  },
  "note": "a<b"
}
`
	assert.Equal(t, want, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestHandleFormat_ToFile(t *testing.T) {
	tests := []struct {
		name string
		args func(in, out string) []string
	}{
		{"positional", func(in, out string) []string { return []string{in, out} }},
		{"flag", func(in, out string) []string { return []string{"-o", out, in} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr := captureOutput(t)
			in := writeInput(t, `{"b":1,"a":[1,2]}`)
			out := filepath.Join(t.TempDir(), "formatted.json")

			require.NoError(t, HandleFormat(tt.args(in, out)))
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), "Formatted")

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}\n", string(data))
		})
	}
}

func TestHandleFormat_Quiet(t *testing.T) {
	_, stderr := captureOutput(t)
	in := writeInput(t, `{}`)
	require.NoError(t, HandleFormat([]string{"-q", in, filepath.Join(t.TempDir(), "out.json")}))
	assert.Empty(t, stderr.String())
}

func TestHandleFormat_Errors(t *testing.T) {
	t.Run("no args", func(t *testing.T) {
		captureOutput(t)
		assert.Error(t, HandleFormat(nil))
	})

	t.Run("too many args", func(t *testing.T) {
		captureOutput(t)
		assert.Error(t, HandleFormat([]string{"a", "b", "c"}))
	})

	t.Run("output twice", func(t *testing.T) {
		captureOutput(t)
		in := writeInput(t, `{}`)
		assert.Error(t, HandleFormat([]string{"-o", "x.json", in, "y.json"}))
	})

	t.Run("missing input", func(t *testing.T) {
		captureOutput(t)
		err := HandleFormat([]string{filepath.Join(t.TempDir(), "missing.json")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid json", func(t *testing.T) {
		captureOutput(t)
		err := HandleFormat([]string{writeInput(t, `{"a":`)})
		assert.ErrorIs(t, err, apierrors.ErrParse)
	})

	t.Run("overwrite input", func(t *testing.T) {
		captureOutput(t)
		in := writeInput(t, `{}`)
		err := HandleFormat([]string{in, in})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input file")
	})

	t.Run("help", func(t *testing.T) {
		assert.NoError(t, HandleFormat([]string{"--help"}))
	})
}

func TestHandleMCP_Args(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
	assert.Error(t, HandleMCP([]string{"extra"}))
}
