package differ

import (
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/testutil"
)

func TestDifferNew(t *testing.T) {
	d := New()
	require.NotNil(t, d)

	assert.Nil(t, d.Methods)
	assert.True(t, d.CompareSchemas)
	assert.True(t, d.CompareTags)
	assert.True(t, d.CompareServers)
	assert.False(t, d.CompareResponses)
	assert.Equal(t, ParamIdentityName, d.ParamIdentity)
	assert.Equal(t, runtime.GOMAXPROCS(0), d.workers())
	assert.IsType(t, apidoc.NopLogger{}, d.logger())
}

func TestDifferZeroValue(t *testing.T) {
	var d Differ
	result, err := d.Diff(testutil.NewDetailedDocument(), testutil.NewDocument(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"/cart", "/orders"}, result.RemovedPaths())
	assert.Nil(t, result.Schemas)
	assert.Nil(t, result.Tags)
	assert.Nil(t, result.Servers)
}

func TestDiffWithOptions_Documents(t *testing.T) {
	oldDoc := testutil.NewDetailedDocument()
	newDoc := testutil.NewDetailedDocument()
	newDoc.Paths["/orders"].Operations["get"].ResponseCodes = []string{"200", "404"}

	result, err := DiffWithOptions(
		WithSourceDocument(oldDoc),
		WithTargetDocument(newDoc),
		WithCompareResponses(true),
		WithWorkers(2),
	)
	require.NoError(t, err)
	op := result.Endpoint("/orders").Operation("get")
	require.NotNil(t, op)
	assert.Equal(t, []ChangeRecord{{Kind: KindResponseAdded, Detail: "404"}}, op.Records)
}

func TestDiffWithOptions_Methods(t *testing.T) {
	oldDoc := testutil.NewDetailedDocument()
	newDoc := testutil.NewDocument(nil)

	result, err := DiffWithOptions(
		WithSourceDocument(oldDoc),
		WithTargetDocument(newDoc),
		WithMethods(" POST "),
	)
	require.NoError(t, err)
	require.Len(t, result.PathsRemoved, 2)
	assert.Empty(t, result.PathsRemoved[0].Operations, "/cart has no post")
	require.Len(t, result.PathsRemoved[1].Operations, 1)
	assert.Equal(t, "post", result.PathsRemoved[1].Operations[0].Method)
	assert.Equal(t, 1, result.Stats.OldOperations)
}

func TestDiffWithOptions_ParamIdentity(t *testing.T) {
	entry := func(in string) *apidoc.PathEntry {
		return testutil.NewPathEntry(map[string]*apidoc.Operation{
			"get": {Parameters: []apidoc.Parameter{{Name: "id", In: in}}},
		})
	}
	oldDoc := testutil.NewDocument(map[string]*apidoc.PathEntry{"/a": entry("query")})
	newDoc := testutil.NewDocument(map[string]*apidoc.PathEntry{"/a": entry("header")})

	result, err := DiffWithOptions(
		WithSourceDocument(oldDoc),
		WithTargetDocument(newDoc),
		WithParamIdentity(ParamIdentityNameIn),
	)
	require.NoError(t, err)
	op := result.Endpoint("/a").Operation("get")
	require.NotNil(t, op)
	assert.Equal(t, 1, op.Count(KindParameterAdded))
	assert.Equal(t, 1, op.Count(KindParameterRemoved))
	assert.Equal(t, 0, op.Count(KindParameterChanged))
}

func TestDiffWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := apidoc.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := DiffWithOptions(
		WithSourceDocument(testutil.NewDetailedDocument()),
		WithTargetDocument(testutil.NewDetailedDocument()),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "comparing documents")
	assert.Contains(t, buf.String(), "unchanged=2")
}

func TestDiffWithOptions_InvalidOptions(t *testing.T) {
	doc := testutil.NewDocument(nil)
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "no source", opts: []Option{WithTargetDocument(doc)}},
		{name: "no target", opts: []Option{WithSourceDocument(doc)}},
		{name: "two sources", opts: []Option{WithSourceDocument(doc), WithSourceFilePath("a.json"), WithTargetDocument(doc)}},
		{name: "two targets", opts: []Option{WithSourceDocument(doc), WithTargetDocument(doc), WithTargetFilePath("b.json")}},
		{name: "nil source document", opts: []Option{WithSourceDocument(nil), WithTargetDocument(doc)}},
		{name: "no methods", opts: []Option{WithSourceDocument(doc), WithTargetDocument(doc), WithMethods()}},
		{name: "blank method", opts: []Option{WithSourceDocument(doc), WithTargetDocument(doc), WithMethods("get", " ")}},
		{name: "zero workers", opts: []Option{WithSourceDocument(doc), WithTargetDocument(doc), WithWorkers(0)}},
		{name: "unknown identity", opts: []Option{WithSourceDocument(doc), WithTargetDocument(doc), WithParamIdentity("location")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DiffWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, apierrors.ErrConfig), "got %v", err)
		})
	}
}

func TestDiffWithOptions_FileErrors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		_, err := DiffWithOptions(
			WithSourceFilePath("testdata/nonexistent.yaml"),
			WithTargetFilePath("../apidoc/testdata/shop-v2.yaml"),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierrors.ErrParse))
		assert.Contains(t, err.Error(), "failed to parse source")
	})

	t.Run("malformed target", func(t *testing.T) {
		target := testutil.WriteTempJSON(t, map[string]any{"paths": []any{"/a"}})
		_, err := DiffWithOptions(
			WithSourceFilePath("../apidoc/testdata/shop-v1.json"),
			WithTargetFilePath(target),
		)
		require.Error(t, err)
		var de *apierrors.DocumentError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, apierrors.DocumentNew, de.Document)
		assert.Equal(t, "paths", de.Field)
	})
}
