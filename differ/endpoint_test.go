package differ

import (
	"errors"
	"testing"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffEndpoint_MethodAdded(t *testing.T) {
	oldEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"get": {Summary: "Get cart"},
	})
	newEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"get":    {Summary: "Get cart"},
		"delete": {Summary: "Clear cart"},
	})

	got, err := New().DiffEndpoint("/cart", oldEntry, newEntry)
	require.NoError(t, err)
	assert.Equal(t, "/cart", got.Path)
	assert.Equal(t, []string{"delete"}, got.MethodsAdded)
	assert.Empty(t, got.MethodsRemoved)
	assert.Empty(t, got.Operations, "unchanged get contributes nothing")
	assert.False(t, got.IsEmpty())
}

func TestDiffEndpoint_Operations(t *testing.T) {
	oldEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"get":   {Summary: "Get order"},
		"put":   {Summary: "Replace order"},
		"patch": {Summary: "Update order"},
	})
	newEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"get":   {Summary: "Get order"},
		"put":   {Summary: "Replace an order"},
		"patch": {Summary: "Update order", HasRequestBody: true},
	})

	got, err := New().DiffEndpoint("/orders/{id}", oldEntry, newEntry)
	require.NoError(t, err)
	require.Len(t, got.Operations, 2)
	assert.Equal(t, "patch", got.Operations[0].Method)
	assert.Equal(t, "put", got.Operations[1].Method)
	assert.Nil(t, got.Operation("get"))
	require.NotNil(t, got.Operation("patch"))
	assert.Equal(t, KindRequestBodyAdded, got.Operation("patch").Records[0].Kind)
}

func TestDiffEndpoint_MethodSet(t *testing.T) {
	oldEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"get":     {},
		"options": {},
	})
	newEntry := testutil.NewPathEntry(map[string]*apidoc.Operation{
		"head":  {},
		"trace": {Summary: "x"},
	})

	t.Run("default methods", func(t *testing.T) {
		got, err := New().DiffEndpoint("/a", oldEntry, newEntry)
		require.NoError(t, err)
		assert.Empty(t, got.MethodsAdded)
		assert.Equal(t, []string{"get"}, got.MethodsRemoved)
	})

	t.Run("custom methods", func(t *testing.T) {
		d := New()
		d.Methods = []string{"GET", "options", "head"}
		got, err := d.DiffEndpoint("/a", oldEntry, newEntry)
		require.NoError(t, err)
		assert.Equal(t, []string{"head"}, got.MethodsAdded)
		assert.Equal(t, []string{"get", "options"}, got.MethodsRemoved)
	})
}

func TestDiffEndpoint_Errors(t *testing.T) {
	rejected := &apierrors.MethodEntryError{Path: "/a", Method: "post", Message: "expected an operation mapping, got string"}
	bad := &apidoc.PathEntry{
		Operations: map[string]*apidoc.Operation{"get": {}},
		Rejected:   map[string]error{"post": rejected},
	}
	good := testutil.NewPathEntry(map[string]*apidoc.Operation{"get": {}})

	t.Run("rejected entry in new document", func(t *testing.T) {
		_, err := New().DiffEndpoint("/a", good, bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apierrors.ErrInvalidMethodEntry))

		var me *apierrors.MethodEntryError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, apierrors.DocumentNew, me.Document)
		assert.Equal(t, "/a", me.Path)
		assert.Equal(t, "post", me.Method)
		assert.Empty(t, rejected.Document, "the decoded error is not modified")
	})

	t.Run("rejected entry outside the method set", func(t *testing.T) {
		d := New()
		d.Methods = []string{"get"}
		got, err := d.DiffEndpoint("/a", good, bad)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})

	t.Run("nil operation", func(t *testing.T) {
		nilOp := &apidoc.PathEntry{Operations: map[string]*apidoc.Operation{"get": nil}}
		_, err := New().DiffEndpoint("/a", nilOp, good)
		var me *apierrors.MethodEntryError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, apierrors.DocumentOld, me.Document)
		assert.Equal(t, "get", me.Method)
	})

	t.Run("nil entry", func(t *testing.T) {
		_, err := New().DiffEndpoint("/a", good, nil)
		var de *apierrors.DocumentError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, apierrors.DocumentNew, de.Document)
		assert.Equal(t, "/a", de.Path)
	})
}
