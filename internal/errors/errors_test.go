package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder_Build(t *testing.T) {
	base := NewStd("connection refused")
	err := New(base).
		Component("tablestore").
		Category(CategoryNetwork).
		Context("host", "acct.table.core.windows.net").
		Build()

	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, "tablestore", err.Component)
	assert.Equal(t, CategoryNetwork, err.Category)
	assert.Equal(t, "acct.table.core.windows.net", err.GetContext()["host"])
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrorBuilder_Defaults(t *testing.T) {
	err := Newf("something broke").Build()

	assert.Equal(t, ComponentUnknown, err.Component)
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Nil(t, err.GetContext())
}

func TestEnhancedError_Unwrap(t *testing.T) {
	base := NewStd("boom")
	wrapped := fmt.Errorf("outer: %w", base)
	err := New(wrapped).Category(CategoryHTTP).Build()

	assert.True(t, Is(err, base), "expected wrapped error to match through the chain")
}

func TestEnhancedError_IsMatchesCategory(t *testing.T) {
	a := Newf("first").Category(CategoryValidation).Build()
	b := Newf("second").Category(CategoryValidation).Build()
	c := Newf("third").Category(CategoryNetwork).Build()

	assert.True(t, Is(a, b), "same category should match")
	assert.False(t, Is(a, c), "different category should not match")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Newf("missing field").Category(CategoryValidation).Build(), http.StatusBadRequest},
		{"configuration", Newf("no credentials").Category(CategoryConfiguration).Build(), http.StatusInternalServerError},
		{"http request", Newf("404").Category(CategoryHTTP).Build(), http.StatusInternalServerError},
		{"network", Newf("timeout").Category(CategoryNetwork).Build(), http.StatusInternalServerError},
		{"plain error", NewStd("plain"), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("outer: %w", Newf("bad score").Category(CategoryValidation).Build()), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestCategoryOf(t *testing.T) {
	err := Newf("nope").Category(CategoryCompletion).Build()
	assert.Equal(t, CategoryCompletion, CategoryOf(err))
	assert.Equal(t, CategoryCompletion, CategoryOf(fmt.Errorf("wrap: %w", err)))
	assert.Equal(t, CategoryGeneric, CategoryOf(NewStd("plain")))
}

func TestGetContext_ReturnsCopy(t *testing.T) {
	err := Newf("x").Context("k", "v").Build()

	ctx := err.GetContext()
	require.NotNil(t, ctx)
	ctx["k"] = "mutated"

	assert.Equal(t, "v", err.GetContext()["k"], "context must not be mutable from outside")
}
