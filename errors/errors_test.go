package errors_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkterrs "github.com/lucasfiiresearch/pocket/errors"
)

func TestEConstructor(t *testing.T) {
	got := pkterrs.E(
		pkterrs.KindEntitlement,
		http.StatusForbidden,
		"an active plan is required",
	)
	want := &pkterrs.Error{
		Kind:   pkterrs.KindEntitlement,
		Status: http.StatusForbidden,
		Err:    errors.New("an active plan is required"),
	}

	assert.Equal(t, want, got)
}

func TestEDefaultsToHTTPKind(t *testing.T) {
	got := pkterrs.E(500, "boom")

	assert.Equal(t, pkterrs.KindHTTP, got.Kind)
	assert.Equal(t, 500, got.Status)
}

func TestKindOf(t *testing.T) {
	err := pkterrs.E(pkterrs.KindNetwork, errors.New("no route to host"))

	kind, ok := pkterrs.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, pkterrs.KindNetwork, kind)

	_, ok = pkterrs.KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorString(t *testing.T) {
	err := pkterrs.E(pkterrs.KindAuth, 401, "not authorized, sign in again")
	assert.Equal(t, "auth (401): not authorized, sign in again", err.Error())

	err = pkterrs.E(pkterrs.KindFormat, "unexpected response shape")
	assert.Equal(t, "format: unexpected response shape", err.Error())
}
