package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testHashKey  = []byte("0123456789abcdef0123456789abcdef")
	testBlockKey = []byte("fedcba9876543210fedcba9876543210")
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "creds.db"), testHashKey, testBlockKey)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSetGetDelete(t *testing.T) {
	var (
		ctx = context.Background()
		s   = newTestStore(t)
	)

	require.NoError(t, s.Set(ctx, "refresh_token", "abc123"))

	got, err := s.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	// Overwrite keeps a single row per name.
	require.NoError(t, s.Set(ctx, "refresh_token", "def456"))
	got, err = s.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "def456", got)

	require.NoError(t, s.Delete(ctx, "refresh_token"))
	_, err = s.Get(ctx, "refresh_token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "never_set")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValueSealedAtRest(t *testing.T) {
	var (
		ctx = context.Background()
		s   = newTestStore(t)
	)

	require.NoError(t, s.Set(ctx, "saved_password", "hunter2"))

	var raw string
	require.NoError(t, s.db.GetContext(ctx, &raw, `SELECT value FROM credentials WHERE name = ?;`, "saved_password"))
	assert.NotContains(t, raw, "hunter2")
}

func TestBiometricFlag(t *testing.T) {
	var (
		ctx = context.Background()
		s   = newTestStore(t)
	)

	enabled, err := s.BiometricEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled, "absence means disabled")

	require.NoError(t, s.SetBiometricEnabled(ctx, true))

	enabled, err = s.BiometricEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestSavedLoginLifecycle(t *testing.T) {
	var (
		ctx = context.Background()
		s   = newTestStore(t)
	)

	_, _, err := s.SavedLogin(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SaveLogin(ctx, "ana@example.com", "hunter2"))

	email, password, err := s.SavedLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)
	assert.Equal(t, "hunter2", password)

	require.NoError(t, s.ClearLogin(ctx))

	_, _, err = s.SavedLogin(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	enabled, err := s.BiometricEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}
