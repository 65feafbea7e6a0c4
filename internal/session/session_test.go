package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"profile": {
			"id": "user-1",
			"email": "ana@example.com",
			"publicMetadata": {"subscriptionPlan": "basic"}
		},
		"token": "tok-123"
	}`), 0o600))

	p := FileProvider{Path: path}

	profile, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "basic", profile.PublicMetadata["subscriptionPlan"])

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestFileProvider_MissingFile(t *testing.T) {
	p := FileProvider{Path: filepath.Join(t.TempDir(), "nope.json")}

	_, err := p.Current(context.Background())
	require.Error(t, err)
}

func TestFileProvider_RereadsOnEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profile":{"id":"u","publicMetadata":{"subscriptionPlan":"basic"}}}`), 0o600))

	p := FileProvider{Path: path}

	profile, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "basic", profile.PublicMetadata["subscriptionPlan"])

	// A plan change lands on the very next read.
	require.NoError(t, os.WriteFile(path, []byte(`{"profile":{"id":"u","publicMetadata":{}}}`), 0o600))

	profile, err = p.Current(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, profile.PublicMetadata, "subscriptionPlan")
}
