package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenCache_RefreshesOnceThenHits(t *testing.T) {
	calls := 0
	tc := NewTokenCache(time.Minute, func(ctx context.Context) (*oauth2.Token, error) {
		calls++
		return &oauth2.Token{
			AccessToken: "fresh",
			Expiry:      time.Now().Add(time.Hour),
		}, nil
	})

	tok, err := tc.Token(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, 1, calls)

	tok, err = tc.Token(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, 1, calls, "second call should hit the cache")
}

func TestTokenCache_ExpiredTokenRefreshes(t *testing.T) {
	calls := 0
	tc := NewTokenCache(time.Minute, func(ctx context.Context) (*oauth2.Token, error) {
		calls++
		expiry := time.Now().Add(-time.Hour)
		if calls > 1 {
			expiry = time.Now().Add(time.Hour)
		}
		return &oauth2.Token{AccessToken: "t", Expiry: expiry}, nil
	})

	_, err := tc.Token(context.Background(), "user-1")
	require.NoError(t, err)

	// The first token came back already expired, so the next call
	// refreshes again.
	_, err = tc.Token(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokenCache_ForUser(t *testing.T) {
	tc := NewTokenCache(time.Minute, func(ctx context.Context) (*oauth2.Token, error) {
		return &oauth2.Token{AccessToken: "pinned"}, nil
	})

	src := tc.ForUser("user-9")
	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pinned", tok)
}
