package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"
)

const (
	cacheSize      = 8
	refreshBackoff = 500 * time.Millisecond
	refreshBudget  = 10 * time.Second
)

// RefreshFunc exchanges whatever long-lived grant the provider holds
// for a fresh short-lived token.
type RefreshFunc func(ctx context.Context) (*oauth2.Token, error)

// TokenCache keeps short-lived bearer tokens per user so every fetch
// doesn't round trip to the identity provider. Entries expire on
// their own; a miss refreshes with fibonacci backoff under a fixed
// time budget.
type TokenCache struct {
	cache   *expirable.LRU[string, *oauth2.Token]
	refresh RefreshFunc
}

// NewTokenCache builds a cache whose entries live at most ttl.
func NewTokenCache(ttl time.Duration, refresh RefreshFunc) *TokenCache {
	return &TokenCache{
		cache:   expirable.NewLRU[string, *oauth2.Token](cacheSize, nil, ttl),
		refresh: refresh,
	}
}

// Token returns a valid bearer token for the user, refreshing when
// the cached one is missing or expired.
func (tc *TokenCache) Token(ctx context.Context, userID string) (string, error) {
	if tok, ok := tc.cache.Get(userID); ok && tok.Valid() {
		return tok.AccessToken, nil
	}

	ctx, cancel := context.WithTimeout(ctx, refreshBudget)
	defer cancel()

	var tok *oauth2.Token
	err := retry.Fibonacci(ctx, refreshBackoff, func(ctx context.Context) error {
		t, err := tc.refresh(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		tok = t

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error refreshing token: %s", err)
	}

	tc.cache.Add(userID, tok)
	return tok.AccessToken, nil
}

// ForUser narrows the cache to one user, matching the token source
// surface the content client takes.
func (tc *TokenCache) ForUser(userID string) UserTokenSource {
	return UserTokenSource{tc: tc, userID: userID}
}

// UserTokenSource is a TokenCache pinned to a single user.
type UserTokenSource struct {
	tc     *TokenCache
	userID string
}

// Token implements the content client's token source.
func (u UserTokenSource) Token(ctx context.Context) (string, error) {
	return u.tc.Token(ctx, u.userID)
}
