// Package session models the identity-provider collaborator: the
// current user's profile (with its publicMetadata bag) and the bearer
// token the content API wants.
//
// The entitlement resolver and the fetch pipeline only ever see what
// a [Provider] hands them; nothing here is read ambiently.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Profile is the slice of the provider's user record this core
// consumes. PublicMetadata is an untyped bag controlled by the
// provider; the entitlement resolver reads the plan fields out of it.
type Profile struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	PublicMetadata map[string]any `json:"publicMetadata"`
}

// Provider exposes the current session.
type Provider interface {
	Current(ctx context.Context) (Profile, error)
	Token(ctx context.Context) (string, error)
}

// FileProvider reads a session exported by the identity provider from
// a JSON file. It stands in for the provider SDK in the CLI and in
// tests.
type FileProvider struct {
	Path string
}

type fileSession struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

func (p FileProvider) load() (fileSession, error) {
	byts, err := os.ReadFile(p.Path)
	if err != nil {
		return fileSession{}, fmt.Errorf("error reading session file: %s", err)
	}

	var s fileSession
	if err := json.Unmarshal(byts, &s); err != nil {
		return fileSession{}, fmt.Errorf("error decoding session file: %s", err)
	}

	return s, nil
}

// Current returns the profile stored in the session file. It rereads
// the file every time so a plan change shows up on the next access
// attempt.
func (p FileProvider) Current(ctx context.Context) (Profile, error) {
	s, err := p.load()
	return s.Profile, err
}

// Token returns the bearer token stored in the session file.
func (p FileProvider) Token(ctx context.Context) (string, error) {
	s, err := p.load()
	return s.Token, err
}
