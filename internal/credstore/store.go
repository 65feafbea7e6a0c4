// Package credstore is the secure credential store: small named
// secrets (the saved login, the biometric opt-in flag) persisted in a
// local sqlite file and sealed with securecookie before they touch
// disk, so the database itself holds no plaintext.
//
// The entitlement resolver and the content pipeline never touch this
// package; it exists for the login/biometric flows around them.
package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"

	"github.com/lucasfiiresearch/pocket/internal/database"
	"github.com/lucasfiiresearch/pocket/internal/migrations"
)

// ErrNotFound is returned when no credential is stored under a name.
var ErrNotFound = errors.New("credential not found")

// Store persists sealed named values.
type Store struct {
	db    *sqlx.DB
	codec *securecookie.SecureCookie
}

// Open opens (creating if needed) the store at path. hashKey signs
// the sealed values; blockKey, when non-nil, must be 16 or 32 bytes
// and turns on encryption at rest.
func Open(path string, hashKey, blockKey []byte) (*Store, error) {
	dbx, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(dbx, migrations.Migrations, "."); err != nil {
		dbx.Close()
		return nil, err
	}

	return &Store{
		db:    dbx,
		codec: securecookie.New(hashKey, blockKey),
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Set seals value and upserts it under name.
func (s *Store) Set(ctx context.Context, name, value string) error {
	sealed, err := s.codec.Encode(name, value)
	if err != nil {
		return fmt.Errorf("error sealing credential: %s", err)
	}

	query, args, err := sq.Insert("credentials").
		Columns("id", "name", "value", "updated_at").
		Values(uuid.NewString(), name, sealed, time.Now().UTC()).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error constructing sql: %s", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error storing credential: %s", err)
	}

	return nil
}

// Get unseals the value stored under name.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	const q = `SELECT value FROM credentials WHERE name = ?;`

	var sealed string
	err := s.db.GetContext(ctx, &sealed, q, name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error fetching credential: %s", err)
	}

	var value string
	if err := s.codec.Decode(name, sealed, &value); err != nil {
		return "", fmt.Errorf("error unsealing credential: %s", err)
	}

	return value, nil
}

// Delete removes the credential stored under name. Deleting a missing
// name is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	const q = `DELETE FROM credentials WHERE name = ?;`

	if _, err := s.db.ExecContext(ctx, q, name); err != nil {
		return fmt.Errorf("error deleting credential: %s", err)
	}

	return nil
}

// Names of the app's well-known credentials.
const (
	nameBiometric = "biometric_enabled"
	nameEmail     = "saved_email"
	namePassword  = "saved_password"
)

// SetBiometricEnabled persists the biometric-unlock opt-in flag.
func (s *Store) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return s.Set(ctx, nameBiometric, strconv.FormatBool(enabled))
}

// BiometricEnabled reports the opt-in flag; absence means disabled.
func (s *Store) BiometricEnabled(ctx context.Context) (bool, error) {
	v, err := s.Get(ctx, nameBiometric)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return strconv.ParseBool(v)
}

// SaveLogin stores the email/password pair used for biometric
// re-login.
func (s *Store) SaveLogin(ctx context.Context, email, password string) error {
	if err := s.Set(ctx, nameEmail, email); err != nil {
		return err
	}

	return s.Set(ctx, namePassword, password)
}

// SavedLogin returns the stored pair, or ErrNotFound when either half
// is missing.
func (s *Store) SavedLogin(ctx context.Context) (email, password string, err error) {
	email, err = s.Get(ctx, nameEmail)
	if err != nil {
		return "", "", err
	}
	password, err = s.Get(ctx, namePassword)
	if err != nil {
		return "", "", err
	}

	return email, password, nil
}

// ClearLogin removes the saved pair and the opt-in flag.
func (s *Store) ClearLogin(ctx context.Context) error {
	for _, name := range []string{nameEmail, namePassword, nameBiometric} {
		if err := s.Delete(ctx, name); err != nil {
			return err
		}
	}

	return nil
}
