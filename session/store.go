package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
)

// Well-known keys.
const (
	KeyJWT          = "jwt"
	KeyGoogleID     = "googleId"
	KeySession      = "session"
	KeySessionToken = "sessionToken"
)

const nonceSize = 24

var (
	ErrEmptySecret = errors.New("secure store secret is empty")
	ErrCorrupt     = errors.New("secure store value cannot be opened")
)

// Store is a small encrypted key-value store persisted in SQLite.
// Values are sealed with NaCl secretbox; plaintext is only kept in memory.
type Store struct {
	db  *sql.DB
	key [32]byte

	mu     sync.RWMutex
	values map[string]string
}

func NewStore(db *sql.DB, secret string) (*Store, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS secure_store (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create secure store: %w", err)
	}

	return &Store{
		db:     db,
		key:    sha256.Sum256([]byte(secret)),
		values: make(map[string]string),
	}, nil
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return value, true, nil
	}

	var sealed []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM secure_store WHERE key = ?", key).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	value, err = s.open(sealed)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO secure_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, sealed); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM secure_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) seal(value string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key), nil
}

func (s *Store) open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrCorrupt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorrupt
	}
	return string(plain), nil
}
