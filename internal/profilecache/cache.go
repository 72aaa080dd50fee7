// Package profilecache keeps a local copy of the user profile returned by
// the Google OAuth exchange. It is a deliberate, narrow exception to the
// rule that nothing is persisted client-side: the workspace can greet the
// user by name without another round trip after an OAuth login.
package profilecache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/j-casimiro/zenith-ai/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	email      TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Cache is a sqlite-backed profile store keyed by email.
type Cache struct {
	db *sql.DB
}

// Open creates the database (and its parent directory) if needed.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize profile cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Put stores or replaces the profile for its email.
func (c *Cache) Put(profile *models.UserProfile) error {
	if profile == nil || profile.Email == "" {
		return fmt.Errorf("profile must have an email")
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO profiles (email, name, payload, updated_at) VALUES (?, ?, ?, ?)`,
		profile.Email, profile.Name, string(payload), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// Get returns the cached profile for an email, or nil when absent.
func (c *Cache) Get(email string) (*models.UserProfile, error) {
	var payload string
	err := c.db.QueryRow(`SELECT payload FROM profiles WHERE email = ?`, email).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
