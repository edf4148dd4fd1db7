package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"yuyingbao/internal/config"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("key not found")

// Well-known store keys.
const (
	KeyToken      = "token"
	KeyUserInfo   = "userInfo"
	KeyFamilyInfo = "familyInfo"
	KeyBabyInfo   = "babyInfo"
	KeyDeviceID   = "deviceId"
)

// Store is a durable key-value store backed by a SQL database
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open creates the store connection based on config and ensures the schema exists
func Open(cfg *config.Config) (*Store, error) {
	var dialect Dialect
	var dialectConfig DialectConfig

	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "mysql":
		dialect = NewMySQLDialect()
		dialectConfig = DialectConfig{URL: cfg.DatabaseURL}
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
		dialectConfig = DialectConfig{Path: cfg.StorePath}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	return open(dialect, dialectConfig)
}

// OpenSQLite creates a SQLite-backed store at the given path
func OpenSQLite(path string) (*Store, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: path})
}

func open(dialect Dialect, dialectConfig DialectConfig) (*Store, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	if _, err := db.Exec(dialect.CreateSchemaQuery()); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, dialect: dialect}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored for key, or ErrNotFound
func (s *Store) Get(key string) (string, error) {
	query := s.dialect.RewriteQuery("SELECT entry_value FROM kv WHERE entry_key = ?")

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

// Put stores a value under key, replacing any previous value
func (s *Store) Put(key, value string) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	query := s.dialect.RewriteQuery("DELETE FROM kv WHERE entry_key = ?")
	if _, err := s.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Clear removes all session keys in a single transaction so a logout
// never leaves a partial identity behind.
func (s *Store) Clear(keys ...string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.dialect.RewriteQuery("DELETE FROM kv WHERE entry_key = ?")
	for _, key := range keys {
		if _, err := tx.Exec(query, key); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
