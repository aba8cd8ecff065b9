package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tramites/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "documents.db"

// Store is a SQLite database holding document collections.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.tramites/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".tramites", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// ListCollections returns collection names in creation order.
func (s *documentStore) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT name FROM collections ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateCollection creates a collection if it does not exist.
func (s *documentStore) CreateCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name: %w", domain.ErrInvalidInput)
	}
	_, err := s.store.db.ExecContext(ctx, "INSERT OR IGNORE INTO collections (name) VALUES (?)", name)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	return nil
}

// InsertOne stores doc as JSON, assigning a UUID when it has no "_id".
func (s *documentStore) InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := collectionExists(ctx, tx, collection); err != nil {
		return "", err
	}

	body := doc.Clone()
	id := body.ID()
	if id == "" {
		id = uuid.New().String()
		body[domain.IDField] = id
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM documents WHERE collection = ? AND id = ?", collection, id).Scan(&exists)
	switch {
	case err == nil:
		return "", fmt.Errorf("document %s: %w", id, domain.ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("checking document %s: %w", id, err)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshalling document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO documents (id, collection, body) VALUES (?, ?, ?)",
		id, collection, string(data)); err != nil {
		return "", fmt.Errorf("inserting document %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing document %s: %w", id, err)
	}
	return id, nil
}

// Find returns every document in collection in insertion order.
// Numbers are decoded as json.Number so their literal text survives.
func (s *documentStore) Find(ctx context.Context, collection string) ([]domain.Document, error) {
	if err := collectionExists(ctx, s.store.db, collection); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx,
		"SELECT body FROM documents WHERE collection = ? ORDER BY seq", collection)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		dec := json.NewDecoder(bytes.NewReader([]byte(body)))
		dec.UseNumber()
		var doc domain.Document
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("unmarshalling document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Close closes the underlying database.
func (s *documentStore) Close() error {
	return s.store.Close()
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func collectionExists(ctx context.Context, q queryRower, collection string) error {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM collections WHERE name = ?", collection).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("collection %s: %w", collection, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", collection, err)
	}
	return nil
}
