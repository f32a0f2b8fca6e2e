package store

import (
	"context"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// DefaultDBFile is the database file name used when none is configured
const DefaultDBFile = "meu_banco.db"

// Provider owns the single database handle of the process.
// The handle is opened on the first Connection call and reused until Close.
type Provider struct {
	path string

	mu sync.Mutex
	db *sqlx.DB
}

// NewProvider makes a provider for the database file at path, nothing is opened yet
func NewProvider(path string) *Provider {
	if path == "" {
		path = DefaultDBFile
	}
	return &Provider{path: path}
}

// Connection returns the shared handle, opening the database file on the first call.
// Concurrent first calls wait for a single open. A failed open is not remembered,
// the next call tries again.
func (p *Provider) Connection(ctx context.Context) (*sqlx.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}

	db, err := open(ctx, p.path)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] database %s opened", p.path)
	p.db = db
	return p.db, nil
}

// Path returns location of the database file
func (p *Provider) Path() string {
	return p.path
}

// Close closes the handle if it was opened. The next Connection call opens a new one.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		return fmt.Errorf("%w: failed to close database %s: %w", ErrConnection, p.path, err)
	}
	return nil
}

func open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database %s: %w", ErrConnection, path, err)
	}

	// sqlite allows a single writer, and in-memory databases exist per connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w: failed to set WAL mode for %s: %w (also failed to close db: %v)",
				ErrConnection, path, err, closeErr)
		}
		return nil, fmt.Errorf("%w: failed to set WAL mode for %s: %w", ErrConnection, path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("%w: failed to ping database %s: %w (also failed to close db: %v)",
				ErrConnection, path, err, closeErr)
		}
		return nil, fmt.Errorf("%w: failed to ping database %s: %w", ErrConnection, path, err)
	}

	return db, nil
}

// Check runs a trivial statement against the handle and returns the schema user_version
func Check(ctx context.Context, db sqlx.QueryerContext) (int, error) {
	var version int
	if err := sqlx.GetContext(ctx, db, &version, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("%w: failed to query user_version: %w", ErrConnection, err)
	}
	return version, nil
}
