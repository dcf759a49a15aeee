package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/mythweaver/internal/domain/campaign"
	dnderr "github.com/KirkDiggler/mythweaver/internal/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS campaign_lists (
	owner      TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore persists campaign lists in a single SQLite table
type SQLiteStore struct {
	db  *sql.DB
	now TimeProvider
}

// OpenSQLiteStore opens (creating if needed) a SQLite campaign store. Use
// ":memory:" for a throwaway database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, dnderr.InvalidArgument("sqlite path is required")
	}

	dsn := ":memory:"
	if path != dsn {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create campaign_lists table: %w", err)
	}

	return &SQLiteStore{db: db, now: realTimeProvider{}}, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load implements Store
func (s *SQLiteStore) Load(ctx context.Context, owner string) ([]*campaign.Campaign, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM campaign_lists WHERE owner = ?`, owner).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []*campaign.Campaign{}, nil
	}
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to query campaign list").
			WithMeta("owner", owner)
	}

	return campaign.UnmarshalList([]byte(data))
}

// Save implements Store
func (s *SQLiteStore) Save(ctx context.Context, owner string, list []*campaign.Campaign) error {
	data, err := campaign.MarshalList(list)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campaign_lists (owner, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(owner) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		owner, string(data), s.now.Now().UnixMilli())
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to save campaign list").
			WithMeta("owner", owner)
	}
	return nil
}

// Owners implements OwnerLister
func (s *SQLiteStore) Owners(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT owner FROM campaign_lists ORDER BY owner`)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list owners")
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, dnderr.Wrap(err, "failed to scan owner")
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, dnderr.Wrap(err, "failed to iterate owners")
	}
	return owners, nil
}

// SetRaw writes raw text for an owner, bypassing encoding
func (s *SQLiteStore) SetRaw(ctx context.Context, owner, data string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO campaign_lists (owner, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(owner) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		owner, data, s.now.Now().UnixMilli())
	return err
}
