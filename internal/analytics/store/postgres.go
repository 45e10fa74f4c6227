package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortipy/internal/analytics"
)

// Schema creates the tables the Postgres store writes to.
const Schema = `
CREATE TABLE IF NOT EXISTS url_changes (
	id         BIGSERIAL PRIMARY KEY,
	action     TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT,
	username   TEXT        NOT NULL,
	changed_at TIMESTAMPTZ NOT NULL,
	client_ip  TEXT,
	user_agent TEXT
);

CREATE INDEX IF NOT EXISTS url_changes_key_idx ON url_changes (key);

CREATE TABLE IF NOT EXISTS url_accesses (
	id          BIGSERIAL PRIMARY KEY,
	key         TEXT        NOT NULL,
	accessed_at TIMESTAMPTZ NOT NULL,
	client_ip   TEXT,
	user_agent  TEXT,
	referrer    TEXT
);

CREATE INDEX IF NOT EXISTS url_accesses_key_idx ON url_accesses (key);
`

// Postgres persists analytics events into PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the analytics tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate analytics schema: %w", err)
	}

	return nil
}

func (p *Postgres) SaveURLChanged(ctx context.Context, event *analytics.URLChangedEvent) error {
	query := `
		INSERT INTO url_changes (action, key, value, username, changed_at, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.pool.Exec(ctx, query,
		string(event.Action),
		event.Key,
		nullableString(event.Value),
		event.Username,
		event.ChangedAt,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
	)

	return err
}

func (p *Postgres) SaveURLAccessed(ctx context.Context, event *analytics.URLAccessedEvent) error {
	query := `
		INSERT INTO url_accesses (key, accessed_at, client_ip, user_agent, referrer)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Key,
		event.AccessedAt,
		nullableString(event.ClientIP),
		nullableString(event.UserAgent),
		nullableString(event.Referrer),
	)

	return err
}

// CountChanges returns how many change events were recorded for key.
func (p *Postgres) CountChanges(ctx context.Context, key string) (int64, error) {
	var n int64

	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM url_changes WHERE key = $1`, key).Scan(&n)

	return n, err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
