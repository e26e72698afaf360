package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id         UUID PRIMARY KEY,
		collection TEXT NOT NULL,
		body       JSONB NOT NULL,
		stored_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS documents_collection_idx ON documents (collection)`,
}

// ConnectPostgres opens a pool for a postgres:// URL and checks the server answers.
func ConnectPostgres(ctx context.Context, url string, timeout time.Duration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// PostgresStore keeps every collection in one "documents" table, the
// collection name in its own column and the document as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the documents table when it is missing.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	for _, stmt := range postgresSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", wrap("encode", collection, err)
	}
	var id string
	err = p.pool.QueryRow(ctx,
		`INSERT INTO documents (id, collection, body) VALUES ($1, $2, $3) RETURNING id::text`,
		uuid.NewString(), collection, body,
	).Scan(&id)
	if err != nil {
		return "", wrap("insert", collection, err)
	}
	return id, nil
}

func (p *PostgresStore) ListCollections(ctx context.Context, limit int) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, wrap("list collections", "", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, wrap("list collections", "", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list collections", "", err)
	}
	return names, nil
}

// Name is the database named in the connection URL.
func (p *PostgresStore) Name() string { return p.pool.Config().ConnConfig.Database }

func (p *PostgresStore) Close(context.Context) error {
	p.pool.Close()
	return nil
}
