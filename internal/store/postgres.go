package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"problem-hunt-api/internal/model"
)

const uniqueViolationCode = "23505"

// Postgres keeps every collection in a single JSONB table keyed by
// (collection, id). Filters use JSONB containment, which matches the
// equality-only Filter contract.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (s *Postgres) Create(ctx context.Context, collection string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, partition_key, doc)
		 VALUES ($1, $2, $3, $4)`,
		collection, doc.DocID(), doc.DocPartitionKey(), body)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.ErrConflict
		}
		return fmt.Errorf("create %s/%s: %w", collection, doc.DocID(), err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, collection string, id string, partitionKey string) (json.RawMessage, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents
		 WHERE collection = $1 AND id = $2 AND partition_key = $3`,
		collection, id, partitionKey).Scan(&body)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return body, nil
}

func (s *Postgres) Find(ctx context.Context, collection string, id string) (json.RawMessage, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&body)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s/%s: %w", collection, id, err)
	}
	return body, nil
}

func (s *Postgres) Query(ctx context.Context, collection string, filter Filter) ([]json.RawMessage, error) {
	query := `SELECT doc FROM documents WHERE collection = $1`
	args := []any{collection}

	if len(filter) > 0 {
		contained, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("marshal filter: %w", err)
		}
		query += ` AND doc @> $2::jsonb`
		args = append(args, contained)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]json.RawMessage, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		docs = append(docs, body)
	}
	return docs, rows.Err()
}

func (s *Postgres) Replace(ctx context.Context, collection string, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET doc = $4, partition_key = $3, updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		collection, doc.DocID(), doc.DocPartitionKey(), body)
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", collection, doc.DocID(), err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection string, id string, partitionKey string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents
		 WHERE collection = $1 AND id = $2 AND partition_key = $3`,
		collection, id, partitionKey)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
