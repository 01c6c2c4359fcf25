// Package postgres provides Postgres persistence for pool events.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nulln0ne/amm-pool/internal/model"
)

// Journal writes event records to the pool_events table.
type Journal struct {
	pool *pgxpool.Pool
}

func NewJournal(ctx context.Context, dsn string) (*Journal, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Journal{pool: pool}, nil
}

func (j *Journal) Close() {
	if j.pool != nil {
		j.pool.Close()
	}
}

// EnsureSchema creates the pool_events table if it does not exist.
func (j *Journal) EnsureSchema(ctx context.Context) error {
	_, err := j.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pool_events (
			id bigserial PRIMARY KEY,
			kind text NOT NULL,
			ts bigint NOT NULL,
			payload jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	return err
}

// Record inserts one event record.
func (j *Journal) Record(ctx context.Context, rec model.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal event record: %w", err)
	}
	_, err = j.pool.Exec(ctx, `
		INSERT INTO pool_events (kind, ts, payload)
		VALUES ($1, $2, $3)
	`, rec.Kind, rec.Timestamp, payload)
	return err
}
