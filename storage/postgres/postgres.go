// Package postgres persists the counter list in a PostgreSQL table.
package postgres

import (
	"context"
	"fmt"

	"github.com/alexrttr/qt-table-increment/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Gateway stores the counter list in the counters table, one row per
// counter, ordered by position. SaveAll runs as a single transaction so an
// interrupted save can never leave a mix of old and new rows.
type Gateway struct {
	db *pgxpool.Pool
}

func NewGateway(ctx context.Context, databaseDsn string) (*Gateway, error) {
	db, err := pgxpool.New(ctx, databaseDsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	g := &Gateway{db: db}
	if err := g.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return g, nil
}

func (g *Gateway) ensureSchema(ctx context.Context) error {
	_, err := g.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS counters (
			position BIGINT PRIMARY KEY,
			value BIGINT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("%w: create counters table: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (g *Gateway) Load(ctx context.Context) ([]int64, error) {
	rows, err := g.db.Query(ctx, "SELECT value FROM counters ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: select counters: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	values := []int64{}
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan counter row: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read counters: %v", storage.ErrUnavailable, err)
	}

	return values, nil
}

func (g *Gateway) SaveAll(ctx context.Context, values []int64) error {
	tx, err := g.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", storage.ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM counters"); err != nil {
		return fmt.Errorf("failed to clear counters: %w", err)
	}

	batch := &pgx.Batch{}
	for i, v := range values {
		batch.Queue("INSERT INTO counters (position, value) VALUES ($1, $2)", i, v)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit counters: %w", err)
	}

	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

func (g *Gateway) Close() {
	g.db.Close()
}
