package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the Postgres-backed rating store.
type Database struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Database{Pool: pool}, nil
}

func (d *Database) Close() {
	d.Pool.Close()
}

func (d *Database) EnsureSchema(ctx context.Context) error {
	for _, statement := range schema {
		if _, err := d.Pool.Exec(ctx, statement); err != nil {
			return err
		}
	}
	return nil
}
