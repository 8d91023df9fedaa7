package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transactor defines the interface for managing transactions
type Transactor interface {
	// WithTransaction executes fn within a transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// DBTransactor implements Transactor using *pgxpool.Pool
type DBTransactor struct {
	db *pgxpool.Pool
}

func NewDBTransactor(db *pgxpool.Pool) *DBTransactor {
	return &DBTransactor{db: db}
}

// WithTransaction executes the given function within a transaction
func (t *DBTransactor) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	// Store transaction in context
	ctx = context.WithValue(ctx, txKey{}, tx)

	// Execute function
	if err := fn(ctx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// txKey is used to store transaction in context
type txKey struct{}

// Executor is the subset of pgxpool.Pool and pgx.Tx the stores run queries
// through. Stores taking part in a transaction resolve it via From.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// From returns the transaction stored in ctx by WithTransaction, or the pool
// itself when no transaction is in flight.
func From(ctx context.Context, db *pgxpool.Pool) Executor {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}
