package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq" // For pq.Error
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a write references a missing row or
	// a delete is blocked by a referencing row.
	ErrForeignKey = errors.New("foreign key constraint violation")
)

// SQLExecutor defines an interface that can be satisfied by *sqlx.DB or *sqlx.Tx
// This allows repository methods to be used within transactions or with a direct DB connection.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Transactor runs a function inside a single store transaction.
type Transactor interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx SQLExecutor) error) error
}

type sqlxTransactor struct {
	db *sqlx.DB
}

// NewTransactor creates a Transactor backed by db.
func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlxTransactor{db: db}
}

func (t *sqlxTransactor) WithinTx(ctx context.Context, fn func(tx SQLExecutor) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback() // no-op after a successful commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrForeignKey, pqErr.Message, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// expectAffected converts a zero-row write into ErrNotFound.
func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
