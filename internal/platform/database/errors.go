package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConnectionFailed means the store is unreachable or misconfigured.
	ErrConnectionFailed = errors.New("database connection failed")
	// ErrMigrationFailed means the schema could not be applied.
	ErrMigrationFailed = errors.New("database migration failed")
	// ErrQueryFailed covers every other storage engine error.
	ErrQueryFailed = errors.New("database query failed")
)

// Classify wraps a driver error with ErrConnectionFailed or ErrQueryFailed.
// The original error stays in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnectionFailed) || errors.Is(err, ErrQueryFailed) {
		return err
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %w", ErrQueryFailed, err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
