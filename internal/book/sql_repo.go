package book

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookshelf/internal/platform/database"

	"github.com/jmoiron/sqlx"
)

// SQLRepo is the only component that queries the books table.
type SQLRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLRepo(db *sqlx.DB, timeout time.Duration) *SQLRepo {
	return &SQLRepo{db: db, timeout: timeout}
}

// withTimeout bounds both connection checkout and statement execution.
func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLRepo) List(ctx context.Context) ([]Book, error) {
	const query = `SELECT id, title, author FROM books ORDER BY title, author`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	books := []Book{}
	if err := r.db.SelectContext(timeoutCtx, &books, query); err != nil {
		return nil, database.Classify(err)
	}
	return books, nil
}

func (r *SQLRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	query := r.db.Rebind(`SELECT id, title, author FROM books WHERE id = ?`)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.db.GetContext(timeoutCtx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, database.Classify(err)
	}
	return b, nil
}

func (r *SQLRepo) Create(ctx context.Context, title, author string) (int64, error) {
	query := r.db.Rebind(`INSERT INTO books (title, author) VALUES (?, ?) RETURNING id`)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64
	if err := r.db.QueryRowxContext(timeoutCtx, query, title, author).Scan(&id); err != nil {
		return 0, database.Classify(err)
	}
	return id, nil
}

// Update affecting no row is not an error.
func (r *SQLRepo) Update(ctx context.Context, b Book) error {
	query := r.db.Rebind(`UPDATE books SET title = ?, author = ? WHERE id = ?`)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(timeoutCtx, query, b.Title, b.Author, b.ID); err != nil {
		return database.Classify(err)
	}
	return nil
}

// Delete of a missing id is not an error.
func (r *SQLRepo) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM books WHERE id = ?`)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(timeoutCtx, query, id); err != nil {
		return database.Classify(err)
	}
	return nil
}

// Count returns the number of stored books.
func (r *SQLRepo) Count(ctx context.Context) (int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.GetContext(timeoutCtx, &n, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, database.Classify(err)
	}
	return n, nil
}
