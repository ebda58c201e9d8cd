package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookhive/bookhive-go/internal/model"
)

// TransactionRepository handles the immutable checkout log.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// RecordCheckout inserts the log entry and appends the book to the
// user's matching shelf in a single database transaction. Either both
// writes land or neither does, and because the shelf append is an insert
// rather than a read-modify-write, concurrent checkouts for the same
// user cannot overwrite each other's appends.
func (r *TransactionRepository) RecordCheckout(ctx context.Context, userID, bookID int64, kind model.TransactionKind) (*model.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (user_id, book_id, kind, created_at) VALUES (?, ?, ?, ?)`,
		userID, bookID, string(kind), now,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_books (user_id, book_id, kind) VALUES (?, ?, ?)`,
		userID, bookID, string(kind),
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Transaction{
		ID:        id,
		UserID:    userID,
		BookID:    bookID,
		Kind:      kind,
		CreatedAt: now,
	}, nil
}

const joinedSelect = `
	SELECT t.id, t.user_id, t.book_id, t.kind, t.created_at,
		u.name, u.email,
		b.id IS NOT NULL, COALESCE(b.title, ''), COALESCE(b.author, '')
	FROM transactions t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN books b ON b.id = t.book_id`

// ListAll retrieves every log entry with its user and book populated,
// oldest first. Entries whose book was deleted are still returned; the
// LEFT JOIN keeps orphaned references listable.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]model.TransactionWithRefs, error) {
	return r.queryJoined(ctx, joinedSelect+` ORDER BY t.id`)
}

// ListByBook retrieves the log entries for one book with users populated.
func (r *TransactionRepository) ListByBook(ctx context.Context, bookID int64) ([]model.TransactionWithRefs, error) {
	return r.queryJoined(ctx, joinedSelect+` WHERE t.book_id = ? ORDER BY t.id`, bookID)
}

func (r *TransactionRepository) queryJoined(ctx context.Context, query string, args ...any) ([]model.TransactionWithRefs, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TransactionWithRefs
	for rows.Next() {
		var e model.TransactionWithRefs
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.BookID, &e.Kind, &e.CreatedAt,
			&e.UserName, &e.UserEmail,
			&e.BookFound, &e.BookTitle, &e.BookAuthor,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
