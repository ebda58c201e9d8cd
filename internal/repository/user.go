package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bookhive/bookhive-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotRented      = errors.New("book not in rented list")
)

// UserRepository handles user persistence, including the per-user
// purchased and rented shelves stored in user_books.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users WHERE id = ?`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Update persists name, email and password hash for an existing user.
// The role is never written here: no operation changes a role after
// registration.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET name = ?, email = ?, password_hash = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// MySQL reports zero affected rows for a no-op update of an existing
	// row, so a missing user has to be distinguished with a lookup.
	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, user.ID); err != nil {
			return err
		}
	}

	return nil
}

// List retrieves all users ordered by creation.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// BookIDs retrieves the user's shelf for the given kind in insertion order.
func (r *UserRepository) BookIDs(ctx context.Context, userID int64, kind model.TransactionKind) ([]int64, error) {
	query := `SELECT book_id FROM user_books WHERE user_id = ? AND kind = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// RemoveRented deletes a book from the user's rented shelf. No
// compensating transaction entry is written; the checkout log records
// acquisitions only.
func (r *UserRepository) RemoveRented(ctx context.Context, userID, bookID int64) error {
	query := `DELETE FROM user_books WHERE user_id = ? AND book_id = ? AND kind = ?`

	result, err := r.db.ExecContext(ctx, query, userID, bookID, string(model.KindRental))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotRented
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
