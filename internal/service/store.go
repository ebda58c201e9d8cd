package service

import (
	"context"

	"github.com/bookhive/bookhive-go/internal/model"
)

// Store interfaces are declared here, on the consumer side, and are
// satisfied by the repository types. Services depend on these so the
// domain rules can be tested without a database.

// UserStore persists user accounts and their shelves.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	BookIDs(ctx context.Context, userID int64, kind model.TransactionKind) ([]int64, error)
	RemoveRented(ctx context.Context, userID, bookID int64) error
}

// BookStore persists the catalog.
type BookStore interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

// CheckoutLog persists the immutable transaction log. RecordCheckout
// must perform the log insert and the shelf append atomically.
type CheckoutLog interface {
	RecordCheckout(ctx context.Context, userID, bookID int64, kind model.TransactionKind) (*model.Transaction, error)
	ListAll(ctx context.Context) ([]model.TransactionWithRefs, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.TransactionWithRefs, error)
}
