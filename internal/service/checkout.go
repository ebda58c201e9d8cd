package service

import (
	"context"
	"errors"

	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrBookIDRequired         = errors.New("bookId is required")
)

// CheckoutService is the transaction recorder: it validates a checkout
// request and records the log entry plus the shelf append through the
// checkout log's atomic write. Nothing is written when validation fails.
type CheckoutService struct {
	books BookStore
	log   CheckoutLog
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(books BookStore, log CheckoutLog) *CheckoutService {
	return &CheckoutService{books: books, log: log}
}

// Checkout records a purchase or rental for the authenticated user. The
// type must be exactly "purchase" or "rental" and the book must exist;
// both checks run before any write. Book availability is not adjusted —
// there is no stock-limiting semantics.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (model.CheckoutResponse, error) {
	if !req.Type.Valid() {
		return model.CheckoutResponse{}, ErrInvalidTransactionType
	}
	if req.BookID == 0 {
		return model.CheckoutResponse{}, ErrBookIDRequired
	}

	if _, err := s.books.GetByID(ctx, req.BookID); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.CheckoutResponse{}, ErrBookNotFound
		}
		return model.CheckoutResponse{}, err
	}

	txn, err := s.log.RecordCheckout(ctx, userID, req.BookID, req.Type)
	if err != nil {
		return model.CheckoutResponse{}, err
	}

	return model.CheckoutResponse{
		ID:              txn.ID,
		UserID:          txn.UserID,
		BookID:          txn.BookID,
		Type:            txn.Kind,
		TransactionDate: txn.CreatedAt,
	}, nil
}

// ListAll returns the full transaction log with user and book
// populated. Admin only, enforced at the routing layer.
func (s *CheckoutService) ListAll(ctx context.Context) ([]model.TransactionResponse, error) {
	entries, err := s.log.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.TransactionResponse, len(entries))
	for i := range entries {
		result[i] = transactionToResponse(&entries[i], true)
	}
	return result, nil
}

// transactionToResponse maps a joined log entry to its API shape. The
// book summary is included only when asked for and when the book still
// exists; orphaned references render with a null book.
func transactionToResponse(e *model.TransactionWithRefs, withBook bool) model.TransactionResponse {
	resp := model.TransactionResponse{
		ID:              e.ID,
		Type:            e.Kind,
		TransactionDate: e.CreatedAt,
		User: &model.TransactionUser{
			ID:    e.UserID,
			Name:  e.UserName,
			Email: e.UserEmail,
		},
	}

	if withBook && e.BookFound {
		resp.Book = &model.TransactionBook{
			ID:     e.BookID,
			Title:  e.BookTitle,
			Author: e.BookAuthor,
		}
	}

	return resp
}
