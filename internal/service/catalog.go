package service

import (
	"context"
	"errors"

	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrBookNotFound  = errors.New("book not found")
)

// CatalogService handles the book catalog lifecycle. Reads are public;
// create, update and delete are admin-only, enforced at the routing
// layer.
type CatalogService struct {
	books     BookStore
	checkouts CheckoutLog
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(books BookStore, checkouts CheckoutLog) *CatalogService {
	return &CatalogService{books: books, checkouts: checkouts}
}

// List returns the whole catalog.
func (s *CatalogService) List(ctx context.Context) ([]model.BookResponse, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.BookResponse, len(books))
	for i := range books {
		result[i] = bookToResponse(&books[i])
	}
	return result, nil
}

// Create adds a book to the catalog. Title is the only required field;
// new books are available by default.
func (s *CatalogService) Create(ctx context.Context, req model.CreateBookRequest) (model.BookResponse, error) {
	if req.Title == "" {
		return model.BookResponse{}, ErrTitleRequired
	}

	book := &model.Book{
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		Price:       req.Price,
		RentalPrice: req.RentalPrice,
		Available:   true,
	}

	if err := s.books.Create(ctx, book); err != nil {
		return model.BookResponse{}, err
	}

	return bookToResponse(book), nil
}

// Update applies a partial edit: only the fields present in the request
// are written, with no validation beyond the create-time title rule.
func (s *CatalogService) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.BookResponse, error) {
	if req.Title != nil && *req.Title == "" {
		return model.BookResponse{}, ErrTitleRequired
	}

	book, err := s.books.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookResponse{}, ErrBookNotFound
		}
		return model.BookResponse{}, err
	}

	return bookToResponse(book), nil
}

// Delete hard-deletes a book. Transactions and user shelves referencing
// it keep their entries; those references simply dangle afterwards.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	err := s.books.Delete(ctx, id)
	if errors.Is(err, repository.ErrBookNotFound) {
		return ErrBookNotFound
	}
	return err
}

// Details returns a book together with its transaction history, with
// the user on each transaction populated.
func (s *CatalogService) Details(ctx context.Context, id int64) (model.BookDetailsResponse, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return model.BookDetailsResponse{}, ErrBookNotFound
		}
		return model.BookDetailsResponse{}, err
	}

	entries, err := s.checkouts.ListByBook(ctx, id)
	if err != nil {
		return model.BookDetailsResponse{}, err
	}

	transactions := make([]model.TransactionResponse, len(entries))
	for i := range entries {
		transactions[i] = transactionToResponse(&entries[i], false)
	}

	return model.BookDetailsResponse{
		Book:         bookToResponse(book),
		Transactions: transactions,
	}, nil
}

func bookToResponse(book *model.Book) model.BookResponse {
	ratings := book.Ratings
	if ratings == nil {
		ratings = []model.Rating{}
	}
	return model.BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Author:      book.Author,
		ISBN:        book.ISBN,
		Category:    book.Category,
		Price:       book.Price,
		RentalPrice: book.RentalPrice,
		Available:   book.Available,
		Ratings:     ratings,
		CreatedAt:   book.CreatedAt,
	}
}
