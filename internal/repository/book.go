package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"

	"github.com/bookhive/bookhive-go/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

var dialect = goqu.Dialect("mysql")

// BookRepository handles catalog persistence. Ratings live in the
// book_ratings table and are loaded onto the Book struct on every read.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book and sets the generated ID on the book struct.
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `INSERT INTO books (title, description, author, isbn, category, price, rental_price, available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		book.Title, book.Description, book.Author, book.ISBN,
		book.Category, book.Price, book.RentalPrice, book.Available,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	book.ID = id
	return nil
}

// GetByID retrieves a book with its ratings.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT id, title, description, author, isbn, category, price, rental_price, available, created_at
		FROM books WHERE id = ?`

	book := &model.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Description, &book.Author, &book.ISBN,
		&book.Category, &book.Price, &book.RentalPrice, &book.Available, &book.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	ratings, err := r.ratingsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Ratings = ratings

	return book, nil
}

// List retrieves the whole catalog with ratings, ordered by creation.
func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	query := `SELECT id, title, description, author, isbn, category, price, rental_price, available, created_at
		FROM books ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Description, &b.Author, &b.ISBN,
			&b.Category, &b.Price, &b.RentalPrice, &b.Available, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ratings, err := r.ratingsByBook(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Ratings = ratings[books[i].ID]
	}

	return books, nil
}

// Update writes exactly the fields present in the request and returns the
// updated book. The SET clause is request-dependent, so the statement is
// built with goqu rather than a fixed query string.
func (r *BookRepository) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	record := goqu.Record{}
	if req.Title != nil {
		record["title"] = *req.Title
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if req.Author != nil {
		record["author"] = *req.Author
	}
	if req.ISBN != nil {
		record["isbn"] = *req.ISBN
	}
	if req.Category != nil {
		record["category"] = *req.Category
	}
	if req.Price != nil {
		record["price"] = *req.Price
	}
	if req.RentalPrice != nil {
		record["rental_price"] = *req.RentalPrice
	}
	if req.Available != nil {
		record["available"] = *req.Available
	}

	if len(record) > 0 {
		query, args, err := dialect.Update("books").
			Set(record).
			Where(goqu.C("id").Eq(id)).
			Prepared(true).
			ToSQL()
		if err != nil {
			return nil, err
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete hard-deletes a book. Transactions and shelf entries referencing
// it are intentionally left in place.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}

// ratingsFor loads the ratings of a single book.
func (r *BookRepository) ratingsFor(ctx context.Context, bookID int64) ([]model.Rating, error) {
	query := `SELECT user_id, rating FROM book_ratings WHERE book_id = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.UserID, &rt.Rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}

	return ratings, rows.Err()
}

// ratingsByBook loads all ratings grouped by book id, for the catalog listing.
func (r *BookRepository) ratingsByBook(ctx context.Context) (map[int64][]model.Rating, error) {
	query := `SELECT book_id, user_id, rating FROM book_ratings ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[int64][]model.Rating)
	for rows.Next() {
		var bookID int64
		var rt model.Rating
		if err := rows.Scan(&bookID, &rt.UserID, &rt.Rating); err != nil {
			return nil, err
		}
		ratings[bookID] = append(ratings[bookID], rt)
	}

	return ratings, rows.Err()
}
