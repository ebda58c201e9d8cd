package model

import "time"

// Book represents a catalog entry in the database.
// Ratings are written by data tooling only; no endpoint mutates them,
// but every book read returns them.
type Book struct {
	ID          int64
	Title       string
	Description string
	Author      string
	ISBN        string
	Category    string
	Price       float64
	RentalPrice float64
	Available   bool
	Ratings     []Rating
	CreatedAt   time.Time
}

// Rating is a single user rating embedded in a book.
type Rating struct {
	UserID int64 `json:"userId"`
	Rating int   `json:"rating"`
}

// CreateBookRequest represents an admin book creation request.
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	RentalPrice float64 `json:"rentalPrice"`
}

// UpdateBookRequest represents an admin partial update. Pointer fields
// distinguish "not sent" from an explicit zero value; only the fields
// present in the request are written.
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Author      *string  `json:"author"`
	ISBN        *string  `json:"isbn"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	RentalPrice *float64 `json:"rentalPrice"`
	Available   *bool    `json:"available"`
}

// BookResponse represents a catalog entry in API responses.
type BookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	RentalPrice float64   `json:"rentalPrice"`
	Available   bool      `json:"available"`
	Ratings     []Rating  `json:"ratings"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookDetailsResponse is a book together with its transaction history.
type BookDetailsResponse struct {
	Book         BookResponse          `json:"book"`
	Transactions []TransactionResponse `json:"transactions"`
}
