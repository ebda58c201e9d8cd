package model

import "time"

// TransactionKind is the kind of a checkout: purchase or rental.
type TransactionKind string

const (
	KindPurchase TransactionKind = "purchase"
	KindRental   TransactionKind = "rental"
)

// Valid reports whether k is one of the two recognized kinds.
func (k TransactionKind) Valid() bool {
	return k == KindPurchase || k == KindRental
}

// Transaction is an immutable checkout log entry. Entries are never
// updated or deleted; deleting a book leaves its entries in place.
type Transaction struct {
	ID        int64
	UserID    int64
	BookID    int64
	Kind      TransactionKind
	CreatedAt time.Time
}

// TransactionWithRefs is a log entry joined with its user and, when the
// book still exists, the book. BookFound is false for orphaned entries
// whose book has since been hard-deleted.
type TransactionWithRefs struct {
	Transaction
	UserName   string
	UserEmail  string
	BookFound  bool
	BookTitle  string
	BookAuthor string
}

// CheckoutRequest represents a purchase or rental request.
type CheckoutRequest struct {
	BookID int64           `json:"bookId"`
	Type   TransactionKind `json:"type"`
}

// CheckoutResponse represents a freshly recorded checkout.
type CheckoutResponse struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	BookID          int64           `json:"bookId"`
	Type            TransactionKind `json:"type"`
	TransactionDate time.Time       `json:"transactionDate"`
}

// TransactionUser is the populated user summary on a transaction.
type TransactionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TransactionBook is the populated book summary on a transaction.
type TransactionBook struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// TransactionResponse represents a log entry in API responses. User and
// Book are populated on the listing endpoints; Book is null when the
// referenced book no longer exists.
type TransactionResponse struct {
	ID              int64            `json:"id"`
	Type            TransactionKind  `json:"type"`
	TransactionDate time.Time        `json:"transactionDate"`
	User            *TransactionUser `json:"user,omitempty"`
	Book            *TransactionBook `json:"book,omitempty"`
}
