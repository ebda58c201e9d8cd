package service

import (
	"context"
	"sync"

	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

// fakeStore is an in-memory stand-in for the MySQL repositories. One
// instance backs all three store interfaces so tests observe the same
// shared state a single database would hold. All methods take the lock,
// so RecordCheckout's two writes are atomic like the real one.
type fakeStore struct {
	mu       sync.Mutex
	users    map[int64]*model.User
	books    map[int64]*model.Book
	log      []model.Transaction
	shelves  []shelfRow
	nextUser int64
	nextBook int64
	nextTxn  int64
}

type shelfRow struct {
	userID int64
	bookID int64
	kind   model.TransactionKind
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[int64]*model.User),
		books: make(map[int64]*model.Book),
	}
}

func (f *fakeStore) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	f.nextUser++
	user.ID = f.nextUser
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Update(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var users []model.User
	for id := int64(1); id <= f.nextUser; id++ {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeStore) BookIDs(ctx context.Context, userID int64, kind model.TransactionKind) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []int64
	for _, row := range f.shelves {
		if row.userID == userID && row.kind == kind {
			ids = append(ids, row.bookID)
		}
	}
	return ids, nil
}

func (f *fakeStore) RemoveRented(ctx context.Context, userID, bookID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.shelves[:0]
	removed := false
	for _, row := range f.shelves {
		if row.userID == userID && row.bookID == bookID && row.kind == model.KindRental {
			removed = true
			continue
		}
		kept = append(kept, row)
	}
	f.shelves = kept

	if !removed {
		return repository.ErrNotRented
	}
	return nil
}

func (f *fakeStore) CreateBook(ctx context.Context, book *model.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextBook++
	book.ID = f.nextBook
	cp := *book
	f.books[book.ID] = &cp
	return nil
}

func (f *fakeStore) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) ListBooks(ctx context.Context) ([]model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var books []model.Book
	for id := int64(1); id <= f.nextBook; id++ {
		if b, ok := f.books[id]; ok {
			books = append(books, *b)
		}
	}
	return books, nil
}

func (f *fakeStore) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.RentalPrice != nil {
		b.RentalPrice = *req.RentalPrice
	}
	if req.Available != nil {
		b.Available = *req.Available
	}

	cp := *b
	return &cp, nil
}

func (f *fakeStore) DeleteBook(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.books[id]; !ok {
		return repository.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeStore) RecordCheckout(ctx context.Context, userID, bookID int64, kind model.TransactionKind) (*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextTxn++
	txn := model.Transaction{
		ID:     f.nextTxn,
		UserID: userID,
		BookID: bookID,
		Kind:   kind,
	}
	f.log = append(f.log, txn)
	f.shelves = append(f.shelves, shelfRow{userID: userID, bookID: bookID, kind: kind})
	return &txn, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]model.TransactionWithRefs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.joined(f.log), nil
}

func (f *fakeStore) ListByBook(ctx context.Context, bookID int64) ([]model.TransactionWithRefs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matching []model.Transaction
	for _, t := range f.log {
		if t.BookID == bookID {
			matching = append(matching, t)
		}
	}
	return f.joined(matching), nil
}

func (f *fakeStore) joined(txns []model.Transaction) []model.TransactionWithRefs {
	var entries []model.TransactionWithRefs
	for _, t := range txns {
		e := model.TransactionWithRefs{Transaction: t}
		if u, ok := f.users[t.UserID]; ok {
			e.UserName = u.Name
			e.UserEmail = u.Email
		}
		if b, ok := f.books[t.BookID]; ok {
			e.BookFound = true
			e.BookTitle = b.Title
			e.BookAuthor = b.Author
		}
		entries = append(entries, e)
	}
	return entries
}

// bookStoreFake adapts fakeStore's book methods to the BookStore
// interface, whose method names collide with the user methods.
type bookStoreFake struct {
	*fakeStore
}

func (f bookStoreFake) Create(ctx context.Context, book *model.Book) error {
	return f.CreateBook(ctx, book)
}

func (f bookStoreFake) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return f.GetBookByID(ctx, id)
}

func (f bookStoreFake) List(ctx context.Context) ([]model.Book, error) {
	return f.ListBooks(ctx)
}

func (f bookStoreFake) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.Book, error) {
	return f.UpdateBook(ctx, id, req)
}

func (f bookStoreFake) Delete(ctx context.Context, id int64) error {
	return f.DeleteBook(ctx, id)
}
