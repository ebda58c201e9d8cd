package service

import (
	"context"
	"sync"
	"testing"

	"github.com/bookhive/bookhive-go/internal/model"
)

func seedUserAndBook(t *testing.T, store *fakeStore) (userID, bookID int64) {
	t.Helper()

	user := &model.User{Name: "Reader", Email: "reader@example.com", Role: model.RoleUser}
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}

	book := &model.Book{Title: "The Go Programming Language", Author: "Donovan", Available: true}
	if err := store.CreateBook(context.Background(), book); err != nil {
		t.Fatalf("seeding book: %v", err)
	}

	return user.ID, book.ID
}

func TestCheckoutInvalidType(t *testing.T) {
	store := newFakeStore()
	userID, bookID := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	_, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		BookID: bookID,
		Type:   "borrow",
	})
	if err != ErrInvalidTransactionType {
		t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
	}

	// Rejected before any write: no log entry, no shelf mutation.
	if len(store.log) != 0 {
		t.Errorf("transaction log has %d entries, want 0", len(store.log))
	}
	if len(store.shelves) != 0 {
		t.Errorf("shelves have %d rows, want 0", len(store.shelves))
	}
}

func TestCheckoutMissingBookID(t *testing.T) {
	store := newFakeStore()
	userID, _ := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	_, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		Type: model.KindPurchase,
	})
	if err != ErrBookIDRequired {
		t.Fatalf("expected ErrBookIDRequired, got %v", err)
	}
	if len(store.log) != 0 || len(store.shelves) != 0 {
		t.Error("writes performed despite validation failure")
	}
}

func TestCheckoutUnknownBook(t *testing.T) {
	store := newFakeStore()
	userID, _ := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	_, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		BookID: 999,
		Type:   model.KindRental,
	})
	if err != ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
	if len(store.log) != 0 || len(store.shelves) != 0 {
		t.Error("writes performed despite unknown book")
	}
}

func TestCheckoutPurchase(t *testing.T) {
	store := newFakeStore()
	userID, bookID := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	resp, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		BookID: bookID,
		Type:   model.KindPurchase,
	})
	if err != nil {
		t.Fatalf("Checkout() unexpected error: %v", err)
	}
	if resp.Type != model.KindPurchase || resp.BookID != bookID || resp.UserID != userID {
		t.Errorf("unexpected response: %+v", resp)
	}

	purchased, err := store.BookIDs(context.Background(), userID, model.KindPurchase)
	if err != nil {
		t.Fatalf("BookIDs() unexpected error: %v", err)
	}
	if len(purchased) != 1 || purchased[0] != bookID {
		t.Errorf("purchased shelf = %v, want [%d]", purchased, bookID)
	}

	rented, _ := store.BookIDs(context.Background(), userID, model.KindRental)
	if len(rented) != 0 {
		t.Errorf("rented shelf = %v, want empty", rented)
	}

	if len(store.log) != 1 || store.log[0].Kind != model.KindPurchase {
		t.Errorf("log = %+v, want one purchase entry", store.log)
	}
}

func TestCheckoutRental(t *testing.T) {
	store := newFakeStore()
	userID, bookID := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	if _, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		BookID: bookID,
		Type:   model.KindRental,
	}); err != nil {
		t.Fatalf("Checkout() unexpected error: %v", err)
	}

	rented, err := store.BookIDs(context.Background(), userID, model.KindRental)
	if err != nil {
		t.Fatalf("BookIDs() unexpected error: %v", err)
	}
	if len(rented) != 1 || rented[0] != bookID {
		t.Errorf("rented shelf = %v, want [%d]", rented, bookID)
	}

	if len(store.log) != 1 || store.log[0].Kind != model.KindRental {
		t.Errorf("log = %+v, want one rental entry", store.log)
	}
}

// Concurrent checkouts for the same user must all survive. The shelf
// append is an insert performed in the same database transaction as the
// log entry, never a read-modify-write of a list, so there is no
// interleaving that drops an append.
func TestCheckoutConcurrentSameUser(t *testing.T) {
	store := newFakeStore()
	userID, bookID := seedUserAndBook(t, store)

	book2 := &model.Book{Title: "Second", Available: true}
	if err := store.CreateBook(context.Background(), book2); err != nil {
		t.Fatalf("seeding book: %v", err)
	}

	svc := NewCheckoutService(bookStoreFake{store}, store)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc.Checkout(context.Background(), userID, model.CheckoutRequest{
			BookID: bookID, Type: model.KindPurchase,
		})
	}()
	go func() {
		defer wg.Done()
		svc.Checkout(context.Background(), userID, model.CheckoutRequest{
			BookID: book2.ID, Type: model.KindRental,
		})
	}()
	wg.Wait()

	purchased, _ := store.BookIDs(context.Background(), userID, model.KindPurchase)
	rented, _ := store.BookIDs(context.Background(), userID, model.KindRental)

	if len(purchased) != 1 {
		t.Errorf("purchased shelf lost an append: %v", purchased)
	}
	if len(rented) != 1 {
		t.Errorf("rented shelf lost an append: %v", rented)
	}
	if len(store.log) != 2 {
		t.Errorf("log has %d entries, want 2", len(store.log))
	}
}

func TestListAllPopulatesRefs(t *testing.T) {
	store := newFakeStore()
	userID, bookID := seedUserAndBook(t, store)
	svc := NewCheckoutService(bookStoreFake{store}, store)

	if _, err := svc.Checkout(context.Background(), userID, model.CheckoutRequest{
		BookID: bookID, Type: model.KindPurchase,
	}); err != nil {
		t.Fatalf("Checkout() unexpected error: %v", err)
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ListAll() returned %d entries, want 1", len(all))
	}

	entry := all[0]
	if entry.User == nil || entry.User.Email != "reader@example.com" {
		t.Errorf("user not populated: %+v", entry.User)
	}
	if entry.Book == nil || entry.Book.Title != "The Go Programming Language" {
		t.Errorf("book not populated: %+v", entry.Book)
	}
}
