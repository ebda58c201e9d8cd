package service

import (
	"context"
	"errors"

	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBookNotRented = errors.New("book is not in your rented list")
)

// UserService handles self-service profile operations and the admin
// user listing. Profile access is always keyed off the authenticated
// identity; there is no path to another user's record.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the caller's own record with both shelves.
func (s *UserService) Profile(ctx context.Context, userID int64) (model.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProfileResponse{}, ErrUserNotFound
		}
		return model.ProfileResponse{}, err
	}

	return s.profileResponse(ctx, user)
}

// UpdateProfile applies a self-service edit. Empty fields keep their
// stored values; the password is re-hashed only when one is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ProfileResponse{}, ErrUserNotFound
		}
		return model.ProfileResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := crypto.HashPassword(req.Password)
		if err != nil {
			return model.ProfileResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.ProfileResponse{}, ErrEmailTaken
		}
		return model.ProfileResponse{}, err
	}

	return s.profileResponse(ctx, user)
}

// Unrent removes a book from the caller's rented shelf. No compensating
// entry is written to the transaction log: the log is acquisition
// history, returns are not recorded.
func (s *UserService) Unrent(ctx context.Context, userID, bookID int64) error {
	err := s.users.RemoveRented(ctx, userID, bookID)
	if errors.Is(err, repository.ErrNotRented) {
		return ErrBookNotRented
	}
	return err
}

// List returns every user account without credential hashes. Admin only,
// enforced at the routing layer.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i := range users {
		result[i] = userToResponse(&users[i])
	}
	return result, nil
}

func (s *UserService) profileResponse(ctx context.Context, user *model.User) (model.ProfileResponse, error) {
	purchased, err := s.users.BookIDs(ctx, user.ID, model.KindPurchase)
	if err != nil {
		return model.ProfileResponse{}, err
	}
	rented, err := s.users.BookIDs(ctx, user.ID, model.KindRental)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return model.ProfileResponse{
		UserResponse:   userToResponse(user),
		PurchasedBooks: purchased,
		RentedBooks:    rented,
	}, nil
}
