package model

import "time"

// Roles recognized by the authorization gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account in the database.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest represents a user registration request.
// It deliberately has no role field: registration always produces a
// regular user, and a client-supplied role is ignored.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a self-service profile update.
// An empty password leaves the stored credential untouched.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no credential hash).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse is a user's own record including both shelves.
type ProfileResponse struct {
	UserResponse
	PurchasedBooks []int64 `json:"purchasedBooks"`
	RentedBooks    []int64 `json:"rentedBooks"`
}
