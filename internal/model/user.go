package model

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a user in the database.
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	Role            string
	PhoneNumber     string
	Bio             string
	ProfileImageURL string
	ProfileFileURL  string
	Institution     string
	Department      string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Public returns the user data safe for API responses.
func (u *User) Public() UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		PhoneNumber:     u.PhoneNumber,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		ProfileFileURL:  u.ProfileFileURL,
		Institution:     u.Institution,
		Department:      u.Department,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	ProfileFileURL  string    `json:"profileFileUrl"`
	Institution     string    `json:"institution,omitempty"`
	Department      string    `json:"department,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	PhoneNumber     string `json:"phoneNumber"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profileImageUrl"`
	ProfileFileURL  string `json:"profileFileUrl"`
	Institution     string `json:"institution"`
	Department      string `json:"department"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response with a token and user info.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest carries a partial profile update; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	PhoneNumber     *string `json:"phoneNumber"`
	Bio             *string `json:"bio"`
	ProfileImageURL *string `json:"profileImageUrl"`
	ProfileFileURL  *string `json:"profileFileUrl"`
	Institution     *string `json:"institution"`
	Department      *string `json:"department"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
