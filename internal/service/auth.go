package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
)

const minPasswordLength = 6

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, changes []model.Change) (*model.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type TokenIssuer interface {
	Issue(user *model.User) (string, error)
}

// AuthService handles accounts, credentials and profiles.
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = model.RoleStudent
	}

	v := &common.ValidationError{}
	if _, err := mail.ParseAddress(email); email == "" || err != nil {
		v.Add("email", "Please provide a valid email")
	}
	if len(req.Password) < minPasswordLength {
		v.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if name == "" {
		v.Add("name", "Name is required")
	}
	if role != model.RoleStudent && role != model.RoleAdmin {
		v.Add("role", "Role must be student or admin")
	}
	if err := v.Err(); err != nil {
		return model.AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		ID:              uuid.NewString(),
		Email:           email,
		PasswordHash:    hash,
		Name:            name,
		Role:            role,
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Bio:             strings.TrimSpace(req.Bio),
		ProfileImageURL: strings.TrimSpace(req.ProfileImageURL),
		ProfileFileURL:  strings.TrimSpace(req.ProfileFileURL),
		Institution:     strings.TrimSpace(req.Institution),
		Department:      strings.TrimSpace(req.Department),
		IsActive:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthResponse{}, err
	}

	stored, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}
	slog.Info("user registered", "user_id", stored.ID, "role", stored.Role)

	return s.authResponse(stored)
}

// Login fails with common.ErrInvalidCredentials alike for an unknown email, a
// deactivated account and a wrong password.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.AuthResponse{}, common.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}
	if !user.IsActive {
		return model.AuthResponse{}, common.ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("verifying password for %s: %w", user.ID, err)
	}
	if !match {
		return model.AuthResponse{}, common.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.AuthResponse{}, err
	}
	return model.AuthResponse{Token: token, User: user.Public()}, nil
}

// GetProfile returns the public view of a user.
func (s *AuthService) GetProfile(ctx context.Context, id string) (model.UserResponse, error) {
	if err := checkID(id); err != nil {
		return model.UserResponse{}, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.Public(), nil
}

// UpdateProfile applies the present fields. Email, role, password and the
// active flag are not reachable from here.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if err := checkID(id); err != nil {
		return model.UserResponse{}, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return model.UserResponse{}, common.Invalid("name", "Name is required")
	}

	var changes []model.Change
	add := func(field string, v *string) {
		if v != nil {
			changes = append(changes, model.Change{Field: field, Value: strings.TrimSpace(*v)})
		}
	}
	add("name", req.Name)
	add("phoneNumber", req.PhoneNumber)
	add("bio", req.Bio)
	add("profileImageUrl", req.ProfileImageURL)
	add("profileFileUrl", req.ProfileFileURL)
	add("institution", req.Institution)
	add("department", req.Department)

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.Public(), nil
}

// ChangePassword replaces the stored hash after checking the old password.
func (s *AuthService) ChangePassword(ctx context.Context, id string, req model.ChangePasswordRequest) error {
	if err := checkID(id); err != nil {
		return err
	}

	v := &common.ValidationError{}
	if req.OldPassword == "" {
		v.Add("oldPassword", "Old password is required")
	}
	if len(req.NewPassword) < minPasswordLength {
		v.Add("newPassword", fmt.Sprintf("New password must be at least %d characters", minPasswordLength))
	}
	if err := v.Err(); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	match, err := s.hasher.Verify(req.OldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verifying password for %s: %w", id, err)
	}
	if !match {
		return common.ErrInvalidOldPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if _, err := s.users.Update(ctx, id, []model.Change{{Field: "passwordHash", Value: hash}}); err != nil {
		return err
	}

	slog.Info("password changed", "user_id", id)
	return nil
}

// Deactivate disables login for the account without deleting it.
func (s *AuthService) Deactivate(ctx context.Context, id string) (model.UserResponse, error) {
	if err := checkID(id); err != nil {
		return model.UserResponse{}, err
	}
	user, err := s.users.Update(ctx, id, []model.Change{{Field: "isActive", Value: false}})
	if err != nil {
		return model.UserResponse{}, err
	}

	slog.Info("user deactivated", "user_id", id)
	return user.Public(), nil
}

// checkID rejects identifiers that cannot exist in the store before any lookup.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, common.ErrInvalidID)
	}
	return nil
}
