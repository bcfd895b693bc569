package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/campusnotes/campusnotes-api/internal/common"
	"github.com/campusnotes/campusnotes-api/internal/model"
)

const mysqlDuplicateEntry = 1062

const userColumns = `id, email, password_hash, name, role, phone_number, bio, profile_image_url,
	profile_file_url, institution, department, is_active, created_at, updated_at`

// userFields whitelists the columns Update may write.
var userFields = map[string]string{
	"name":            "name",
	"phoneNumber":     "phone_number",
	"bio":             "bio",
	"profileImageUrl": "profile_image_url",
	"profileFileUrl":  "profile_file_url",
	"institution":     "institution",
	"department":      "department",
	"passwordHash":    "password_hash",
	"isActive":        "is_active",
}

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user. A taken email yields common.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, password_hash, name, role, phone_number, bio,
		profile_image_url, profile_file_url, institution, department, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.PhoneNumber, user.Bio,
		user.ProfileImageURL, user.ProfileFileURL, user.Institution, user.Department, user.IsActive,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetByEmail looks a user up by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) getOne(ctx context.Context, column, value string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ?`

	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.PhoneNumber,
		&user.Bio, &user.ProfileImageURL, &user.ProfileFileURL, &user.Institution,
		&user.Department, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("loading user by %s: %w", column, err)
	}
	return user, nil
}

// Update writes the given fields and returns the stored user.
func (r *UserRepository) Update(ctx context.Context, id string, changes []model.Change) (*model.User, error) {
	sets := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	for _, ch := range changes {
		col, ok := userFields[ch.Field]
		if !ok {
			return nil, fmt.Errorf("users: field %q is not writable", ch.Field)
		}
		sets = append(sets, col+" = ?")
		args = append(args, ch.Value)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP(3)")
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
