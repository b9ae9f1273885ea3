package repositories

import (
	"context"

	"stockmaster_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error) // includes the password hash
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email, companyName string) error
	SetProfilePicture(ctx context.Context, userID int64, path *string) error
}

// authRepository implements the AuthRepository interface.
type authRepository struct {
	db *sqlx.DB // The direct database connection pool
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sqlx.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, name, email, password, company_name, profile_picture, role, created_at`

// CreateUser inserts a new user. user.PasswordHash must already be hashed.
// ID, Role and CreatedAt are filled from the inserted row.
func (r *authRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT INTO users (name, email, password, company_name)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, role, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.CompanyName,
	).Scan(&user.ID, &user.Role, &user.CreatedAt)
	if err != nil {
		return 0, translateError(err, "creating user")
	}
	return user.ID, nil
}

// FindUserByEmail retrieves a user by email, password hash included.
func (r *authRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, user, query, email); err != nil {
		return nil, translateError(err, "finding user by email")
	}
	return user, nil
}

// FindUserByID retrieves a user by their ID.
func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, user, query, userID); err != nil {
		return nil, translateError(err, "finding user by id")
	}
	return user, nil
}

func (r *authRepository) UpdateProfile(ctx context.Context, userID int64, name, email, companyName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $1, email = $2, company_name = $3 WHERE id = $4`,
		name, email, companyName, userID)
	if err != nil {
		return translateError(err, "updating profile")
	}
	return expectAffected(res, "updating profile")
}

// SetProfilePicture stores the public path of the user's picture; nil clears it.
func (r *authRepository) SetProfilePicture(ctx context.Context, userID int64, path *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET profile_picture = $1 WHERE id = $2`, path, userID)
	if err != nil {
		return translateError(err, "setting profile picture")
	}
	return expectAffected(res, "setting profile picture")
}
