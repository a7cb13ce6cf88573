package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagokise/qr-api/internal/model"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	Confirm(ctx context.Context, email string) error
	SetOTP(ctx context.Context, email, otp string) error
	IncrementOTPTries(ctx context.Context, email string) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, phone, password_hash, is_confirmed, confirm_otp, otp_tries, status, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &user.PasswordHash,
		&user.IsConfirmed, &user.ConfirmOTP, &user.OTPTries, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (full_name, email, phone, password_hash, is_confirmed, confirm_otp, otp_tries, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, user.FullName, user.Email, user.Phone, user.PasswordHash,
		user.IsConfirmed, user.ConfirmOTP, user.OTPTries, user.Status).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// users.email unique index is the real enforcement behind the
			// check-then-act email lookup.
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, sql, email))
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, sql, id))
}

// Confirm marks the account confirmed and clears the pending OTP in one statement.
func (r *userRepository) Confirm(ctx context.Context, email string) error {
	sql := `UPDATE users SET is_confirmed = TRUE, confirm_otp = NULL, otp_tries = 0, updated_at = NOW() WHERE email = $1`
	tag, err := r.db.Exec(ctx, sql, email)
	if err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for confirmation")
	}
	return nil
}

// SetOTP stores a freshly generated OTP and resets the try counter.
func (r *userRepository) SetOTP(ctx context.Context, email, otp string) error {
	sql := `UPDATE users SET confirm_otp = $1, otp_tries = 0, updated_at = NOW() WHERE email = $2`
	tag, err := r.db.Exec(ctx, sql, otp, email)
	if err != nil {
		return fmt.Errorf("failed to set otp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for otp update")
	}
	return nil
}

// IncrementOTPTries bumps the failed-verification counter.
func (r *userRepository) IncrementOTPTries(ctx context.Context, email string) error {
	sql := `UPDATE users SET otp_tries = otp_tries + 1, updated_at = NOW() WHERE email = $1`
	if _, err := r.db.Exec(ctx, sql, email); err != nil {
		return fmt.Errorf("failed to increment otp tries: %w", err)
	}
	return nil
}
