package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagokise/qr-api/internal/model"
)

// TagRepository defines operations for tag data
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	FindByID(ctx context.Context, id int64) (*model.Tag, error)
	FindByUser(ctx context.Context, userID int) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, id int64) error
	CodeInUse(ctx context.Context, userID int, qrCode string, excludeID int64) (bool, error)
}

type tagRepository struct {
	db DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db DB) TagRepository {
	return &tagRepository{db: db}
}

const tagColumns = `id, name, description, qr_code, user_id, created_at, updated_at`

// Create inserts a new tag bound to its owner
func (r *tagRepository) Create(ctx context.Context, t *model.Tag) error {
	sql := `INSERT INTO tags (name, description, qr_code, user_id)
            VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, t.Name, t.Description, t.QRCode, t.UserID).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FindByID retrieves a tag by its ID
func (r *tagRepository) FindByID(ctx context.Context, id int64) (*model.Tag, error) {
	t := &model.Tag{}
	sql := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.QRCode, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find tag by ID: %w", err)
	}
	return t, nil
}

// FindByUser retrieves every tag owned by the given user
func (r *tagRepository) FindByUser(ctx context.Context, userID int) ([]model.Tag, error) {
	sql := `SELECT ` + tagColumns + ` FROM tags WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by user: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.QRCode, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

// Update modifies an existing tag
func (r *tagRepository) Update(ctx context.Context, t *model.Tag) error {
	sql := `UPDATE tags SET name = $1, description = $2, qr_code = $3, updated_at = NOW()
            WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, t.Name, t.Description, t.QRCode, t.ID).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("tag not found for update")
		}
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return nil
}

// Delete removes a tag from the database
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM tags WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("tag not found for deletion")
	}
	return nil
}

// CodeInUse reports whether the owner already registered the code on another
// tag. excludeID skips the tag being updated; pass 0 on create.
func (r *tagRepository) CodeInUse(ctx context.Context, userID int, qrCode string, excludeID int64) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM tags WHERE user_id = $1 AND qr_code = $2 AND id <> $3)`
	var exists bool
	if err := r.db.QueryRow(ctx, sql, userID, qrCode, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check qr code uniqueness: %w", err)
	}
	return exists, nil
}
