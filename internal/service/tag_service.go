package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tiagokise/qr-api/internal/model"
	"github.com/tiagokise/qr-api/internal/repository"
	"github.com/tiagokise/qr-api/internal/validation"
)

var (
	ErrTagNotFound = errors.New("tag not exists with this id")
	ErrNotTagOwner = errors.New("you are not authorized to do this operation")
)

// TagService defines owner-scoped operations on tags.
type TagService interface {
	List(ctx context.Context, userID int) ([]model.Tag, error)
	Detail(ctx context.Context, id int64, userID int) (*model.Tag, error)
	Create(ctx context.Context, userID int, req model.TagRequest) (*model.Tag, error)
	Update(ctx context.Context, id int64, userID int, req model.TagRequest) (*model.Tag, error)
	Delete(ctx context.Context, id int64, userID int) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

// List returns every tag owned by the caller, empty slice when none.
func (s *tagService) List(ctx context.Context, userID int) ([]model.Tag, error) {
	tags, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Detail returns the tag only when it exists and belongs to the caller.
// An existing tag owned by someone else is reported as not found so reads
// never leak other users' tag ids.
func (s *tagService) Detail(ctx context.Context, id int64, userID int) (*model.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	if tag == nil || tag.UserID != userID {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

func validateTag(req model.TagRequest) *validation.Errors {
	verrs := &validation.Errors{}
	verrs.Field("name", req.Name, validation.MinLength(1, "Name must not be empty."))
	verrs.Field("description", req.Description, validation.MinLength(1, "Description must not be empty."))
	verrs.Field("qrCode", req.QRCode, validation.MinLength(1, "QR code must not be empty."))
	return verrs
}

// Create persists a tag bound to the caller as owner.
func (s *tagService) Create(ctx context.Context, userID int, req model.TagRequest) (*model.Tag, error) {
	verrs := validateTag(req)
	if !verrs.HasErrors() {
		inUse, err := s.repo.CodeInUse(ctx, userID, req.QRCode, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check qr code: %w", err)
		}
		if inUse {
			verrs.Add("qrCode", "Tag already exists with this QR code.")
		}
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	tag := &model.Tag{
		Name:        req.Name,
		Description: req.Description,
		QRCode:      req.QRCode,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			verrs.Add("qrCode", "Tag already exists with this QR code.")
			return nil, verrs
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// Update applies new field values after existence and ownership checks.
func (s *tagService) Update(ctx context.Context, id int64, userID int, req model.TagRequest) (*model.Tag, error) {
	verrs := validateTag(req)
	if !verrs.HasErrors() {
		inUse, err := s.repo.CodeInUse(ctx, userID, req.QRCode, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check qr code: %w", err)
		}
		if inUse {
			verrs.Add("qrCode", "Tag already exists with this QR code.")
		}
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find tag for update: %w", err)
	}
	if existing == nil {
		return nil, ErrTagNotFound
	}
	if existing.UserID != userID {
		return nil, ErrNotTagOwner
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.QRCode = req.QRCode
	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			verrs.Add("qrCode", "Tag already exists with this QR code.")
			return nil, verrs
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return existing, nil
}

// Delete hard-deletes after existence and ownership checks.
func (s *tagService) Delete(ctx context.Context, id int64, userID int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find tag for deletion: %w", err)
	}
	if existing == nil {
		return ErrTagNotFound
	}
	if existing.UserID != userID {
		return ErrNotTagOwner
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
