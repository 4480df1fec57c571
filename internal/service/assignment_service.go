package service

import (
	"context"
	"fmt"
	"io"

	"assignment-service/internal/models"
	"assignment-service/internal/validation"
)

// ImageUpload is an incoming attachment to hand to the object store.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AssignmentService owns the owner-scoped write paths: create, update and
// delete. The caller identity is threaded in explicitly on every operation.
type AssignmentService struct {
	Store    AssignmentStore
	Uploader Uploader
}

func NewAssignmentService(store AssignmentStore, uploader Uploader) *AssignmentService {
	return &AssignmentService{Store: store, Uploader: uploader}
}

// Create validates the payload, uploads the optional image and persists the
// new assignment owned by callerID.
func (s *AssignmentService) Create(ctx context.Context, callerID string, payload validation.CreatePayload, image *ImageUpload) (*models.Assignment, error) {
	draft, err := validation.ParseCreate(payload)
	if err != nil {
		return nil, err
	}
	draft.User = callerID

	if image != nil {
		uploaded, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		draft.Image = uploaded
	}

	if err := s.Store.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Update applies a partial update under fill-missing-from-current semantics.
// Only the owner may update; a new image replaces the stored one, otherwise
// the existing image is kept.
func (s *AssignmentService) Update(ctx context.Context, id, callerID string, payload validation.UpdatePayload, image *ImageUpload) (*models.Assignment, error) {
	existing, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.User != callerID {
		return nil, models.ErrUnauthorized
	}

	updated, err := validation.ParseUpdate(payload, existing)
	if err != nil {
		return nil, err
	}

	if image != nil {
		uploaded, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		updated.Image = uploaded
	}

	if err := s.Store.Update(ctx, id, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the assignment and every submission embedded in it.
// Owner-only.
func (s *AssignmentService) Delete(ctx context.Context, id, callerID string) error {
	existing, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.User != callerID {
		return models.ErrUnauthorized
	}
	return s.Store.Delete(ctx, id)
}

func (s *AssignmentService) upload(ctx context.Context, image *ImageUpload) (models.ImageFile, error) {
	if s.Uploader == nil {
		return models.ImageFile{}, fmt.Errorf("%w: no uploader configured", models.ErrUploadFailed)
	}
	uploaded, err := s.Uploader.Upload(ctx, image.FileName, image.Reader, image.Size, image.ContentType)
	if err != nil {
		return models.ImageFile{}, fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}
	return uploaded, nil
}
