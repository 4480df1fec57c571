package service

import (
	"context"
	"io"

	"assignment-service/internal/models"
)

// AssignmentStore is the persistence boundary the services operate against.
// The Mongo repository satisfies it in production; tests use an in-memory
// implementation. Append operations must be atomic per assignment: the
// dedup guard and the push are observed together.
type AssignmentStore interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	FindAll(ctx context.Context) ([]models.Assignment, error)
	FindRelated(ctx context.Context, category, excludeName string, limit int64) ([]models.Assignment, error)
	Update(ctx context.Context, id string, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
	AppendScore(ctx context.Context, id string, sub models.ScoreSubmission) error
	AppendTechnicalScore(ctx context.Context, id string, sub models.TechnicalScoreSubmission) error
}

// Uploader stores an attachment in the external object store and returns its
// durable descriptor. Failures surface as models.ErrUploadFailed.
type Uploader interface {
	Upload(ctx context.Context, fileName string, r io.Reader, size int64, contentType string) (models.ImageFile, error)
}
