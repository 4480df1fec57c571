package service

import (
	"context"

	"assignment-service/internal/models"
)

// relatedLimit caps how many related assignments a lookup returns.
const relatedLimit = 5

// QueryService covers the read paths: single fetch, newest-first listing,
// related-by-category lookup and prior-submission retrieval.
type QueryService struct {
	Store AssignmentStore
}

func NewQueryService(store AssignmentStore) *QueryService {
	return &QueryService{Store: store}
}

func (s *QueryService) GetAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	return s.Store.FindByID(ctx, id)
}

func (s *QueryService) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return s.Store.FindAll(ctx)
}

// GetRelated resolves the target assignment and returns up to five others in
// the category, newest first. Exclusion is by name equality, not id: two
// distinct assignments sharing a name are both excluded. Longstanding
// behavior, kept as is.
func (s *QueryService) GetRelated(ctx context.Context, category, assignmentID string) ([]models.Assignment, error) {
	target, err := s.Store.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return s.Store.FindRelated(ctx, category, target.Name, relatedLimit)
}

// GetUserScore returns the user's prior multiple-choice submission for the
// assignment, or ErrNotFound when the user never submitted.
func (s *QueryService) GetUserScore(ctx context.Context, assignmentID, userID string) (*models.ScoreSubmission, error) {
	assignment, err := s.Store.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	score := assignment.FindScoreByUser(userID)
	if score == nil {
		return nil, models.ErrNotFound
	}
	return score, nil
}
