package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"assignment-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory AssignmentStore with the same atomicity
// contract as the Mongo repository: the dedup guard and the append are
// observed together under one lock. Used by tests and local development.
type MemoryStore struct {
	mu          sync.Mutex
	assignments map[string]*models.Assignment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assignments: make(map[string]*models.Assignment)}
}

func (s *MemoryStore) Create(ctx context.Context, assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.ID == "" {
		assignment.ID = primitive.NewObjectID().Hex()
	}
	clone := *assignment
	s.assignments[assignment.ID] = &clone
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Assignment, 0, len(s.assignments))
	for _, a := range s.assignments {
		out = append(out, *a)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) FindRelated(ctx context.Context, category, excludeName string, limit int64) ([]models.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Assignment
	for _, a := range s.assignments {
		if a.Category == category && a.Name != excludeName {
			out = append(out, *a)
		}
	}
	sortNewestFirst(out)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, assignment *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.assignments[id]
	if !ok {
		return models.ErrNotFound
	}
	assignment.ID = id
	assignment.CreatedAt = existing.CreatedAt
	assignment.UpdatedAt = time.Now()
	// Append-only collections are not writable through Update.
	assignment.Scores = existing.Scores
	assignment.TechnicalScores = existing.TechnicalScores
	clone := *assignment
	s.assignments[id] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.assignments, id)
	return nil
}

func (s *MemoryStore) AppendScore(ctx context.Context, id string, sub models.ScoreSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return models.ErrNotFound
	}
	for i := range a.Scores {
		if a.Scores[i].User == sub.User {
			return models.ErrAlreadySubmitted
		}
	}
	a.Scores = append(a.Scores, sub)
	a.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) AppendTechnicalScore(ctx context.Context, id string, sub models.TechnicalScoreSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[id]
	if !ok {
		return models.ErrNotFound
	}
	for i := range a.TechnicalScores {
		if a.TechnicalScores[i].User == sub.User {
			return models.ErrAlreadySubmitted
		}
	}
	a.TechnicalScores = append(a.TechnicalScores, sub)
	a.UpdatedAt = time.Now()
	return nil
}

func sortNewestFirst(assignments []models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].CreatedAt.After(assignments[j].CreatedAt)
	})
}
