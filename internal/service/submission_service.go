package service

import (
	"context"
	"encoding/json"
	"time"

	"assignment-service/internal/models"
	"assignment-service/internal/validation"
)

// ScoreRequest is a user's multiple-choice submission for one assignment.
// RawAnswers is the serialized answer array as received from the client.
type ScoreRequest struct {
	UserID         string
	UserName       string
	UserPhoto      string
	Score          float64
	TotalQuestions int
	RawAnswers     json.RawMessage
}

// TechnicalScoreRequest mirrors ScoreRequest for technical questions.
type TechnicalScoreRequest struct {
	UserID         string
	UserName       string
	UserPhoto      string
	TechnicalScore float64
	TotalQuestions int
	RawAnswers     json.RawMessage
}

// SubmissionService enforces the at-most-one-submission-per-user rule and
// appends immutable score records to the assignment aggregate.
type SubmissionService struct {
	Store AssignmentStore
}

func NewSubmissionService(store AssignmentStore) *SubmissionService {
	return &SubmissionService{Store: store}
}

// SubmitScore records a multiple-choice submission. The duplicate check runs
// before any answer parsing; the store's guarded append backs it up against
// racing submissions for the same user. Returns the updated assignment.
func (s *SubmissionService) SubmitScore(ctx context.Context, assignmentID string, req ScoreRequest) (*models.Assignment, error) {
	assignment, err := s.Store.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.FindScoreByUser(req.UserID) != nil {
		return nil, models.ErrAlreadySubmitted
	}

	answers, err := validation.ParseScoreAnswers(assignmentID, req.RawAnswers)
	if err != nil {
		return nil, err
	}

	sub := models.ScoreSubmission{
		User:           req.UserID,
		UserName:       req.UserName,
		UserPhoto:      req.UserPhoto,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        answers,
		CreatedAt:      time.Now(),
	}
	if err := s.Store.AppendScore(ctx, assignmentID, sub); err != nil {
		return nil, err
	}

	assignment.Scores = append(assignment.Scores, sub)
	return assignment, nil
}

// SubmitTechnicalScore records a technical submission against the
// technicalScores collection. Same dedup rules, tracked separately from the
// multiple-choice scores.
func (s *SubmissionService) SubmitTechnicalScore(ctx context.Context, assignmentID string, req TechnicalScoreRequest) (*models.Assignment, error) {
	assignment, err := s.Store.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.FindTechnicalScoreByUser(req.UserID) != nil {
		return nil, models.ErrAlreadySubmitted
	}

	answers, err := validation.ParseTechnicalAnswers(assignmentID, req.RawAnswers)
	if err != nil {
		return nil, err
	}

	sub := models.TechnicalScoreSubmission{
		User:             req.UserID,
		UserName:         req.UserName,
		UserPhoto:        req.UserPhoto,
		TechnicalScore:   req.TechnicalScore,
		TotalQuestions:   req.TotalQuestions,
		TechnicalAnswers: answers,
		CreatedAt:        time.Now(),
	}
	if err := s.Store.AppendTechnicalScore(ctx, assignmentID, sub); err != nil {
		return nil, err
	}

	assignment.TechnicalScores = append(assignment.TechnicalScores, sub)
	return assignment, nil
}
