package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"assignment-service/internal/models"
	"assignment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	Service *service.SubmissionService
	Query   *service.QueryService
}

func NewSubmissionHandler(s *service.SubmissionService, q *service.QueryService) *SubmissionHandler {
	return &SubmissionHandler{Service: s, Query: q}
}

// SubmitScore records a user's multiple-choice submission. Score is a pointer
// so an explicit zero passes the required check.
func (h *SubmissionHandler) SubmitScore(c *gin.Context) {
	assignmentID := c.Param("assignmentId")

	var req struct {
		UserID         string          `json:"userId" binding:"required"`
		UserName       string          `json:"userName" binding:"required"`
		UserPhoto      string          `json:"userPhoto" binding:"required"`
		Score          *float64        `json:"score" binding:"required"`
		TotalQuestions int             `json:"totalQuestions" binding:"required"`
		Answers        json.RawMessage `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all required fields"})
		return
	}

	assignment, err := h.Service.SubmitScore(context.Background(), assignmentID, service.ScoreRequest{
		UserID:         req.UserID,
		UserName:       req.UserName,
		UserPhoto:      req.UserPhoto,
		Score:          *req.Score,
		TotalQuestions: req.TotalQuestions,
		RawAnswers:     req.Answers,
	})
	if err != nil {
		if errors.Is(err, models.ErrAlreadySubmitted) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already submitted the choice"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Score submitted successfully",
		"assignment": assignment,
	})
}

// SubmitTechnicalScore records a user's technical (code) submission.
func (h *SubmissionHandler) SubmitTechnicalScore(c *gin.Context) {
	assignmentID := c.Param("assignmentId")

	var req struct {
		UserID           string          `json:"userId" binding:"required"`
		UserName         string          `json:"userName" binding:"required"`
		UserPhoto        string          `json:"userPhoto" binding:"required"`
		TechnicalScore   *float64        `json:"technicalScore" binding:"required"`
		TotalQuestions   int             `json:"totalQuestions" binding:"required"`
		TechnicalAnswers json.RawMessage `json:"technicalAnswers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please fill in all required fields"})
		return
	}

	assignment, err := h.Service.SubmitTechnicalScore(context.Background(), assignmentID, service.TechnicalScoreRequest{
		UserID:         req.UserID,
		UserName:       req.UserName,
		UserPhoto:      req.UserPhoto,
		TechnicalScore: *req.TechnicalScore,
		TotalQuestions: req.TotalQuestions,
		RawAnswers:     req.TechnicalAnswers,
	})
	if err != nil {
		if errors.Is(err, models.ErrAlreadySubmitted) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already submitted the code"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Code submitted successfully",
		"assignment": assignment,
	})
}

// GetUserScore returns the caller-named user's prior submission for the
// assignment.
func (h *SubmissionHandler) GetUserScore(c *gin.Context) {
	assignmentID := c.Param("id")
	userID := c.Query("userId")
	if assignmentID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide user ID and assignment ID"})
		return
	}

	score, err := h.Query.GetUserScore(context.Background(), assignmentID, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User has not submitted answers for this assignment"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userScore": score})
}
