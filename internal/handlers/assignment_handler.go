package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"assignment-service/internal/models"
	"assignment-service/internal/service"
	"assignment-service/internal/validation"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	Service *service.AssignmentService
	Query   *service.QueryService
}

func NewAssignmentHandler(s *service.AssignmentService, q *service.QueryService) *AssignmentHandler {
	return &AssignmentHandler{Service: s, Query: q}
}

// CreateAssignment handles the multipart create form. Question arrays arrive
// as JSON strings next to the optional image file.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	payload := validation.CreatePayload{
		Name:               c.PostForm("name"),
		NameAr:             c.PostForm("name_ar"),
		SKU:                c.PostFormArray("sku"),
		Category:           c.PostForm("category"),
		CategoryAr:         c.PostForm("category_ar"),
		Questions:          c.PostForm("questions"),
		TechnicalQuestions: c.PostForm("technicalQuestions"),
	}

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
		return
	}
	if image != nil {
		defer image.Close()
	}

	assignment, err := h.Service.Create(context.Background(), c.GetString("userID"), payload, image.Upload())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// GetAssignments lists every assignment, newest created first.
func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	assignments, err := h.Query.ListAssignments(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

// GetRelatedAssignments returns up to five assignments sharing the category,
// excluding those named like the target assignment.
func (h *AssignmentHandler) GetRelatedAssignments(c *gin.Context) {
	category := c.Param("category")
	assignmentID := c.Param("assignmentId")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category is required"})
		return
	}
	related, err := h.Query.GetRelated(context.Background(), category, assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	if related == nil {
		related = []models.Assignment{}
	}
	c.JSON(http.StatusOK, related)
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.Query.GetAssignment(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignment applies an owner-only partial update; absent form fields
// keep their stored values.
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	payload := validation.UpdatePayload{
		Name:               c.PostForm("name"),
		NameAr:             c.PostForm("name_ar"),
		SKU:                c.PostFormArray("sku"),
		Category:           c.PostForm("category"),
		CategoryAr:         c.PostForm("category_ar"),
		Questions:          c.PostForm("questions"),
		TechnicalQuestions: c.PostForm("technicalQuestions"),
	}

	image, err := formImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
		return
	}
	if image != nil {
		defer image.Close()
	}

	assignment, err := h.Service.Update(context.Background(), c.Param("id"), c.GetString("userID"), payload, image.Upload())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment removes an assignment. Owner-only.
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.Service.Delete(context.Background(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}

// formFile pairs an opened multipart file with its upload descriptor so the
// handler can defer the close.
type formFile struct {
	file   multipart.File
	upload service.ImageUpload
}

// Upload is nil-safe: a nil formFile means no image was attached.
func (f *formFile) Upload() *service.ImageUpload {
	if f == nil {
		return nil
	}
	return &f.upload
}

func (f *formFile) Close() {
	if f != nil && f.file != nil {
		f.file.Close()
	}
}

// formImage pulls the optional "image" field out of the multipart form.
// A missing file or a non-multipart request is not an error.
func formImage(c *gin.Context) (*formFile, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &formFile{
		file: file,
		upload: service.ImageUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		},
	}, nil
}
