package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()
	return buf, w.FormDataContentType()
}

func TestCreateAssignmentRequiresAuth(t *testing.T) {
	r, _ := newTestRouter()
	body, contentType := createAssignmentForm(t)
	req := httptest.NewRequest("POST", "/assignments/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAssignmentMissingFields(t *testing.T) {
	r, _ := newTestRouter()
	body, contentType := postForm(t, map[string]string{"name": "JS Basics"})
	req := httptest.NewRequest("POST", "/assignments/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAssignmentBadOptionCount(t *testing.T) {
	r, _ := newTestRouter()
	body, contentType := postForm(t, map[string]string{
		"name":               "JS Basics",
		"category":           "Frontend",
		"questions":          `[{"question":"q","options":["a","b"],"options_ar":["a","b","c","d"]}]`,
		"technicalQuestions": `[{"technicalQuestion":"t"}]`,
	})
	req := httptest.NewRequest("POST", "/assignments/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAssignment(t *testing.T) {
	r, _ := newTestRouter()
	id := createAssignment(t, r)

	req := httptest.NewRequest("GET", "/assignments/"+id, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	json.NewDecoder(rec.Body).Decode(&result)
	assert.Equal(t, "JS Basics", result["name"])

	req = httptest.NewRequest("GET", "/assignments/unknown-id", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAssignments(t *testing.T) {
	r, _ := newTestRouter()
	createAssignment(t, r)
	createAssignment(t, r)

	req := httptest.NewRequest("GET", "/assignments/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result []map[string]any
	json.NewDecoder(rec.Body).Decode(&result)
	assert.Len(t, result, 2)
}

func TestUpdateAssignmentOwnerOnly(t *testing.T) {
	r, _ := newTestRouter()
	id := createAssignment(t, r)

	body, contentType := postForm(t, map[string]string{"name": "Renamed"})
	req := httptest.NewRequest("PATCH", "/assignments/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "intruder")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body, contentType = postForm(t, map[string]string{"name": "Renamed"})
	req = httptest.NewRequest("PATCH", "/assignments/"+id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-ID", "owner-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	json.NewDecoder(rec.Body).Decode(&result)
	assert.Equal(t, "Renamed", result["name"])
	assert.Equal(t, "Frontend", result["category"])
}

func TestDeleteAssignmentOwnerOnly(t *testing.T) {
	r, _ := newTestRouter()
	id := createAssignment(t, r)

	req := httptest.NewRequest("DELETE", "/assignments/"+id, nil)
	req.Header.Set("X-User-ID", "intruder")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("DELETE", "/assignments/"+id, nil)
	req.Header.Set("X-User-ID", "owner-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("GET", "/assignments/"+id, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRelatedAssignments(t *testing.T) {
	r, _ := newTestRouter()

	create := func(name, category string) string {
		body, contentType := postForm(t, map[string]string{
			"name":               name,
			"category":           category,
			"questions":          `[{"question":"q","options":["a","b","c","d"],"options_ar":["a","b","c","d"]}]`,
			"technicalQuestions": `[{"technicalQuestion":"t"}]`,
		})
		req := httptest.NewRequest("POST", "/assignments/", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-User-ID", "owner-1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		var created map[string]any
		json.NewDecoder(rec.Body).Decode(&created)
		return created["id"].(string)
	}

	targetID := create("Quiz1", "cat")
	create("Quiz1", "cat") // same name, also excluded
	create("Quiz2", "cat")

	req := httptest.NewRequest("GET", "/assignments/related/cat/"+targetID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var related []map[string]any
	json.NewDecoder(rec.Body).Decode(&related)
	assert.Len(t, related, 1)
	assert.Equal(t, "Quiz2", related[0]["name"])

	req = httptest.NewRequest("GET", "/assignments/related/cat/unknown-id", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
