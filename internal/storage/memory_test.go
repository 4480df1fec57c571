package storage

import (
	"context"
	"errors"
	"testing"

	"assignment-service/internal/models"
)

func TestMemoryStoreAppendGuard(t *testing.T) {
	store := NewMemoryStore()
	a := &models.Assignment{Name: "quiz"}
	if err := store.Create(context.Background(), a); err != nil {
		t.Fatalf("create: %v", err)
	}

	sub := models.ScoreSubmission{User: "u1", Score: 2, TotalQuestions: 4}
	if err := store.AppendScore(context.Background(), a.ID, sub); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := store.AppendScore(context.Background(), a.ID, sub); !errors.Is(err, models.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	if err := store.AppendScore(context.Background(), "missing", sub); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Technical scores use their own dedup slot.
	tech := models.TechnicalScoreSubmission{User: "u1", TechnicalScore: 1}
	if err := store.AppendTechnicalScore(context.Background(), a.ID, tech); err != nil {
		t.Fatalf("technical append: %v", err)
	}
}

func TestMemoryStoreUpdateKeepsScores(t *testing.T) {
	store := NewMemoryStore()
	a := &models.Assignment{Name: "quiz"}
	store.Create(context.Background(), a)
	store.AppendScore(context.Background(), a.ID, models.ScoreSubmission{User: "u1"})

	patch := *a
	patch.Name = "renamed"
	patch.Scores = nil
	if err := store.Update(context.Background(), a.ID, &patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := store.FindByID(context.Background(), a.ID)
	if stored.Name != "renamed" {
		t.Errorf("expected renamed, got %q", stored.Name)
	}
	if len(stored.Scores) != 1 {
		t.Errorf("update must not drop submissions, got %d scores", len(stored.Scores))
	}
}

func TestFileSizeFormatter(t *testing.T) {
	cases := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 Bytes"},
		{512, "512.00 Bytes"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tc := range cases {
		if got := FileSizeFormatter(tc.bytes, 2); got != tc.expected {
			t.Errorf("FileSizeFormatter(%d) = %q, want %q", tc.bytes, got, tc.expected)
		}
	}
}
