package validation

import (
	"testing"

	"assignment-service/internal/models"
)

const fourOptionQuestion = `[{
	"question": "What does typeof null return?",
	"question_ar": "سؤال",
	"options": ["object", "null", "undefined", "string"],
	"options_ar": ["أ", "ب", "ج", "د"],
	"correctAnswer": "object",
	"correctAnswer_ar": "أ"
}]`

const technicalQuestion = `[{
	"technicalQuestion": "Implement debounce",
	"technicalQuestion_ar": "سؤال تقني",
	"correctAnswer": "A function delaying invocation",
	"correctCode": "function debounce(fn, ms) {}"
}]`

func validCreatePayload() CreatePayload {
	return CreatePayload{
		Name:               "JS Basics",
		Category:           "Frontend",
		Questions:          fourOptionQuestion,
		TechnicalQuestions: technicalQuestion,
	}
}

func TestParseCreateRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreatePayload)
		field  string
	}{
		{"missing name", func(p *CreatePayload) { p.Name = "" }, "name"},
		{"missing category", func(p *CreatePayload) { p.Category = "" }, "category"},
		{"missing questions", func(p *CreatePayload) { p.Questions = "" }, "questions"},
		{"missing technical questions", func(p *CreatePayload) { p.TechnicalQuestions = "" }, "technicalQuestions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validCreatePayload()
			tc.mutate(&payload)
			_, err := ParseCreate(payload)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			verr, ok := err.(*Error)
			if !ok {
				t.Fatalf("expected *Error, got %T", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestParseCreateOptionCountInvariant(t *testing.T) {
	cases := []struct {
		name      string
		questions string
		wantErr   bool
	}{
		{"four and four", fourOptionQuestion, false},
		{"three english options", `[{"options":["a","b","c"],"options_ar":["a","b","c","d"]}]`, true},
		{"five english options", `[{"options":["a","b","c","d","e"],"options_ar":["a","b","c","d"]}]`, true},
		{"three arabic options", `[{"options":["a","b","c","d"],"options_ar":["a","b","c"]}]`, true},
		{"missing arabic options", `[{"options":["a","b","c","d"]}]`, true},
		{"malformed json", `[{"options":`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validCreatePayload()
			payload.Questions = tc.questions
			a, err := ParseCreate(payload)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, q := range a.Questions {
				if len(q.Options) != 4 || len(q.OptionsAr) != 4 {
					t.Errorf("accepted question with %d/%d options", len(q.Options), len(q.OptionsAr))
				}
			}
		})
	}
}

func TestParseCreateDefaults(t *testing.T) {
	a, err := ParseCreate(validCreatePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.SKU) != 1 || a.SKU[0] != "SKU" {
		t.Errorf("expected sku placeholder [SKU], got %v", a.SKU)
	}
	if a.Photo != models.DefaultPhoto {
		t.Errorf("expected default photo, got %q", a.Photo)
	}
	if a.Questions[0].ID == "" {
		t.Error("expected generated question id")
	}
	if len(a.Scores) != 0 || len(a.TechnicalScores) != 0 {
		t.Error("expected empty score collections on a new assignment")
	}
}

func TestParseUpdateMergeSemantics(t *testing.T) {
	existing := &models.Assignment{
		Name:     "JS Basics",
		NameAr:   "أساسيات",
		Category: "Frontend",
		SKU:      []string{"SKU"},
		Questions: []models.Question{{
			ID:        "q1",
			Question:  "old",
			Options:   []string{"a", "b", "c", "d"},
			OptionsAr: []string{"a", "b", "c", "d"},
		}},
		TechnicalQuestions: []models.TechnicalQuestion{{ID: "t1"}},
		Image:              models.ImageFile{FileName: "cover.png"},
	}

	// Supplying only name keeps everything else.
	updated, err := ParseUpdate(UpdatePayload{Name: "JS Advanced"}, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "JS Advanced" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}
	if updated.Category != "Frontend" || updated.NameAr != "أساسيات" {
		t.Error("untouched fields must keep their current values")
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Question != "old" {
		t.Error("questions must be unchanged when not supplied")
	}
	if updated.Image.FileName != "cover.png" {
		t.Error("image must be unchanged when not supplied")
	}

	// Supplying questions replaces the whole array.
	updated, err = ParseUpdate(UpdatePayload{Questions: fourOptionQuestion}, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Question != "What does typeof null return?" {
		t.Errorf("expected full question replacement, got %+v", updated.Questions)
	}
	if updated.Questions[0].ID == "" {
		t.Error("replacement question without id must get a fresh one")
	}

	// Replacement arrays still honor the option-count rule.
	if _, err := ParseUpdate(UpdatePayload{Questions: `[{"options":["a"],"options_ar":["a"]}]`}, existing); err == nil {
		t.Error("expected option-count violation on update")
	}
}

func TestParseUpdatePreservesSuppliedIDs(t *testing.T) {
	existing := &models.Assignment{Name: "x"}
	updated, err := ParseUpdate(UpdatePayload{
		Questions: `[{"id":"keep-me","options":["a","b","c","d"],"options_ar":["a","b","c","d"]}]`,
	}, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Questions[0].ID != "keep-me" {
		t.Errorf("expected preserved id, got %q", updated.Questions[0].ID)
	}
}
