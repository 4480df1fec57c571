package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"assignment-service/internal/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// CreatePayload is the raw create request. Questions and TechnicalQuestions
// arrive as serialized JSON arrays, the way the frontend posts them alongside
// the multipart image field.
type CreatePayload struct {
	Name               string `validate:"required"`
	NameAr             string
	SKU                []string
	Category           string `validate:"required"`
	CategoryAr         string
	Questions          string `validate:"required"`
	TechnicalQuestions string `validate:"required"`
}

// UpdatePayload carries optional fields for a partial update. Empty strings
// mean "keep the current value"; supplied question arrays fully replace the
// existing ones.
type UpdatePayload struct {
	Name               string
	NameAr             string
	SKU                []string
	Category           string
	CategoryAr         string
	Questions          string
	TechnicalQuestions string
}

type questionPayload struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	QuestionAr      string   `json:"question_ar"`
	Code            string   `json:"code"`
	Language        string   `json:"language"`
	Options         []string `json:"options" validate:"required,len=4"`
	OptionsAr       []string `json:"options_ar" validate:"required,len=4"`
	CorrectAnswer   string   `json:"correctAnswer"`
	CorrectAnswerAr string   `json:"correctAnswer_ar"`
}

type technicalQuestionPayload struct {
	ID                  string `json:"id"`
	TechnicalQuestion   string `json:"technicalQuestion"`
	TechnicalQuestionAr string `json:"technicalQuestion_ar"`
	CorrectAnswer       string `json:"correctAnswer"`
	CorrectAnswerAr     string `json:"correctAnswer_ar"`
	CorrectCode         string `json:"correctCode"`
}

// ParseCreate validates a create payload and builds the assignment draft.
// The caller identity and any uploaded image are attached by the service.
func ParseCreate(p CreatePayload) (*models.Assignment, error) {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, newError(jsonField(verrs[0].Field()), "please fill in all required fields")
		}
		return nil, newError("payload", "please fill in all required fields")
	}

	questions, err := parseQuestions(p.Questions)
	if err != nil {
		return nil, err
	}
	technical, err := parseTechnicalQuestions(p.TechnicalQuestions)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, newError("questions", "please fill in all required fields")
	}
	if len(technical) == 0 {
		return nil, newError("technicalQuestions", "please fill in all required fields")
	}

	sku := p.SKU
	if len(sku) == 0 {
		sku = []string{"SKU"}
	}

	return &models.Assignment{
		Photo:              models.DefaultPhoto,
		Name:               p.Name,
		NameAr:             p.NameAr,
		SKU:                sku,
		Category:           p.Category,
		CategoryAr:         p.CategoryAr,
		Questions:          questions,
		TechnicalQuestions: technical,
		Scores:             []models.ScoreSubmission{},
		TechnicalScores:    []models.TechnicalScoreSubmission{},
	}, nil
}

// ParseUpdate merges the payload over the existing assignment. Absent fields
// keep their current value; question arrays, when present, are replaced
// wholesale and re-validated under the same option-count rule.
func ParseUpdate(p UpdatePayload, existing *models.Assignment) (*models.Assignment, error) {
	updated := *existing

	if p.Name != "" {
		updated.Name = p.Name
	}
	if p.NameAr != "" {
		updated.NameAr = p.NameAr
	}
	if len(p.SKU) > 0 {
		updated.SKU = p.SKU
	}
	if p.Category != "" {
		updated.Category = p.Category
	}
	if p.CategoryAr != "" {
		updated.CategoryAr = p.CategoryAr
	}
	if p.Questions != "" {
		questions, err := parseQuestions(p.Questions)
		if err != nil {
			return nil, err
		}
		updated.Questions = questions
	}
	if p.TechnicalQuestions != "" {
		technical, err := parseTechnicalQuestions(p.TechnicalQuestions)
		if err != nil {
			return nil, err
		}
		updated.TechnicalQuestions = technical
	}
	return &updated, nil
}

func parseQuestions(raw string) ([]models.Question, error) {
	var payloads []questionPayload
	if err := json.Unmarshal(unwrapArray(raw), &payloads); err != nil {
		return nil, newError("questions", "malformed questions array")
	}
	questions := make([]models.Question, 0, len(payloads))
	for i, q := range payloads {
		if len(q.Options) != 4 || len(q.OptionsAr) != 4 {
			return nil, newError(fmt.Sprintf("questions[%d]", i), "each question must have 4 options")
		}
		id := q.ID
		if id == "" {
			id = primitive.NewObjectID().Hex()
		}
		questions = append(questions, models.Question{
			ID:              id,
			Question:        q.Question,
			QuestionAr:      q.QuestionAr,
			Code:            q.Code,
			Language:        q.Language,
			Options:         q.Options,
			OptionsAr:       q.OptionsAr,
			CorrectAnswer:   q.CorrectAnswer,
			CorrectAnswerAr: q.CorrectAnswerAr,
		})
	}
	return questions, nil
}

func parseTechnicalQuestions(raw string) ([]models.TechnicalQuestion, error) {
	var payloads []technicalQuestionPayload
	if err := json.Unmarshal(unwrapArray(raw), &payloads); err != nil {
		return nil, newError("technicalQuestions", "malformed technicalQuestions array")
	}
	questions := make([]models.TechnicalQuestion, 0, len(payloads))
	for _, q := range payloads {
		id := q.ID
		if id == "" {
			id = primitive.NewObjectID().Hex()
		}
		questions = append(questions, models.TechnicalQuestion{
			ID:                  id,
			TechnicalQuestion:   q.TechnicalQuestion,
			TechnicalQuestionAr: q.TechnicalQuestionAr,
			CorrectAnswer:       q.CorrectAnswer,
			CorrectAnswerAr:     q.CorrectAnswerAr,
			CorrectCode:         q.CorrectCode,
		})
	}
	return questions, nil
}

// jsonField maps struct field names from CreatePayload to their wire names.
func jsonField(name string) string {
	switch name {
	case "Name":
		return "name"
	case "Category":
		return "category"
	case "Questions":
		return "questions"
	case "TechnicalQuestions":
		return "technicalQuestions"
	}
	return name
}
