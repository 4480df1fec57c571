package validation

import (
	"bytes"
	"encoding/json"

	"assignment-service/internal/models"
)

// answerPayload uses pointers for the required numeric fields so a missing
// key is distinguishable from a zero index.
type answerPayload struct {
	QuestionIndex  *int   `json:"questionIndex"`
	SelectedOption *int   `json:"selectedOption"`
	Answer         string `json:"answer"`
	IsCorrect      *bool  `json:"isCorrect"`
}

type technicalAnswerPayload struct {
	QuestionIndex   *int   `json:"questionIndex"`
	TechnicalAnswer string `json:"technicalAnswer"`
	CodeAnswer      string `json:"codeAnswer"`
	Language        string `json:"language"`
	AnswerIsCorrect *bool  `json:"answerIsCorrect"`
	CodeIsCorrect   *bool  `json:"codeIsCorrect"`
}

// ParseScoreAnswers normalizes a serialized answer array into Answer records
// bound to the assignment. Missing correctness flags become false; a missing
// questionIndex or selectedOption rejects the whole batch.
func ParseScoreAnswers(assignmentID string, raw []byte) ([]models.Answer, error) {
	var payloads []answerPayload
	if err := json.Unmarshal(unwrapArray(string(raw)), &payloads); err != nil {
		return nil, newError("answers", "malformed answers array")
	}
	answers := make([]models.Answer, 0, len(payloads))
	for _, a := range payloads {
		if a.QuestionIndex == nil || a.SelectedOption == nil {
			return nil, newError("answers", "each answer must have questionIndex and selectedOption")
		}
		answers = append(answers, models.Answer{
			AssignmentID:   assignmentID,
			QuestionIndex:  *a.QuestionIndex,
			SelectedOption: *a.SelectedOption,
			Answer:         a.Answer,
			IsCorrect:      boolOrFalse(a.IsCorrect),
		})
	}
	return answers, nil
}

// ParseTechnicalAnswers is ParseScoreAnswers for open-ended answers; both
// correctness flags default to false when omitted.
func ParseTechnicalAnswers(assignmentID string, raw []byte) ([]models.TechnicalAnswer, error) {
	var payloads []technicalAnswerPayload
	if err := json.Unmarshal(unwrapArray(string(raw)), &payloads); err != nil {
		return nil, newError("technicalAnswers", "malformed technicalAnswers array")
	}
	answers := make([]models.TechnicalAnswer, 0, len(payloads))
	for _, a := range payloads {
		if a.QuestionIndex == nil {
			return nil, newError("technicalAnswers", "each answer must have questionIndex")
		}
		answers = append(answers, models.TechnicalAnswer{
			AssignmentID:    assignmentID,
			QuestionIndex:   *a.QuestionIndex,
			TechnicalAnswer: a.TechnicalAnswer,
			CodeAnswer:      a.CodeAnswer,
			Language:        a.Language,
			AnswerIsCorrect: boolOrFalse(a.AnswerIsCorrect),
			CodeIsCorrect:   boolOrFalse(a.CodeIsCorrect),
		})
	}
	return answers, nil
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}

// unwrapArray tolerates the frontend double-encoding an array as a JSON
// string ("[{...}]" inside quotes) and returns the inner array bytes.
func unwrapArray(raw string) []byte {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err == nil {
			return []byte(inner)
		}
	}
	return trimmed
}
