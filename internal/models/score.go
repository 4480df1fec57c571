package models

import "time"

// Answer is one normalized multiple-choice answer inside a submission.
// IsCorrect is whatever the client reported; absent flags are stored as
// false rather than rejected.
type Answer struct {
	AssignmentID   string `bson:"assignmentId" json:"assignmentId"`
	QuestionIndex  int    `bson:"questionIndex" json:"questionIndex"`
	SelectedOption int    `bson:"selectedOption" json:"selectedOption"`
	Answer         string `bson:"answer,omitempty" json:"answer,omitempty"`
	IsCorrect      bool   `bson:"isCorrect" json:"isCorrect"`
}

// ScoreSubmission is one user's complete multiple-choice result for an
// assignment. Immutable once appended; at most one per (assignment, user).
type ScoreSubmission struct {
	User           string    `bson:"user" json:"user"`
	UserName       string    `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhoto      string    `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	Score          float64   `bson:"score" json:"score"`
	TotalQuestions int       `bson:"totalQuestions" json:"totalQuestions"`
	Answers        []Answer  `bson:"answers" json:"answers"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// TechnicalAnswer mirrors Answer for open-ended questions; it carries both a
// textual answer and a code answer with independent correctness flags.
type TechnicalAnswer struct {
	AssignmentID    string `bson:"assignmentId" json:"assignmentId"`
	QuestionIndex   int    `bson:"questionIndex" json:"questionIndex"`
	TechnicalAnswer string `bson:"technicalAnswer,omitempty" json:"technicalAnswer,omitempty"`
	CodeAnswer      string `bson:"codeAnswer,omitempty" json:"codeAnswer,omitempty"`
	Language        string `bson:"language,omitempty" json:"language,omitempty"`
	AnswerIsCorrect bool   `bson:"answerIsCorrect" json:"answerIsCorrect"`
	CodeIsCorrect   bool   `bson:"codeIsCorrect" json:"codeIsCorrect"`
}

// TechnicalScoreSubmission is the technical-question counterpart of
// ScoreSubmission, kept in the assignment's technicalScores collection.
type TechnicalScoreSubmission struct {
	User             string            `bson:"user" json:"user"`
	UserName         string            `bson:"userName,omitempty" json:"userName,omitempty"`
	UserPhoto        string            `bson:"userPhoto,omitempty" json:"userPhoto,omitempty"`
	TechnicalScore   float64           `bson:"technicalScore" json:"technicalScore"`
	TotalQuestions   int               `bson:"totalQuestions" json:"totalQuestions"`
	TechnicalAnswers []TechnicalAnswer `bson:"technicalAnswers" json:"technicalAnswers"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
}
