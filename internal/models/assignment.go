package models

import "time"

// DefaultPhoto is used when an assignment is created without a cover photo.
const DefaultPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"

// ImageFile describes an attachment stored in the external object store.
// A zero value means the assignment has no image.
type ImageFile struct {
	FileName string `bson:"fileName,omitempty" json:"fileName,omitempty"`
	FilePath string `bson:"filePath,omitempty" json:"filePath,omitempty"`
	FileType string `bson:"fileType,omitempty" json:"fileType,omitempty"`
	FileSize string `bson:"fileSize,omitempty" json:"fileSize,omitempty"`
}

func (f ImageFile) IsZero() bool {
	return f == ImageFile{}
}

// Question is a multiple-choice item. Options and OptionsAr must both hold
// exactly four entries; validation rejects anything else.
type Question struct {
	ID              string   `bson:"id,omitempty" json:"id,omitempty"`
	Question        string   `bson:"question,omitempty" json:"question,omitempty"`
	QuestionAr      string   `bson:"question_ar,omitempty" json:"question_ar,omitempty"`
	Code            string   `bson:"code,omitempty" json:"code,omitempty"`
	Language        string   `bson:"language,omitempty" json:"language,omitempty"`
	Options         []string `bson:"options" json:"options"`
	OptionsAr       []string `bson:"options_ar" json:"options_ar"`
	CorrectAnswer   string   `bson:"correctAnswer,omitempty" json:"correctAnswer,omitempty"`
	CorrectAnswerAr string   `bson:"correctAnswer_ar,omitempty" json:"correctAnswer_ar,omitempty"`
}

// TechnicalQuestion is an open-ended item; no option-count rule applies.
type TechnicalQuestion struct {
	ID                  string `bson:"id,omitempty" json:"id,omitempty"`
	TechnicalQuestion   string `bson:"technicalQuestion,omitempty" json:"technicalQuestion,omitempty"`
	TechnicalQuestionAr string `bson:"technicalQuestion_ar,omitempty" json:"technicalQuestion_ar,omitempty"`
	CorrectAnswer       string `bson:"correctAnswer,omitempty" json:"correctAnswer,omitempty"`
	CorrectAnswerAr     string `bson:"correctAnswer_ar,omitempty" json:"correctAnswer_ar,omitempty"`
	CorrectCode         string `bson:"correctCode,omitempty" json:"correctCode,omitempty"`
}

// Assignment is the aggregate root. Questions, technical questions and both
// score collections live inside the document and have no independent
// lifecycle.
type Assignment struct {
	ID                 string                     `bson:"_id,omitempty" json:"id"`
	User               string                     `bson:"user,omitempty" json:"user,omitempty"`
	Photo              string                     `bson:"photo,omitempty" json:"photo,omitempty"`
	Name               string                     `bson:"name,omitempty" json:"name,omitempty"`
	NameAr             string                     `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	SKU                []string                   `bson:"sku,omitempty" json:"sku,omitempty"`
	Category           string                     `bson:"category,omitempty" json:"category,omitempty"`
	CategoryAr         string                     `bson:"category_ar,omitempty" json:"category_ar,omitempty"`
	Image              ImageFile                  `bson:"image,omitempty" json:"image,omitempty"`
	Questions          []Question                 `bson:"questions" json:"questions"`
	TechnicalQuestions []TechnicalQuestion        `bson:"technicalQuestions" json:"technicalQuestions"`
	Scores             []ScoreSubmission          `bson:"scores" json:"scores"`
	TechnicalScores    []TechnicalScoreSubmission `bson:"technicalScores" json:"technicalScores"`
	CreatedAt          time.Time                  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                  `bson:"updatedAt" json:"updatedAt"`
}

// FindScoreByUser returns the user's prior multiple-choice submission, if any.
func (a *Assignment) FindScoreByUser(userID string) *ScoreSubmission {
	for i := range a.Scores {
		if a.Scores[i].User == userID {
			return &a.Scores[i]
		}
	}
	return nil
}

// FindTechnicalScoreByUser returns the user's prior technical submission, if any.
func (a *Assignment) FindTechnicalScoreByUser(userID string) *TechnicalScoreSubmission {
	for i := range a.TechnicalScores {
		if a.TechnicalScores[i].User == userID {
			return &a.TechnicalScores[i]
		}
	}
	return nil
}
