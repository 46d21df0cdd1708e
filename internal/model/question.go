package model

import (
	"time"

	"gorm.io/gorm"
)

// QuestionType tags the polymorphic question reference on an Answer.
// Questions live in one table per type, so (type, id) identifies a question.
type QuestionType string

const (
	QuestionTypeVocabulary QuestionType = "vocabulary"
	QuestionTypeGrammar    QuestionType = "grammar"
	QuestionTypeReading    QuestionType = "reading"
	QuestionTypeListening  QuestionType = "listening"
	QuestionTypeSpeaking   QuestionType = "speaking"
	QuestionTypeWriting    QuestionType = "writing"
)

// MCQTypes are the five multiple-choice skill categories, in the order they
// appear in an exam submission.
var MCQTypes = []QuestionType{
	QuestionTypeVocabulary,
	QuestionTypeGrammar,
	QuestionTypeReading,
	QuestionTypeListening,
	QuestionTypeSpeaking,
}

type Choice struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// MCQQuestion is the shared shape of the five multiple-choice tables. Each
// concrete type embeds it so every category keeps its own table, mirroring
// the content system that owns these rows.
type MCQQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	Choices       []Choice       `json:"choices" gorm:"serializer:json;not null"`
	CorrectChoice string         `json:"-" gorm:"not null"`
	Points        int            `json:"points" gorm:"not null;default:1"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type VocabularyQuestion struct {
	MCQQuestion
}

type GrammarQuestion struct {
	MCQQuestion
}

type ReadingQuestion struct {
	MCQQuestion
}

type ListeningQuestion struct {
	MCQQuestion
}

type SpeakingQuestion struct {
	MCQQuestion
}

// WritingQuestion is free-text-shaped and graded by the AI adapter.
// PassThreshold is the percentage at which the binary score becomes 1.
type WritingQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	SampleAnswer  string         `json:"-" gorm:"type:text"`
	Rubric        string         `json:"rubric" gorm:"type:text"`
	MinWords      int            `json:"min_words" gorm:"not null"`
	MaxWords      int            `json:"max_words" gorm:"not null"`
	Points        int            `json:"points" gorm:"not null;default:10"`
	PassThreshold float64        `json:"pass_threshold" gorm:"not null;default:60"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
