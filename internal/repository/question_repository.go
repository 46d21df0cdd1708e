package repository

import (
	"errors"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository resolves the polymorphic (type, id) question reference
// used by answers. Each question type has its own table; lookups go through
// a dispatch table instead of a reflective foreign key. Every lookup is
// scoped to one test, so an attempt can never grade another test's questions.
//
// Methods take the db handle explicitly so lookups can join an enclosing
// transaction.
type QuestionRepository interface {
	FindMCQ(db *gorm.DB, qType model.QuestionType, testID, id uint) (*model.MCQQuestion, error)
	FindWriting(db *gorm.DB, testID, id uint) (*model.WritingQuestion, error)
	CountByTest(db *gorm.DB, testID uint) (int64, error)
}

type mcqLoader func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error)

type questionRepository struct {
	loaders map[model.QuestionType]mcqLoader
}

func NewQuestionRepository() QuestionRepository {
	return &questionRepository{
		loaders: map[model.QuestionType]mcqLoader{
			model.QuestionTypeVocabulary: func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error) {
				var q model.VocabularyQuestion
				if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
					return nil, err
				}
				return &q.MCQQuestion, nil
			},
			model.QuestionTypeGrammar: func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error) {
				var q model.GrammarQuestion
				if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
					return nil, err
				}
				return &q.MCQQuestion, nil
			},
			model.QuestionTypeReading: func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error) {
				var q model.ReadingQuestion
				if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
					return nil, err
				}
				return &q.MCQQuestion, nil
			},
			model.QuestionTypeListening: func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error) {
				var q model.ListeningQuestion
				if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
					return nil, err
				}
				return &q.MCQQuestion, nil
			},
			model.QuestionTypeSpeaking: func(db *gorm.DB, testID, id uint) (*model.MCQQuestion, error) {
				var q model.SpeakingQuestion
				if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
					return nil, err
				}
				return &q.MCQQuestion, nil
			},
		},
	}
}

func (r *questionRepository) FindMCQ(db *gorm.DB, qType model.QuestionType, testID, id uint) (*model.MCQQuestion, error) {
	loader, ok := r.loaders[qType]
	if !ok {
		return nil, apperror.Validation("unknown question category %q", qType)
	}
	q, err := loader(db, testID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("%s question %d not found in test %d", qType, id, testID)
	}
	return q, err
}

func (r *questionRepository) FindWriting(db *gorm.DB, testID, id uint) (*model.WritingQuestion, error) {
	var q model.WritingQuestion
	if err := db.Where("test_id = ?", testID).First(&q, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("writing question %d not found in test %d", id, testID)
		}
		return nil, err
	}
	return &q, nil
}

// CountByTest sums question rows across all six tables for one test; the
// result is the attempt's maximum possible score.
func (r *questionRepository) CountByTest(db *gorm.DB, testID uint) (int64, error) {
	var total int64
	for _, m := range []interface{}{
		&model.VocabularyQuestion{},
		&model.GrammarQuestion{},
		&model.ReadingQuestion{},
		&model.ListeningQuestion{},
		&model.SpeakingQuestion{},
		&model.WritingQuestion{},
	} {
		var n int64
		if err := db.Model(m).Where("test_id = ?", testID).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
