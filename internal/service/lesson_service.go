package service

import (
	"fmt"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// LessonService is the read-only lesson catalogue; content management owns
// the rows.
type LessonService interface {
	GetLessons(level string) ([]dto.LessonSummaryDTO, error)
	GetLesson(id uint) (*dto.LessonDTO, error)
}

type lessonService struct {
	lessonRepo repository.LessonRepository
}

func NewLessonService(lessonRepo repository.LessonRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo}
}

func (s *lessonService) GetLessons(level string) ([]dto.LessonSummaryDTO, error) {
	lessons, err := s.lessonRepo.FindAll(level)
	if err != nil {
		log.Error().Err(err).Str("level", level).Msg("Failed to list lessons")
		return nil, fmt.Errorf("error fetching lessons: %w", err)
	}

	summaries := make([]dto.LessonSummaryDTO, 0, len(lessons))
	for _, lesson := range lessons {
		var summary dto.LessonSummaryDTO
		if err := copier.Copy(&summary, &lesson); err != nil {
			return nil, fmt.Errorf("error preparing lesson list: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *lessonService) GetLesson(id uint) (*dto.LessonDTO, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	var resp dto.LessonDTO
	if err := copier.Copy(&resp, lesson); err != nil {
		return nil, fmt.Errorf("error preparing lesson response: %w", err)
	}
	return &resp, nil
}
