package service

import (
	"context"
	"fmt"
	"math"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/repository"
	"github.com/jinzhu/copier"
)

// IELTS practice essays are scored against the task rubric out of this many
// points; the percentage then maps onto the 0-9 band scale.
const ieltsMaxPoints = 100

type IeltsService interface {
	GetTasks() ([]dto.IeltsTaskDTO, error)
	GetFeedback(ctx context.Context, taskID uint, essay string) (*dto.IeltsFeedbackDTO, error)
}

type ieltsService struct {
	taskRepo      repository.IeltsTaskRepository
	writingGrader WritingGrader
}

func NewIeltsService(taskRepo repository.IeltsTaskRepository, writingGrader WritingGrader) IeltsService {
	return &ieltsService{taskRepo: taskRepo, writingGrader: writingGrader}
}

func (s *ieltsService) GetTasks() ([]dto.IeltsTaskDTO, error) {
	tasks, err := s.taskRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching ielts tasks: %w", err)
	}
	resp := make([]dto.IeltsTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		var taskDTO dto.IeltsTaskDTO
		if err := copier.Copy(&taskDTO, &task); err != nil {
			return nil, fmt.Errorf("error preparing ielts task list: %w", err)
		}
		resp = append(resp, taskDTO)
	}
	return resp, nil
}

// GetFeedback grades a practice essay through the same adapter the placement
// test uses. Nothing is persisted; this is formative feedback only.
func (s *ieltsService) GetFeedback(ctx context.Context, taskID uint, essay string) (*dto.IeltsFeedbackDTO, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}

	grade := s.writingGrader.GradeWriting(ctx, WritingGradeInput{
		QuestionText:  task.Prompt,
		StudentAnswer: essay,
		Rubric:        task.Rubric,
		MaxPoints:     ieltsMaxPoints,
		MinWords:      task.MinWords,
		MaxWords:      task.MaxWords,
		PassThreshold: 50,
	})

	return &dto.IeltsFeedbackDTO{
		TaskID:        task.ID,
		EstimatedBand: percentageToBand(grade.Percentage),
		WordCount:     grade.WordCount,
		WithinLimit:   grade.WithinLimit,
		Feedback:      grade.Feedback,
		Strengths:     grade.Strengths,
		Improvements:  grade.Improvements,
		Model:         grade.Model,
		Cost:          grade.Cost,
	}, nil
}

// percentageToBand maps a 0-100 percentage onto the IELTS 0-9 scale in
// half-band steps.
func percentageToBand(percentage float64) float64 {
	band := percentage / 100 * 9
	return math.Round(band*2) / 2
}
