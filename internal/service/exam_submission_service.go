package service

import (
	"context"
	"sync"
	"time"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/model"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamSubmissionService owns the placement-test attempt lifecycle: starting
// an attempt, grading a full submission atomically, and reading results.
type ExamSubmissionService interface {
	StartExam(userID, testID uint) (*dto.AttemptDTO, error)
	SubmitExamAnswers(ctx context.Context, attemptID uint, req dto.SubmitExamDTO) (*dto.ExamResultDTO, error)
	GetExamResult(attemptID uint) (*dto.ExamResultDTO, error)
	GetUserLevel(userID uint) (string, error)
}

type examSubmissionService struct {
	testRepo      repository.PlacementTestRepository
	questionRepo  repository.QuestionRepository
	attemptRepo   repository.AttemptRepository
	answerRepo    repository.AnswerRepository
	writingGrader WritingGrader
	levelService  LevelService
	db            *gorm.DB
}

func NewExamSubmissionService(
	testRepo repository.PlacementTestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	writingGrader WritingGrader,
	levelService LevelService,
	db *gorm.DB,
) ExamSubmissionService {
	return &examSubmissionService{
		testRepo:      testRepo,
		questionRepo:  questionRepo,
		attemptRepo:   attemptRepo,
		answerRepo:    answerRepo,
		writingGrader: writingGrader,
		levelService:  levelService,
		db:            db,
	}
}

// StartExam creates an in-progress attempt against an active test.
func (s *examSubmissionService) StartExam(userID, testID uint) (*dto.AttemptDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		return nil, err
	}
	if !test.IsActive {
		return nil, apperror.NotFound("placement test %d is not available", testID)
	}

	attempt := model.Attempt{
		UserID:           userID,
		TestID:           testID,
		Status:           model.AttemptInProgress,
		StartedAt:        time.Now(),
		TimeLimitMinutes: test.TimeLimitMinutes,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("StartExam: failed to create attempt")
		return nil, apperror.Internal("failed to start exam", err)
	}

	return &dto.AttemptDTO{
		ID:               attempt.ID,
		UserID:           attempt.UserID,
		TestID:           attempt.TestID,
		Status:           string(attempt.Status),
		StartedAt:        attempt.StartedAt,
		TimeLimitMinutes: attempt.TimeLimitMinutes,
	}, nil
}

// writingJob pairs one submitted writing answer with its question so AI
// grading can run after all lookups succeeded.
type writingJob struct {
	answer   dto.WritingAnswerDTO
	question *model.WritingQuestion
}

// SubmitExamAnswers grades a whole submission inside one transaction with a
// write lock on the attempt row. Any unknown question id rolls back every
// answer written by this call. External grading failures never abort the
// submission; the adapter absorbs them into fallback results.
func (s *examSubmissionService) SubmitExamAnswers(ctx context.Context, attemptID uint, req dto.SubmitExamDTO) (*dto.ExamResultDTO, error) {
	var result *dto.ExamResultDTO
	var expired bool

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindByIDForUpdate(tx, attemptID)
		if err != nil {
			return err
		}
		switch attempt.Status {
		case model.AttemptCompleted:
			return apperror.StateConflict("exam already submitted")
		case model.AttemptAbandoned:
			return apperror.StateConflict("exam abandoned")
		}

		now := time.Now()
		if attempt.IsTimeUp(now) {
			// The abandon must survive the early return, so the closure
			// succeeds (commits) and the TimeExpired error is raised after.
			attempt.MarkAbandoned()
			if err := s.attemptRepo.Save(tx, attempt); err != nil {
				return err
			}
			expired = true
			return nil
		}

		totalScore := 0
		categories := make(map[string]dto.CategoryBreakdownDTO, len(model.MCQTypes))

		mcqByType := map[model.QuestionType][]dto.MCQAnswerDTO{
			model.QuestionTypeVocabulary: req.Vocabulary,
			model.QuestionTypeGrammar:    req.Grammar,
			model.QuestionTypeReading:    req.Reading,
			model.QuestionTypeListening:  req.Listening,
			model.QuestionTypeSpeaking:   req.Speaking,
		}

		for _, qType := range model.MCQTypes {
			breakdown := dto.CategoryBreakdownDTO{}
			for _, submitted := range mcqByType[qType] {
				question, err := s.questionRepo.FindMCQ(tx, qType, attempt.TestID, submitted.QuestionID)
				if err != nil {
					return err
				}
				isCorrect, points := GradeMCQ(submitted.SelectedChoice, question.CorrectChoice, question.Points)
				answer := model.Answer{
					AttemptID:      attempt.ID,
					QuestionType:   qType,
					QuestionID:     question.ID,
					SelectedChoice: submitted.SelectedChoice,
					IsCorrect:      isCorrect,
					PointsEarned:   points,
				}
				if err := s.answerRepo.Upsert(tx, &answer); err != nil {
					return err
				}
				breakdown.TotalQuestions++
				if isCorrect {
					breakdown.CorrectAnswers++
				} else {
					breakdown.WrongAnswers++
				}
				breakdown.TotalPoints += points
			}
			breakdown.AccuracyPercent = accuracyPercent(breakdown.CorrectAnswers, breakdown.TotalQuestions)
			categories[string(qType)] = breakdown
			totalScore += breakdown.TotalPoints
		}

		// Resolve every writing question before any AI call so an unknown id
		// aborts the submission without spending grading cost.
		jobs := make([]writingJob, 0, len(req.Writing))
		for _, submitted := range req.Writing {
			question, err := s.questionRepo.FindWriting(tx, attempt.TestID, submitted.QuestionID)
			if err != nil {
				return err
			}
			jobs = append(jobs, writingJob{answer: submitted, question: question})
		}

		// Grade calls are independent; fan out one goroutine per answer and
		// persist only after all results are in, still inside this tx.
		gradeResults := make([]*GradingResult, len(jobs))
		var wg sync.WaitGroup
		for i := range jobs {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				job := jobs[idx]
				gradeResults[idx] = s.writingGrader.GradeWriting(ctx, WritingGradeInput{
					QuestionText:  job.question.Prompt,
					StudentAnswer: job.answer.TextAnswer,
					SampleAnswer:  job.question.SampleAnswer,
					Rubric:        job.question.Rubric,
					MaxPoints:     job.question.Points,
					MinWords:      job.question.MinWords,
					MaxWords:      job.question.MaxWords,
					PassThreshold: job.question.PassThreshold,
				})
			}(i)
		}
		wg.Wait()

		writing := dto.WritingBreakdownDTO{}
		for i, job := range jobs {
			grade := gradeResults[i]
			answer := model.Answer{
				AttemptID:    attempt.ID,
				QuestionType: model.QuestionTypeWriting,
				QuestionID:   job.question.ID,
				TextAnswer:   job.answer.TextAnswer,
				IsCorrect:    grade.IsCorrect,
				PointsEarned: grade.Score,
				AIFeedback:   grade.Feedback,
				AIModel:      grade.Model,
				AICost:       grade.Cost,
				Strengths:    grade.Strengths,
				Improvements: grade.Improvements,
			}
			if err := s.answerRepo.Upsert(tx, &answer); err != nil {
				return err
			}
			writing.TotalQuestions++
			if grade.IsCorrect {
				writing.CorrectAnswers++
			} else {
				writing.WrongAnswers++
			}
			writing.TotalPoints += grade.Score
			writing.TotalAiCost += grade.Cost
			writing.GradedAnswers = append(writing.GradedAnswers, dto.GradedWritingAnswerDTO{
				QuestionID:   job.question.ID,
				IsCorrect:    grade.IsCorrect,
				PointsEarned: grade.Score,
				Feedback:     grade.Feedback,
				Strengths:    grade.Strengths,
				Improvements: grade.Improvements,
				Model:        grade.Model,
				Cost:         grade.Cost,
			})
		}
		writing.AccuracyPercent = accuracyPercent(writing.CorrectAnswers, writing.TotalQuestions)
		totalScore += writing.TotalPoints

		maxScore, err := s.questionRepo.CountByTest(tx, attempt.TestID)
		if err != nil {
			return err
		}
		percentage := 0.0
		if maxScore > 0 {
			percentage = float64(totalScore) / float64(maxScore) * 100
		}
		level := s.levelService.LevelForPercentage(percentage)

		// Fresh timestamp: grading (and the AI calls inside it) counts
		// towards the attempt's completion time.
		attempt.MarkCompleted(time.Now(), totalScore, level)
		if err := s.attemptRepo.Save(tx, attempt); err != nil {
			return err
		}

		result = &dto.ExamResultDTO{
			AttemptID:       attempt.ID,
			TotalScore:      totalScore,
			MaxScore:        int(maxScore),
			Percentage:      percentage,
			LevelAchieved:   level,
			CompletedAt:     attempt.CompletedAt,
			DurationMinutes: attempt.DurationMinutes(),
			Categories:      categories,
			Writing:         writing,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	if expired {
		return nil, apperror.TimeExpired("time limit exceeded, exam abandoned")
	}

	log.Info().Uint("attemptID", result.AttemptID).Int("totalScore", result.TotalScore).
		Str("level", result.LevelAchieved).Float64("aiCost", result.Writing.TotalAiCost).
		Msg("Exam submission graded")
	return result, nil
}

// GetExamResult rebuilds the composite result of a completed attempt from
// its persisted answers.
func (s *examSubmissionService) GetExamResult(attemptID uint) (*dto.ExamResultDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptInProgress {
		return nil, apperror.StateConflict("exam not yet submitted")
	}
	if attempt.Status == model.AttemptAbandoned {
		return nil, apperror.StateConflict("exam abandoned")
	}

	categories := make(map[string]dto.CategoryBreakdownDTO, len(model.MCQTypes))
	for _, qType := range model.MCQTypes {
		categories[string(qType)] = dto.CategoryBreakdownDTO{}
	}
	writing := dto.WritingBreakdownDTO{}

	for _, answer := range attempt.Answers {
		if answer.QuestionType == model.QuestionTypeWriting {
			writing.TotalQuestions++
			if answer.IsCorrect {
				writing.CorrectAnswers++
			} else {
				writing.WrongAnswers++
			}
			writing.TotalPoints += answer.PointsEarned
			writing.TotalAiCost += answer.AICost
			writing.GradedAnswers = append(writing.GradedAnswers, dto.GradedWritingAnswerDTO{
				QuestionID:   answer.QuestionID,
				IsCorrect:    answer.IsCorrect,
				PointsEarned: answer.PointsEarned,
				Feedback:     answer.AIFeedback,
				Strengths:    answer.Strengths,
				Improvements: answer.Improvements,
				Model:        answer.AIModel,
				Cost:         answer.AICost,
			})
			continue
		}
		breakdown := categories[string(answer.QuestionType)]
		breakdown.TotalQuestions++
		if answer.IsCorrect {
			breakdown.CorrectAnswers++
		} else {
			breakdown.WrongAnswers++
		}
		breakdown.TotalPoints += answer.PointsEarned
		categories[string(answer.QuestionType)] = breakdown
	}
	for name, breakdown := range categories {
		breakdown.AccuracyPercent = accuracyPercent(breakdown.CorrectAnswers, breakdown.TotalQuestions)
		categories[name] = breakdown
	}
	writing.AccuracyPercent = accuracyPercent(writing.CorrectAnswers, writing.TotalQuestions)

	maxScore, err := s.questionRepo.CountByTest(s.db, attempt.TestID)
	if err != nil {
		return nil, err
	}
	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(attempt.TotalScore) / float64(maxScore) * 100
	}

	return &dto.ExamResultDTO{
		AttemptID:       attempt.ID,
		TotalScore:      attempt.TotalScore,
		MaxScore:        int(maxScore),
		Percentage:      percentage,
		LevelAchieved:   attempt.LevelAchieved,
		CompletedAt:     attempt.CompletedAt,
		DurationMinutes: attempt.DurationMinutes(),
		Categories:      categories,
		Writing:         writing,
	}, nil
}

// GetUserLevel returns the level achieved on the user's most recent
// completed attempt.
func (s *examSubmissionService) GetUserLevel(userID uint) (string, error) {
	attempt, err := s.attemptRepo.FindLatestCompletedByUser(userID)
	if err != nil {
		return "", err
	}
	return attempt.LevelAchieved, nil
}

func accuracyPercent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
