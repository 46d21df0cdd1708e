package controller

import (
	"net/http"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	submissionService service.ExamSubmissionService
}

func NewExamController(submissionService service.ExamSubmissionService) *ExamController {
	return &ExamController{submissionService: submissionService}
}

// StartExam godoc
// @Summary Start a placement-test attempt
// @Description Creates an in-progress attempt for the given test with the test's time limit.
// @Tags Placement
// @Accept json
// @Produce json
// @Param test_id path int true "Placement Test ID"
// @Param body body dto.StartExamDTO true "Student starting the exam"
// @Success 201 {object} dto.AttemptDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found or inactive"
// @Router /tests/{test_id}/attempts [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.StartExamDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.submissionService.StartExam(req.UserID, testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("StartExam failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SubmitExam godoc
// @Summary Submit all answers for an attempt
// @Description Grades the whole submission atomically: MCQ categories by exact match, writing answers through AI grading with a deterministic fallback. Concurrent submissions for one attempt serialize; the loser gets 409.
// @Tags Placement
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.SubmitExamDTO true "Answers grouped by skill category"
// @Success 200 {object} dto.ExamResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt or a referenced question not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed or abandoned"
// @Failure 410 {object} dto.ErrorResponse "Time limit exceeded; attempt abandoned"
// @Router /attempts/{attempt_id}/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitExamDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitExamAnswers(ctx.Request.Context(), attemptID, req)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("SubmitExam failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetExamResult godoc
// @Summary Get the result of a completed attempt
// @Tags Placement
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.ExamResultDTO
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not yet submitted"
// @Router /attempts/{attempt_id}/result [get]
func (c *ExamController) GetExamResult(ctx *gin.Context) {
	attemptID, ok := parseUintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	result, err := c.submissionService.GetExamResult(attemptID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetUserLevel godoc
// @Summary Get a student's current placement level
// @Description Returns the level achieved on the most recent completed attempt.
// @Tags Placement
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "No completed attempt"
// @Router /users/{user_id}/level [get]
func (c *ExamController) GetUserLevel(ctx *gin.Context) {
	userID, ok := parseUintParam(ctx, "user_id")
	if !ok {
		return
	}
	level, err := c.submissionService.GetUserLevel(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"level": level})
}
