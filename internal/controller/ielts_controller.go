package controller

import (
	"net/http"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type IeltsController struct {
	ieltsService service.IeltsService
}

func NewIeltsController(ieltsService service.IeltsService) *IeltsController {
	return &IeltsController{ieltsService: ieltsService}
}

// GetTasks godoc
// @Summary List IELTS writing practice tasks
// @Tags IELTS
// @Produce json
// @Success 200 {array} dto.IeltsTaskDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /ielts/tasks [get]
func (c *IeltsController) GetTasks(ctx *gin.Context) {
	tasks, err := c.ieltsService.GetTasks()
	if err != nil {
		log.Error().Err(err).Msg("GetTasks failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tasks)
}

// GetFeedback godoc
// @Summary Get AI feedback on a practice essay
// @Description Grades the essay against the task rubric and maps the result to an estimated IELTS band. Feedback is formative; nothing is persisted.
// @Tags IELTS
// @Accept json
// @Produce json
// @Param task_id path int true "IELTS Task ID"
// @Param body body dto.IeltsFeedbackRequestDTO true "The essay to assess"
// @Success 200 {object} dto.IeltsFeedbackDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /ielts/tasks/{task_id}/feedback [post]
func (c *IeltsController) GetFeedback(ctx *gin.Context) {
	taskID, ok := parseUintParam(ctx, "task_id")
	if !ok {
		return
	}
	var req dto.IeltsFeedbackRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	feedback, err := c.ieltsService.GetFeedback(ctx.Request.Context(), taskID, req.Essay)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, feedback)
}
