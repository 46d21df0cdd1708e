package controller

import (
	"net/http"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LessonController struct {
	lessonService service.LessonService
}

func NewLessonController(lessonService service.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// GetLessons godoc
// @Summary List lessons
// @Tags Lessons
// @Produce json
// @Param level query string false "Filter by proficiency level"
// @Success 200 {array} dto.LessonSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /lessons [get]
func (c *LessonController) GetLessons(ctx *gin.Context) {
	lessons, err := c.lessonService.GetLessons(ctx.Query("level"))
	if err != nil {
		log.Error().Err(err).Msg("GetLessons failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}

// GetLesson godoc
// @Summary Get one lesson with its content
// @Tags Lessons
// @Produce json
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} dto.LessonDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{lesson_id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lesson_id")
	if !ok {
		return
	}
	lesson, err := c.lessonService.GetLesson(lessonID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}
