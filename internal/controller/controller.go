package controller

import (
	"strconv"

	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/apperror"
	"github.com/SalahElkadim/sabrlinguaa-sub000/internal/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its HTTP status with a uniform body.
func respondError(ctx *gin.Context, err error) {
	ctx.JSON(apperror.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(400, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
