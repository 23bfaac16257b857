package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/app/services"
	"github.com/arvindh/interntrack/internal/middleware"
)

// StatsController serves dashboard aggregates
type StatsController struct {
	internshipService services.InternshipService
	odService         services.ODService
	logger            zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(internshipService services.InternshipService, odService services.ODService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		internshipService: internshipService,
		odService:         odService,
		logger:            logger,
	}
}

// InternshipStats returns internship aggregates for the faculty dashboard
// @Summary Internship statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.InternshipStatsResponse}
// @Router /stats/internships [get]
func (c *StatsController) InternshipStats(ctx *gin.Context) {
	stats, err := c.internshipService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// ODStats returns OD request aggregates for the faculty dashboard
// @Summary OD request statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ODStatsResponse}
// @Router /stats/od [get]
func (c *StatsController) ODStats(ctx *gin.Context) {
	stats, err := c.odService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
