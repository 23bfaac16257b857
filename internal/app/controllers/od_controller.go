package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/app/services"
	"github.com/arvindh/interntrack/internal/middleware"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
)

// ODController handles on-duty leave request operations
type ODController struct {
	odService services.ODService
	logger    zerolog.Logger
}

// NewODController creates a new ODController
func NewODController(odService services.ODService, logger zerolog.Logger) *ODController {
	return &ODController{
		odService: odService,
		logger:    logger,
	}
}

// Create opens a new OD request
// @Summary Submit an OD request
// @Description Opens a new on-duty leave request against an approved internship. The request enters the approval chain at the class advisor.
// @Tags od
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateODRequest true "OD request details"
// @Success 201 {object} dto.APIResponse{data=models.OD}
// @Failure 400 {object} dto.APIResponse "Dates outside the internship period or internship not approved"
// @Failure 403 {object} dto.APIResponse "Internship belongs to another student"
// @Router /od [post]
func (c *ODController) Create(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	var req dto.CreateODRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(middleware.FormatValidationError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	od, err := c.odService.CreateOD(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("odID", od.ID).Int64("studentID", caller.ID).Msg("OD request submitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(od))
}

// GetByID retrieves a single OD request
// @Summary Get an OD request
// @Tags od
// @Produce json
// @Security BearerAuth
// @Param id path int true "OD request ID"
// @Success 200 {object} dto.APIResponse{data=models.OD}
// @Failure 403 {object} dto.APIResponse "Belongs to another student"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /od/{id} [get]
func (c *ODController) GetByID(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid OD request ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	od, err := c.odService.GetODByID(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(od))
}

// List returns the caller's OD queue
// @Summary List OD requests
// @Description Students see their own requests. Faculty see requests at their chain position plus requests they have already decided.
// @Tags od
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.OD}
// @Router /od [get]
func (c *ODController) List(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)
	page, pageSize := helpers.ParsePaginationParams(ctx)

	ods, total, err := c.odService.ListODs(ctx.Request.Context(), caller, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(ods, helpers.NewPaginationInfo(total, page, pageSize)))
}

// Decide records a faculty verdict at the OD's current chain position
// @Summary Decide an OD request
// @Description Records an approval or rejection at the request's current chain position. The acting role is resolved from the caller's capabilities.
// @Tags od
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "OD request ID"
// @Param request body dto.DecideODRequest true "Verdict"
// @Success 200 {object} dto.APIResponse{data=models.OD}
// @Failure 403 {object} dto.APIResponse "Caller holds no approval capability"
// @Failure 409 {object} dto.APIResponse "Out of turn or already decided"
// @Router /od/{id} [put]
func (c *ODController) Decide(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid OD request ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.DecideODRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails("approved is required and must be a boolean")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	od, err := c.odService.Decide(ctx.Request.Context(), caller, id, *req.Approved)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(od))
}
