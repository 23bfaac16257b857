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

// InternshipController handles internship record operations
type InternshipController struct {
	internshipService services.InternshipService
	logger            zerolog.Logger
}

// NewInternshipController creates a new InternshipController
func NewInternshipController(internshipService services.InternshipService, logger zerolog.Logger) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
		logger:            logger,
	}
}

// Create submits a new internship record
// @Summary Submit an internship
// @Description Creates an internship record with company details and an offer letter attachment. Students only.
// @Tags internships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param organisationName formData string true "Company name"
// @Param organisationAddressWebsite formData string true "Company address or website"
// @Param natureOfWork formData string true "Nature of work"
// @Param reportingAuthority formData string true "Reporting authority as JSON"
// @Param startDate formData string true "Start date (YYYY-MM-DD)"
// @Param completionDate formData string true "Completion date (YYYY-MM-DD)"
// @Param modeOfInternship formData string true "Virtual or Physical"
// @Param stipend formData string true "Yes or No"
// @Param stipendAmount formData string false "Required when stipend is Yes"
// @Param remarks formData string false "Free-form remarks"
// @Param offerLetter formData file true "Offer letter (pdf, doc, docx)"
// @Success 201 {object} dto.APIResponse{data=models.Internship}
// @Failure 400 {object} dto.APIResponse "Invalid form data or dates"
// @Router /internships [post]
func (c *InternshipController) Create(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	var req dto.CreateInternshipRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data").
			WithDetails(middleware.FormatValidationError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offerLetter, err := ctx.FormFile("offerLetter")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Offer letter file is required").
			WithField("offerLetter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	internship, err := c.internshipService.CreateInternship(ctx.Request.Context(), caller, &req, offerLetter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("internshipID", internship.ID).Int64("studentID", caller.ID).Msg("Internship submitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(internship))
}

// GetByID retrieves a single internship
// @Summary Get an internship
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} dto.APIResponse{data=models.Internship}
// @Failure 403 {object} dto.APIResponse "Belongs to another student"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /internships/{id} [get]
func (c *InternshipController) GetByID(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid internship ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	internship, err := c.internshipService.GetInternshipByID(ctx.Request.Context(), caller, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(internship))
}

// List returns internships visible to the caller
// @Summary List internships
// @Description Students see their own records; faculty see every record, optionally filtered by status.
// @Tags internships
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Internship}
// @Router /internships [get]
func (c *InternshipController) List(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := &dto.InternshipFilterRequest{Page: page, PageSize: pageSize}
	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}

	internships, total, err := c.internshipService.ListInternships(ctx.Request.Context(), caller, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPagedResponse(internships, helpers.NewPaginationInfo(total, page, pageSize)))
}

// UpdateStatus sets the approval status of an internship record
// @Summary Approve or reject an internship
// @Description Faculty-only status transition for submitted internship records.
// @Tags internships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param request body dto.UpdateInternshipStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Internship}
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /internships/{id} [put]
func (c *InternshipController) UpdateStatus(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid internship ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateInternshipStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(middleware.FormatValidationError(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	internship, err := c.internshipService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("internshipID", id).Str("status", req.Status).Msg("Internship status updated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(internship))
}

// AttachCertificate uploads the completion certificate for an approved internship
// @Summary Attach a completion certificate
// @Description Uploads the completion certificate. Only the owning student may attach one, and only after approval.
// @Tags internships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Internship ID"
// @Param certificate formData file true "Completion certificate (pdf, doc, docx)"
// @Success 200 {object} dto.APIResponse{data=models.Internship}
// @Failure 400 {object} dto.APIResponse "Internship not approved yet"
// @Failure 403 {object} dto.APIResponse "Belongs to another student"
// @Router /internships/{id}/certificate [put]
func (c *InternshipController) AttachCertificate(ctx *gin.Context) {
	caller, _ := middleware.CurrentUser(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid internship ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	certificate, err := ctx.FormFile("certificate")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Certificate file is required").
			WithField("certificate")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	internship, err := c.internshipService.AttachCertificate(ctx.Request.Context(), caller, id, certificate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("internshipID", id).Msg("Completion certificate attached")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(internship))
}
