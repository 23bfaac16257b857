package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	"github.com/arvindh/interntrack/internal/pkg/filestorage"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
	"github.com/arvindh/interntrack/internal/pkg/validation"
)

// InternshipService defines the interface for internship operations
type InternshipService interface {
	CreateInternship(ctx context.Context, caller *models.User, req *dto.CreateInternshipRequest, offerLetter *multipart.FileHeader) (*models.Internship, error)
	GetInternshipByID(ctx context.Context, caller *models.User, id int64) (*models.Internship, error)
	ListInternships(ctx context.Context, caller *models.User, filter *dto.InternshipFilterRequest) ([]models.Internship, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Internship, error)
	AttachCertificate(ctx context.Context, caller *models.User, id int64, certificate *multipart.FileHeader) (*models.Internship, error)
	GetStats(ctx context.Context) (*dto.InternshipStatsResponse, error)
}

// internshipServiceImpl implements InternshipService
type internshipServiceImpl struct {
	store   InternshipStore
	storage filestorage.FileStorage
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(store InternshipStore, storage filestorage.FileStorage) InternshipService {
	return &internshipServiceImpl{
		store:   store,
		storage: storage,
	}
}

// CreateInternship validates and stores a student's internship record,
// saving the offer letter document if one was uploaded.
func (s *internshipServiceImpl) CreateInternship(ctx context.Context, caller *models.User, req *dto.CreateInternshipRequest, offerLetter *multipart.FileHeader) (*models.Internship, error) {
	var authority models.ReportingAuthority
	if err := json.Unmarshal([]byte(req.ReportingAuthority), &authority); err != nil {
		return nil, apperrors.NewValidationError("invalid reporting authority format")
	}
	if authority.Name == "" || authority.Designation == "" || authority.Email == "" || authority.Mobile == "" {
		return nil, apperrors.NewValidationError("reporting authority must include name, designation, email and mobile")
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	completionDate, err := helpers.ParseDate(req.CompletionDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !validation.ValidDateOrder(startDate, completionDate) {
		return nil, apperrors.NewValidationError("startDate must not be after completionDate")
	}

	var stipendAmount *float64
	if req.Stipend == string(models.StipendYes) {
		amount, err := strconv.ParseFloat(req.StipendAmount, 64)
		if err != nil || amount < 0 {
			return nil, apperrors.NewValidationError("stipendAmount is required when stipend is Yes")
		}
		stipendAmount = &amount
	}

	var offerLetterPath *string
	if offerLetter != nil {
		path, err := s.storage.SaveFile(offerLetter, "offer-letters")
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		offerLetterPath = &path
	}

	internship := &models.Internship{
		StudentID:                  caller.ID,
		OrganisationName:           req.OrganisationName,
		OrganisationAddressWebsite: req.OrganisationAddressWebsite,
		NatureOfWork:               req.NatureOfWork,
		ReportingAuthority:         authority,
		StartDate:                  startDate,
		CompletionDate:             completionDate,
		Mode:                       models.InternshipMode(req.ModeOfInternship),
		Stipend:                    models.StipendFlag(req.Stipend),
		StipendAmount:              stipendAmount,
		OfferLetter:                offerLetterPath,
		Status:                     models.InternshipPending,
	}
	if req.Remarks != "" {
		internship.Remarks = &req.Remarks
	}

	id, err := s.store.Create(ctx, internship)
	if err != nil {
		// Keep storage consistent if the insert failed
		if offerLetterPath != nil {
			_ = s.storage.DeleteFile(*offerLetterPath)
		}
		return nil, fmt.Errorf("error creating internship: %w", err)
	}

	return s.store.GetByID(ctx, id)
}

// GetInternshipByID retrieves an internship, restricting students to their own
func (s *internshipServiceImpl) GetInternshipByID(ctx context.Context, caller *models.User, id int64) (*models.Internship, error) {
	internship, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleStudent && internship.StudentID != caller.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return internship, nil
}

// ListInternships returns the caller's internships (students) or all (faculty)
func (s *internshipServiceImpl) ListInternships(ctx context.Context, caller *models.User, filter *dto.InternshipFilterRequest) ([]models.Internship, int64, error) {
	var studentID *int64
	if caller.Role == models.RoleStudent {
		studentID = &caller.ID
	}
	return s.store.GetAll(ctx, studentID, filter.Status, filter.Page, filter.PageSize)
}

// UpdateStatus transitions an internship's review state (faculty only, gated at the route)
func (s *internshipServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) (*models.Internship, error) {
	if err := s.store.UpdateStatus(ctx, id, models.InternshipStatus(status)); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

// AttachCertificate stores the completion certificate for an approved
// internship owned by the caller.
func (s *internshipServiceImpl) AttachCertificate(ctx context.Context, caller *models.User, id int64, certificate *multipart.FileHeader) (*models.Internship, error) {
	internship, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if internship.StudentID != caller.ID {
		return nil, apperrors.ErrNotOwner
	}
	if internship.Status != models.InternshipApproved {
		return nil, apperrors.ErrCertificateTooEarly
	}

	path, err := s.storage.SaveFile(certificate, "certificates")
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.store.SetCompletionCertificate(ctx, id, path); err != nil {
		_ = s.storage.DeleteFile(path)
		return nil, err
	}

	return s.store.GetByID(ctx, id)
}

// GetStats aggregates internships for the faculty dashboard
func (s *internshipServiceImpl) GetStats(ctx context.Context) (*dto.InternshipStatsResponse, error) {
	return s.store.GetStats(ctx)
}
