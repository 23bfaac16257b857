package services

import (
	"context"
	"fmt"
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
	appAuth "github.com/arvindh/interntrack/internal/app/auth"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	"github.com/arvindh/interntrack/internal/pkg/helpers"
	"github.com/arvindh/interntrack/internal/pkg/logger"
	"github.com/arvindh/interntrack/internal/pkg/validation"
)

// ODService defines the interface for OD request operations
type ODService interface {
	CreateOD(ctx context.Context, caller *models.User, req *dto.CreateODRequest) (*models.OD, error)
	GetODByID(ctx context.Context, caller *models.User, id int64) (*models.OD, error)
	ListODs(ctx context.Context, caller *models.User, page, pageSize int) ([]models.OD, int64, error)
	Decide(ctx context.Context, caller *models.User, odID int64, approved bool) (*models.OD, error)
	GetStats(ctx context.Context) (*dto.ODStatsResponse, error)
}

// odServiceImpl implements ODService
type odServiceImpl struct {
	odStore         ODStore
	internshipStore InternshipStore
	now             func() time.Time
}

// NewODService creates a new ODService
func NewODService(odStore ODStore, internshipStore InternshipStore) ODService {
	return &odServiceImpl{
		odStore:         odStore,
		internshipStore: internshipStore,
		now:             time.Now,
	}
}

// CreateOD validates the internship gate and opens a new OD request at the
// first chain position.
func (s *odServiceImpl) CreateOD(ctx context.Context, caller *models.User, req *dto.CreateODRequest) (*models.OD, error) {
	internship, err := s.internshipStore.GetByID(ctx, req.InternshipID)
	if err != nil {
		return nil, err
	}

	// Internship gate: ownership, approval, date containment
	if internship.StudentID != caller.ID {
		return nil, apperrors.ErrNotOwner
	}
	if internship.Status != models.InternshipApproved {
		return nil, apperrors.ErrInternshipNotApproved
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if !validation.ValidDateOrder(startDate, endDate) {
		return nil, apperrors.NewValidationError("startDate must not be after endDate")
	}
	if !validation.WithinWindow(startDate, endDate, internship.StartDate, internship.CompletionDate) {
		return nil, apperrors.ErrDateOutOfRange
	}

	od := &models.OD{
		StudentID:    caller.ID,
		InternshipID: internship.ID,
		StartDate:    startDate,
		EndDate:      endDate,
		Purpose:      req.Purpose,
		Flow:         approval.Flow{},
		CurrentStep:  approval.StepClassAdvisor,
	}

	id, err := s.odStore.Create(ctx, od)
	if err != nil {
		return nil, fmt.Errorf("error creating OD request: %w", err)
	}

	created, err := s.odStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error reading back OD request: %w", err)
	}
	created.Internship = internship
	return created, nil
}

// GetODByID retrieves an OD request, restricting students to their own
func (s *odServiceImpl) GetODByID(ctx context.Context, caller *models.User, id int64) (*models.OD, error) {
	od, err := s.odStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleStudent && od.StudentID != caller.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return od, nil
}

// ListODs returns the caller's queue: students see their own requests,
// faculty see the requests visible to their capability set.
func (s *odServiceImpl) ListODs(ctx context.Context, caller *models.User, page, pageSize int) ([]models.OD, int64, error) {
	if caller.Role == models.RoleStudent {
		return s.odStore.ListByStudent(ctx, caller.ID, page, pageSize)
	}

	roles := appAuth.ChainRoles(caller)
	if len(roles) == 0 {
		return nil, 0, nil
	}
	return s.odStore.ListVisibleToFaculty(ctx, roles, page, pageSize)
}

// Decide applies the caller's verdict at the OD's current chain position.
// The acting role is resolved from the current step, so a caller holding
// several chain roles acts with whichever one the chain designates now.
func (s *odServiceImpl) Decide(ctx context.Context, caller *models.User, odID int64, approved bool) (*models.OD, error) {
	od, err := s.odStore.GetByID(ctx, odID)
	if err != nil {
		return nil, err
	}

	current := od.Flow.CurrentStep()
	if current.IsTerminal() {
		roles := appAuth.ChainRoles(caller)
		if len(roles) == 0 {
			return nil, apperrors.ErrPermissionDenied
		}
		// mirror the chain semantics: a role that already acted is replaying,
		// a role that never got its turn is out of turn
		for _, r := range roles {
			if od.Flow.Get(r) != nil {
				return nil, apperrors.ErrAlreadyFinalized
			}
		}
		return nil, apperrors.ErrOutOfTurn
	}

	role := approval.Role(current)
	if !appAuth.CanDecide(caller, role) {
		if len(appAuth.ChainRoles(caller)) > 0 {
			// in the chain, but not at this position right now
			return nil, apperrors.ErrOutOfTurn
		}
		return nil, apperrors.ErrPermissionDenied
	}

	newFlow, newStep, err := approval.Decide(od.Flow, role, approved, s.now())
	if err != nil {
		return nil, err
	}

	// Conditional write: only lands if no concurrent decision moved the chain
	// since we read it.
	updated, err := s.odStore.UpdateFlow(ctx, od.ID, current, newFlow, newStep)
	if err != nil {
		return nil, fmt.Errorf("error persisting decision: %w", err)
	}
	if !updated {
		latest, rerr := s.odStore.GetByID(ctx, odID)
		if rerr != nil {
			return nil, rerr
		}
		if latest.Flow.CurrentStep().IsTerminal() {
			return nil, apperrors.ErrAlreadyFinalized
		}
		return nil, apperrors.ErrOutOfTurn
	}

	logger.Info().
		Int64("odID", od.ID).
		Str("role", string(role)).
		Bool("approved", approved).
		Str("step", string(newStep)).
		Msg("OD decision recorded")

	od.Flow = newFlow
	od.CurrentStep = newStep
	return od, nil
}

// GetStats aggregates OD requests for the faculty dashboard
func (s *odServiceImpl) GetStats(ctx context.Context) (*dto.ODStatsResponse, error) {
	return s.odStore.GetStats(ctx)
}
