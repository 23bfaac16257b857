package services

import (
	"context"
	"fmt"

	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
)

// AnnouncementService defines the interface for announcement operations
type AnnouncementService interface {
	ListAnnouncements(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error)
	CreateAnnouncement(ctx context.Context, caller *models.User, content string) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, caller *models.User, id int64) error
}

// announcementServiceImpl implements AnnouncementService
type announcementServiceImpl struct {
	store AnnouncementStore
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(store AnnouncementStore) AnnouncementService {
	return &announcementServiceImpl{store: store}
}

// ListAnnouncements returns announcements, newest first
func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error) {
	return s.store.GetAll(ctx, page, pageSize)
}

// CreateAnnouncement posts a new announcement authored by the caller
func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, caller *models.User, content string) (*models.Announcement, error) {
	a := &models.Announcement{
		FacultyID: caller.ID,
		Content:   content,
	}

	id, err := s.store.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("error creating announcement: %w", err)
	}

	return s.store.GetByID(ctx, id)
}

// DeleteAnnouncement removes an announcement; only its author may delete it
func (s *announcementServiceImpl) DeleteAnnouncement(ctx context.Context, caller *models.User, id int64) error {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.FacultyID != caller.ID {
		return apperrors.ErrPermissionDenied
	}
	return s.store.Delete(ctx, id)
}
