package services

import (
	"context"
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
)

// Store interfaces abstract the persistence layer so services can be tested
// against in-memory implementations. The pgx repositories satisfy them.

// UserStore is the persistence contract for user accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenStore is the persistence contract for refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, isRevoked bool, err error)
	RevokeToken(ctx context.Context, token string) error
}

// InternshipStore is the persistence contract for internships
type InternshipStore interface {
	Create(ctx context.Context, in *models.Internship) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	GetAll(ctx context.Context, studentID *int64, status *string, page, pageSize int) ([]models.Internship, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.InternshipStatus) error
	SetCompletionCertificate(ctx context.Context, id int64, path string) error
	GetStats(ctx context.Context) (*dto.InternshipStatsResponse, error)
}

// ODStore is the persistence contract for OD requests. UpdateFlow must be a
// conditional write keyed on the expected current step so concurrent
// decisions cannot both land.
type ODStore interface {
	Create(ctx context.Context, od *models.OD) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.OD, error)
	ListByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.OD, int64, error)
	ListVisibleToFaculty(ctx context.Context, roles []approval.Role, page, pageSize int) ([]models.OD, int64, error)
	UpdateFlow(ctx context.Context, id int64, expectedStep approval.Step, flow approval.Flow, newStep approval.Step) (bool, error)
	GetStats(ctx context.Context) (*dto.ODStatsResponse, error)
}

// AnnouncementStore is the persistence contract for announcements
type AnnouncementStore interface {
	Create(ctx context.Context, a *models.Announcement) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Announcement, int64, error)
	Delete(ctx context.Context, id int64) error
}
