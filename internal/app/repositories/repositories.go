package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency wiring
type Repositories struct {
	User         *UserRepository
	Internship   *InternshipRepository
	OD           *ODRepository
	Announcement *AnnouncementRepository
	Token        *TokenRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Internship:   NewInternshipRepository(db),
		OD:           NewODRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Token:        NewTokenRepository(db),
	}
}
