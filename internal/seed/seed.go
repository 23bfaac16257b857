// Package seed creates default accounts on first startup.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/arvindh/interntrack/internal/app/approval"
	appModels "github.com/arvindh/interntrack/internal/app/models"
	appRepos "github.com/arvindh/interntrack/internal/app/repositories"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	pkgAuth "github.com/arvindh/interntrack/internal/pkg/auth"
)

// CreateDefaultData seeds a faculty account holding every approval capability
// plus a demo student. Existing accounts are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default accounts...")
	var finalErr error

	defaultPassword, err := pkgAuth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	coordinator := &appModels.User{
		Name:       "Default Coordinator",
		Email:      "coordinator@interntrack.local",
		Password:   defaultPassword,
		Role:       appModels.RoleFaculty,
		Department: "CSE",
		FacultyRoles: []approval.Role{
			approval.RoleClassAdvisor,
			approval.RoleMentor,
			approval.RoleHOD,
			approval.RoleCoordinator,
		},
	}
	if _, err := userRepo.CreateUser(ctx, coordinator); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default coordinator account")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Str("email", coordinator.Email).Msg("Default coordinator account created")
	}

	registerNumber := "CS00000001"
	student := &appModels.User{
		Name:           "Demo Student",
		Email:          "student@interntrack.local",
		Password:       defaultPassword,
		Role:           appModels.RoleStudent,
		Department:     "CSE",
		RegisterNumber: &registerNumber,
	}
	if _, err := userRepo.CreateUser(ctx, student); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) && !errors.Is(err, apperrors.ErrRegisterNumberExists) {
			lgr.Error().Err(err).Msg("Error creating demo student account")
			finalErr = errors.Join(finalErr, err)
		}
	} else {
		lgr.Info().Str("email", student.Email).Msg("Demo student account created")
	}

	return finalErr
}
