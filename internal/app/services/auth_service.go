package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arvindh/interntrack/internal/app/approval"
	"github.com/arvindh/interntrack/internal/app/models"
	"github.com/arvindh/interntrack/internal/app/models/dto"
	"github.com/arvindh/interntrack/internal/pkg/apperrors"
	"github.com/arvindh/interntrack/internal/pkg/auth"
	"github.com/arvindh/interntrack/internal/pkg/logger"
	"github.com/arvindh/interntrack/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userStore  UserStore
	tokenStore TokenStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, tokenStore TokenStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userStore:  userStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
	}
}

// Register creates a new account. Students must carry a register number;
// approval capabilities are only accepted on faculty accounts and are fixed
// at registration.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.RoleType(req.Role)

	if role == models.RoleStudent {
		if req.RegisterNumber == nil || !validation.CompiledPatterns.RegisterNumber.MatchString(*req.RegisterNumber) {
			return nil, apperrors.ErrInvalidRegisterNumber
		}
		if len(req.FacultyRoles) > 0 {
			return nil, apperrors.NewValidationError("students cannot hold approval roles")
		}
	}

	var facultyRoles []approval.Role
	if role == models.RoleFaculty {
		for _, r := range req.FacultyRoles {
			facultyRoles = append(facultyRoles, approval.Role(r))
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashed,
		Role:           role,
		Department:     req.Department,
		RegisterNumber: req.RegisterNumber,
		FacultyRoles:   facultyRoles,
	}

	id, err := s.userStore.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Int64("userID", id).Str("role", req.Role).Msg("User registered")
	return s.issueTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke old refresh token")
	}

	return s.issueTokens(ctx, user)
}

// GetProfile retrieves the authenticated user's account
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userStore.GetUserByID(ctx, userID)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         ToUserResponse(user),
	}, nil
}

// ToUserResponse converts a user model into its public DTO
func ToUserResponse(user *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		Department:     user.Department,
		RegisterNumber: user.RegisterNumber,
	}
	for _, r := range user.FacultyRoles {
		resp.FacultyRoles = append(resp.FacultyRoles, string(r))
	}
	return resp
}
