package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleetdesk/internal/auth"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/logger"
	"fleetdesk/internal/model"
	"fleetdesk/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for every login failure. Unknown
	// email and wrong password are indistinguishable on purpose.
	ErrInvalidCredentials = apperrors.Unauthenticated("invalid email or password")
	// ErrUserAlreadyExists is returned when registering an email twice.
	ErrUserAlreadyExists = apperrors.Conflict("user already exists")
)

// RegisterInput carries validated registration fields. ProfileImagePath is
// the stored path of an already-persisted upload, or empty.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	ProfileImagePath string
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register hashes the password before any persistence and creates the user.
// The stored role is always RoleUser: self-registration cannot grant admin,
// admins are provisioned out-of-band.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Transient(err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     hash,
		Role:             model.RoleUser,
		ProfileImagePath: in.ProfileImagePath,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.Transient(err)
	}

	return user, nil
}

// Login verifies the supplied password against the stored hash and issues a
// signed token only on success.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.L.Warn("login failed", zap.String("email", email))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, apperrors.Transient(err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		logger.L.Warn("login failed", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, user, nil
}
