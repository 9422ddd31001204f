package service

import (
	"context"

	"github.com/google/uuid"

	"fleetdesk/internal/auth"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
	"fleetdesk/internal/repository"
)

// UpdateUserInput carries the mutable user fields. Empty strings leave the
// stored value untouched; in particular an empty Password means the stored
// hash is not recomputed.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserService exposes user reads and the owner-or-admin update.
type UserService interface {
	GetUser(ctx context.Context, p auth.Principal, id string) (*model.User, error)
	ListUsers(ctx context.Context, p auth.Principal) ([]model.User, error)
	UpdateUser(ctx context.Context, p auth.Principal, id string, in UpdateUserInput) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser returns one user record; callers may read their own record, admins
// may read anyone's.
func (s *userService) GetUser(ctx context.Context, p auth.Principal, id string) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid user id")
	}
	if err := auth.RequireOwnerOrRole(p, uid, model.RoleAdmin); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, translateStorageError(err, "user not found")
	}
	return user, nil
}

// ListUsers returns every user; admin only.
func (s *userService) ListUsers(ctx context.Context, p auth.Principal) ([]model.User, error) {
	if err := auth.RequireRole(p, model.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return users, nil
}

// UpdateUser mutates a user record. The target may be updated by its owner
// or by an admin; the authorization decision happens before any storage
// write. A supplied password is rehashed only when it differs from the one
// already stored.
func (s *userService) UpdateUser(ctx context.Context, p auth.Principal, id string, in UpdateUserInput) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid user id")
	}
	if err := auth.RequireOwnerOrRole(p, uid, model.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, translateStorageError(err, "user not found")
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" && !auth.VerifyPassword(user.PasswordHash, in.Password) {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Transient(err)
	}
	return user, nil
}
