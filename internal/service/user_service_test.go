package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fleetdesk/internal/auth"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
)

func TestUserService_UpdateUser_Authorization(t *testing.T) {
	selfID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name      string
		principal auth.Principal
		targetID  string
		setupMock func(*MockUserRepository)
		wantCat   apperrors.Category
	}{
		{
			name:      "user updates own record",
			principal: auth.Principal{UserID: selfID, Role: model.RoleUser},
			targetID:  selfID.String(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, selfID).Return(&model.User{ID: selfID, Role: model.RoleUser}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "user updates someone else",
			principal: auth.Principal{UserID: selfID, Role: model.RoleUser},
			targetID:  otherID.String(),
			setupMock: func(m *MockUserRepository) {},
			wantCat:   apperrors.CategoryForbidden,
		},
		{
			name:      "admin updates someone else",
			principal: auth.Principal{UserID: selfID, Role: model.RoleAdmin},
			targetID:  otherID.String(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID, Role: model.RoleUser}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "malformed target id",
			principal: auth.Principal{UserID: selfID, Role: model.RoleAdmin},
			targetID:  "not-a-uuid",
			setupMock: func(m *MockUserRepository) {},
			wantCat:   apperrors.CategoryValidation,
		},
		{
			name:      "target missing",
			principal: auth.Principal{UserID: selfID, Role: model.RoleAdmin},
			targetID:  otherID.String(),
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, otherID).Return(nil, gorm.ErrRecordNotFound)
			},
			wantCat: apperrors.CategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo)
			_, err := svc.UpdateUser(context.Background(), tt.principal, tt.targetID, UpdateUserInput{Name: "New Name"})

			if tt.wantCat != "" {
				assert.Equal(t, tt.wantCat, apperrors.CategoryOf(err))
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser_PasswordRehash(t *testing.T) {
	selfID := uuid.New()
	oldHash, err := auth.HashPassword("old-password")
	require.NoError(t, err)

	tests := []struct {
		name       string
		password   string
		wantRehash bool
	}{
		{name: "empty password keeps stored hash", password: ""},
		{name: "unchanged password keeps stored hash", password: "old-password"},
		{name: "new password is rehashed", password: "new-password", wantRehash: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockRepo.On("FindByID", mock.Anything, selfID).Return(&model.User{
				ID:           selfID,
				Role:         model.RoleUser,
				PasswordHash: oldHash,
			}, nil)

			var persisted *model.User
			mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).
				Run(func(args mock.Arguments) {
					persisted = args.Get(1).(*model.User)
				}).Return(nil)

			svc := NewUserService(mockRepo)
			p := auth.Principal{UserID: selfID, Role: model.RoleUser}
			_, err := svc.UpdateUser(context.Background(), p, selfID.String(), UpdateUserInput{Password: tt.password})
			require.NoError(t, err)
			require.NotNil(t, persisted)

			if tt.wantRehash {
				assert.NotEqual(t, oldHash, persisted.PasswordHash)
				assert.True(t, auth.VerifyPassword(persisted.PasswordHash, tt.password))
			} else {
				assert.Equal(t, oldHash, persisted.PasswordHash)
			}
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	selfID := uuid.New()
	otherID := uuid.New()

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, selfID).Return(&model.User{ID: selfID}, nil)

	svc := NewUserService(mockRepo)

	self := auth.Principal{UserID: selfID, Role: model.RoleUser}
	user, err := svc.GetUser(context.Background(), self, selfID.String())
	require.NoError(t, err)
	assert.Equal(t, selfID, user.ID)

	_, err = svc.GetUser(context.Background(), self, otherID.String())
	assert.Equal(t, apperrors.CategoryForbidden, apperrors.CategoryOf(err))
}

func TestUserService_ListUsers_AdminOnly(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{{ID: uuid.New()}}, nil)

	svc := NewUserService(mockRepo)

	_, err := svc.ListUsers(context.Background(), auth.Principal{UserID: uuid.New(), Role: model.RoleUser})
	assert.Equal(t, apperrors.CategoryForbidden, apperrors.CategoryOf(err))

	users, err := svc.ListUsers(context.Background(), auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
