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
	"fleetdesk/internal/repository"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]model.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, files []model.VehicleFile) (int64, error) {
	args := m.Called(ctx, id, fields, files)
	return args.Get(0).(int64), args.Error(1)
}

func TestVehicleService_CreateVehicle(t *testing.T) {
	ownerID := uuid.New()
	p := auth.Principal{UserID: ownerID, Role: model.RoleUser}

	mockRepo := new(MockVehicleRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Vehicle")).Return(nil)

	svc := NewVehicleService(mockRepo)
	vehicle, err := svc.CreateVehicle(context.Background(), p, VehicleInput{
		Make:      "Toyota",
		Model:     "Hilux",
		Year:      "2021",
		FilePaths: []string{"uploads/files/abc_reg.pdf"},
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, vehicle.UserID)
	require.Len(t, vehicle.Files, 1)
	assert.Equal(t, "uploads/files/abc_reg.pdf", vehicle.Files[0].Path)
	mockRepo.AssertExpectations(t)
}

func TestVehicleService_UpdateVehicle_AdminOnly(t *testing.T) {
	vehicleID := uuid.New()
	ownerID := uuid.New()

	t.Run("owner without admin role is refused", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		svc := NewVehicleService(mockRepo)

		p := auth.Principal{UserID: ownerID, Role: model.RoleUser}
		_, err := svc.UpdateVehicle(context.Background(), p, vehicleID.String(), VehicleInput{Make: "Ford"})
		assert.Equal(t, apperrors.CategoryForbidden, apperrors.CategoryOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("admin updates any vehicle", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Update", mock.Anything, vehicleID, mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasStamp := fields["updated_at"]
			_, hasYear := fields["year"]
			return hasStamp && fields["make"] == "Ford" && !hasYear
		}), mock.Anything).Return(int64(1), nil)
		mockRepo.On("FindByID", mock.Anything, vehicleID).Return(&model.Vehicle{
			ID:     vehicleID,
			UserID: ownerID,
			Make:   "Ford",
		}, nil)

		svc := NewVehicleService(mockRepo)
		p := auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
		vehicle, err := svc.UpdateVehicle(context.Background(), p, vehicleID.String(), VehicleInput{Make: "Ford"})
		require.NoError(t, err)
		assert.Equal(t, "Ford", vehicle.Make)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing vehicle reports not found", func(t *testing.T) {
		mockRepo := new(MockVehicleRepository)
		mockRepo.On("Update", mock.Anything, vehicleID, mock.Anything, mock.Anything).Return(int64(0), nil)

		svc := NewVehicleService(mockRepo)
		p := auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
		_, err := svc.UpdateVehicle(context.Background(), p, vehicleID.String(), VehicleInput{Make: "Ford"})
		assert.Equal(t, apperrors.CategoryNotFound, apperrors.CategoryOf(err))
	})
}

func TestVehicleService_GetVehicle(t *testing.T) {
	vehicleID := uuid.New()
	ownerID := uuid.New()
	stored := &model.Vehicle{ID: vehicleID, UserID: ownerID}

	tests := []struct {
		name      string
		principal auth.Principal
		repoVal   *model.Vehicle
		repoErr   error
		wantCat   apperrors.Category
	}{
		{
			name:      "owner reads own vehicle",
			principal: auth.Principal{UserID: ownerID, Role: model.RoleUser},
			repoVal:   stored,
		},
		{
			name:      "admin reads any vehicle",
			principal: auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin},
			repoVal:   stored,
		},
		{
			name:      "foreign vehicle reads as not found",
			principal: auth.Principal{UserID: uuid.New(), Role: model.RoleUser},
			repoVal:   stored,
			wantCat:   apperrors.CategoryNotFound,
		},
		{
			name:      "missing vehicle",
			principal: auth.Principal{UserID: ownerID, Role: model.RoleUser},
			repoErr:   gorm.ErrRecordNotFound,
			wantCat:   apperrors.CategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockVehicleRepository)
			if tt.repoErr != nil {
				mockRepo.On("FindByID", mock.Anything, vehicleID).Return(nil, tt.repoErr)
			} else {
				mockRepo.On("FindByID", mock.Anything, vehicleID).Return(tt.repoVal, nil)
			}

			svc := NewVehicleService(mockRepo)
			vehicle, err := svc.GetVehicle(context.Background(), tt.principal, vehicleID.String())

			if tt.wantCat != "" {
				assert.Equal(t, tt.wantCat, apperrors.CategoryOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, vehicleID, vehicle.ID)
			}
		})
	}
}

func TestVehicleService_ListVehicles(t *testing.T) {
	ownerID := uuid.New()

	mockRepo := new(MockVehicleRepository)
	mockRepo.On("List", mock.Anything, repository.VehicleFilter{}).Return([]model.Vehicle{{}, {}, {}}, nil)
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.VehicleFilter) bool {
		return f.UserID != nil && *f.UserID == ownerID
	})).Return([]model.Vehicle{{UserID: ownerID}}, nil)

	svc := NewVehicleService(mockRepo)

	all, err := svc.ListVehicles(context.Background(), auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.ListVehicles(context.Background(), auth.Principal{UserID: ownerID, Role: model.RoleUser})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ownerID, mine[0].UserID)
}
