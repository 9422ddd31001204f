package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleetdesk/internal/model"
)

// VehicleFilter narrows vehicle queries; a nil UserID leaves the listing
// unscoped.
type VehicleFilter struct {
	UserID *uuid.UUID
}

// VehicleRepository defines vehicle persistence operations. Update patches
// the row matching the id filter and reports the number of matched rows;
// added files are inserted as related VehicleFile records.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, files []model.VehicleFile) (int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Preload("Files").Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]model.Vehicle, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	q := r.db.WithContext(ctx).Preload("Files")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var vehicles []model.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}, files []model.VehicleFile) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var matched int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Vehicle{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		matched = res.RowsAffected
		if matched == 0 || len(files) == 0 {
			return nil
		}
		for i := range files {
			files[i].VehicleID = id
		}
		return tx.Create(&files).Error
	})
	return matched, err
}
