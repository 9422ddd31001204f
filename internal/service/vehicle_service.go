package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleetdesk/internal/auth"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
	"fleetdesk/internal/repository"
)

// VehicleInput carries the writable vehicle fields plus the stored paths of
// any uploaded attachments. On update, empty fields are left untouched and
// files are appended.
type VehicleInput struct {
	Make      string
	Model     string
	Year      string
	FilePaths []string
}

// VehicleService exposes vehicle operations. Updates are admin-only with no
// ownership escape hatch, asymmetric with tasks and users on purpose.
type VehicleService interface {
	CreateVehicle(ctx context.Context, p auth.Principal, in VehicleInput) (*model.Vehicle, error)
	GetVehicle(ctx context.Context, p auth.Principal, id string) (*model.Vehicle, error)
	ListVehicles(ctx context.Context, p auth.Principal) ([]model.Vehicle, error)
	UpdateVehicle(ctx context.Context, p auth.Principal, id string, in VehicleInput) (*model.Vehicle, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService builds a VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func vehicleFiles(paths []string) []model.VehicleFile {
	files := make([]model.VehicleFile, 0, len(paths))
	for _, p := range paths {
		files = append(files, model.VehicleFile{Path: p})
	}
	return files
}

// CreateVehicle creates a vehicle for the authenticated principal. UserID is
// stamped here from the principal and never changes.
func (s *vehicleService) CreateVehicle(ctx context.Context, p auth.Principal, in VehicleInput) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		UserID: p.UserID,
		Make:   in.Make,
		Model:  in.Model,
		Year:   in.Year,
		Files:  vehicleFiles(in.FilePaths),
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, apperrors.Transient(err)
	}
	return vehicle, nil
}

// GetVehicle returns one vehicle to its owner or to an admin. A denied read
// reports not-found so the response never confirms that someone else's
// vehicle exists.
func (s *vehicleService) GetVehicle(ctx context.Context, p auth.Principal, id string) (*model.Vehicle, error) {
	vid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid vehicle id")
	}
	vehicle, err := s.vehicleRepo.FindByID(ctx, vid)
	if err != nil {
		return nil, translateStorageError(err, "vehicle not found")
	}
	if err := auth.RequireOwnerOrRole(p, vehicle.UserID, model.RoleAdmin); err != nil {
		return nil, apperrors.NotFound("vehicle not found")
	}
	return vehicle, nil
}

// ListVehicles returns the caller's vehicles; admins see every vehicle.
func (s *vehicleService) ListVehicles(ctx context.Context, p auth.Principal) ([]model.Vehicle, error) {
	var filter repository.VehicleFilter
	if !p.IsAdmin() {
		owner := p.UserID
		filter.UserID = &owner
	}
	vehicles, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	return vehicles, nil
}

// UpdateVehicle patches a vehicle. Only admins may update, regardless of who
// created the record; a regular user is refused even for their own vehicle.
func (s *vehicleService) UpdateVehicle(ctx context.Context, p auth.Principal, id string, in VehicleInput) (*model.Vehicle, error) {
	if err := auth.RequireRole(p, model.RoleAdmin); err != nil {
		return nil, err
	}
	vid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validation("invalid vehicle id")
	}

	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if in.Make != "" {
		fields["make"] = in.Make
	}
	if in.Model != "" {
		fields["model"] = in.Model
	}
	if in.Year != "" {
		fields["year"] = in.Year
	}

	matched, err := s.vehicleRepo.Update(ctx, vid, fields, vehicleFiles(in.FilePaths))
	if err != nil {
		return nil, apperrors.Transient(err)
	}
	if matched == 0 {
		return nil, apperrors.NotFound("vehicle not found")
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vid)
	if err != nil {
		return nil, translateStorageError(err, "vehicle not found")
	}
	return vehicle, nil
}
