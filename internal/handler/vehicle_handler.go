package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fleetdesk/internal/auth"
	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/service"
	"fleetdesk/internal/upload"
)

// VehicleHandler handles vehicle endpoints. Create and update accept
// multipart forms so file attachments ride along with the text fields.
type VehicleHandler struct {
	vehicleService service.VehicleService
	uploads        *upload.Store
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicleService service.VehicleService, uploads *upload.Store) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, uploads: uploads}
}

// vehicleInput collects text fields and stored file paths from a multipart
// request. Unknown form fields are ignored.
func (h *VehicleHandler) vehicleInput(c echo.Context) (service.VehicleInput, error) {
	in := service.VehicleInput{
		Make:  c.FormValue("make"),
		Model: c.FormValue("model"),
		Year:  c.FormValue("year"),
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		saved, err := h.uploads.SaveFiles(form, "files")
		if err != nil {
			return service.VehicleInput{}, err
		}
		in.FilePaths = saved["files"]
	}
	return in, nil
}

// CreateVehicle godoc
// @Summary Create a vehicle
// @Tags vehicles
// @Accept mpfd
// @Produce json
// @Param make formData string true "Make"
// @Param model formData string true "Model"
// @Param year formData string true "Year"
// @Param files formData file false "Attachments"
// @Success 201 {object} model.Vehicle
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /vehicle [post]
func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	in, err := h.vehicleInput(c)
	if err != nil {
		return respondError(c, err)
	}
	if in.Make == "" || in.Model == "" || in.Year == "" {
		return respondError(c, apperrors.Validation("missing required fields: make/model/year"))
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request().Context(), p, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle godoc
// @Summary Update a vehicle (admin only)
// @Tags vehicles
// @Accept mpfd
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param make formData string false "Make"
// @Param model formData string false "Model"
// @Param year formData string false "Year"
// @Param files formData file false "Attachments"
// @Success 200 {object} model.Vehicle
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /vehicle/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	in, err := h.vehicleInput(c)
	if err != nil {
		return respondError(c, err)
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request().Context(), p, c.Param("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// GetVehicle godoc
// @Summary Get a vehicle by id (owner or admin)
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} model.Vehicle
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /vehicle/{id} [get]
func (h *VehicleHandler) GetVehicle(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// ListVehicles godoc
// @Summary List vehicles (own vehicles; admins see all)
// @Tags vehicles
// @Produce json
// @Success 200 {array} model.Vehicle
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /vehicle [get]
func (h *VehicleHandler) ListVehicles(c echo.Context) error {
	p, err := auth.PrincipalFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request().Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, vehicles)
}
