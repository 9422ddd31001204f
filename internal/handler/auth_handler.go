package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
	"fleetdesk/internal/service"
	"fleetdesk/internal/upload"
)

// AuthHandler handles the unauthenticated entry points.
type AuthHandler struct {
	authService service.AuthService
	uploads     *upload.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, uploads *upload.Store) *AuthHandler {
	return &AuthHandler{authService: authService, uploads: uploads}
}

// RegisterRequest represents the text fields of a registration form.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserView is the sanitized user representation returned from auth
// endpoints. The password hash never appears here.
type UserView struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         model.Role `json:"role"`
	ProfileImage string     `json:"profile_image,omitempty"`
}

// LoginResponse carries the issued token and the sanitized user.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

func userView(u *model.User) UserView {
	return UserView{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImagePath,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param profile_image formData file false "Profile image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	// A client-supplied "role" form field is deliberately ignored: every
	// self-registered account gets the regular user role.
	req := RegisterRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.Validation("missing required fields: name/email/password"))
	}

	var profileImagePath string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		saved, err := h.uploads.SaveFiles(form, "profile_image")
		if err != nil {
			return respondError(c, err)
		}
		if paths := saved["profile_image"]; len(paths) > 0 {
			profileImagePath = paths[0]
		}
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		ProfileImagePath: profileImagePath,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    userView(user),
	})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, apperrors.Validation("email and password are required"))
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  userView(user),
	})
}
