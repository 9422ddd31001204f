package auth

import (
	"github.com/google/uuid"

	"fleetdesk/internal/model"
)

// Principal is the authenticated identity derived fresh per request from a
// verified token. It is never persisted.
type Principal struct {
	UserID uuid.UUID
	Role   model.Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == model.RoleAdmin
}
