package auth

import (
	"github.com/google/uuid"

	apperrors "fleetdesk/internal/errors"
	"fleetdesk/internal/model"
)

// Policy is the single place role and ownership rules are decided. Every
// resource service calls one of these two predicates instead of re-deriving
// the rule per route.

// RequireRole accepts the principal only when its role is in allowed.
func RequireRole(p Principal, allowed ...model.Role) error {
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return apperrors.Forbidden("not permitted")
}

// RequireOwnerOrRole accepts the principal when it owns the resource OR when
// RequireRole succeeds. ownerID must already be a parsed identifier; callers
// reject malformed ids as validation errors before the comparison, never
// letting a failed parse fall through to "allowed".
func RequireOwnerOrRole(p Principal, ownerID uuid.UUID, allowed ...model.Role) error {
	if p.UserID != uuid.Nil && p.UserID == ownerID {
		return nil
	}
	return RequireRole(p, allowed...)
}
