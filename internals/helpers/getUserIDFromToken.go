package helper

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"mindsprint_backend/internals/helpers/apperr"
	"mindsprint_backend/internals/identity"
)

// Locals keys written by the auth middleware.
const (
	LocIdentity = "identity"
	LocUserID   = "user_id"
	LocUserRole = "userRole"
)

// SetCaller stores the authenticated identity on the request.
func SetCaller(c *fiber.Ctx, who identity.Identity) {
	c.Locals(LocIdentity, who)
	c.Locals(LocUserID, who.ID)
	c.Locals(LocUserRole, who.Role)
}

// GetCaller returns the identity stored by the auth middleware.
func GetCaller(c *fiber.Ctx) (identity.Identity, error) {
	who, ok := c.Locals(LocIdentity).(identity.Identity)
	if !ok || who.IsZero() {
		return identity.Identity{}, fmt.Errorf("no caller on request: %w", apperr.ErrUnauthenticated)
	}
	return who, nil
}
