// file: internals/helpers/token.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads the user id the auth middleware stored in
// locals. Errors when the request was not authenticated.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user id missing from token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id in token")
	}
	return id, nil
}

// GetOptionalUserID returns a pointer when the caller is authenticated,
// nil otherwise. Used by read endpoints guarded by optional auth.
func GetOptionalUserID(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// GetRoleFromToken returns the role claim, empty string when absent.
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
