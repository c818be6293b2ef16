package server

import (
	"sanxing/internal/models"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID. Routes behind
// AuthRequired always have it; anything else is a programming error and
// panics via the type assertion.
func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}

// currentUser returns the fully resolved user stored by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	return c.Locals("currentUser").(*models.User)
}

// maybeUserID returns the resolved user's ID on optionally-authenticated
// routes, or zero for anonymous callers. Zero never matches an author, so
// anonymous callers see public content only.
func maybeUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
