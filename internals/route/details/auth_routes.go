package details

import (
	"github.com/gofiber/fiber/v2"

	helper "mindsprint_backend/internals/helpers"
)

// AuthRoutes exposes token verification for the client app.
func AuthRoutes(api fiber.Router, authMw fiber.Handler) {
	api.Get("/auth/verify", authMw, func(c *fiber.Ctx) error {
		who, err := helper.GetCaller(c)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Token is valid",
			"user":    who,
		})
	})
}
