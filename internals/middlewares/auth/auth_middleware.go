// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	helper "mindsprint_backend/internals/helpers"
	"mindsprint_backend/internals/helpers/apperr"
	"mindsprint_backend/internals/identity"
)

// AuthMiddleware resolves the caller through provider and stores it in Locals.
func AuthMiddleware(provider identity.Provider, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := helper.ExtractBearerToken(c)
		if err != nil {
			return helper.JsonFromError(c, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err))
		}

		who, err := provider.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Warn("authentication rejected")
			return helper.JsonFromError(c, err)
		}

		helper.SetCaller(c, who)
		return c.Next()
	}
}
