package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the fiber.Config ErrorHandler. *fiber.Error values (404 for
// unknown routes, 405, body limits) keep their code; everything else goes
// through JsonFromError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonFromError(c, err)
}
