package details

import (
	"github.com/gofiber/fiber/v2"

	"mindsprint_backend/internals/features/homework/assignments/controller"
	assignmentRoute "mindsprint_backend/internals/features/homework/assignments/route"
)

func HomeworkRoutes(api fiber.Router, svc controller.AssignmentService, authMw fiber.Handler) {
	assignmentRoute.AssignmentRoutes(api, svc, authMw)
}
