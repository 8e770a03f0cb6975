// file: internals/features/homework/assignments/route/assignment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/features/homework/assignments/controller"
	authMiddleware "mindsprint_backend/internals/middlewares/auth"
)

// Prefixes the routes are mounted under. /homework is kept for older clients.
var Prefixes = []string{"/tasks", "/homework"}

// AssignmentRoutes mounts the homework routes on api, each group behind authMw.
func AssignmentRoutes(api fiber.Router, svc controller.AssignmentService, authMw fiber.Handler) {
	ctrl := controller.NewAssignmentController(svc)

	staffOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorTherapist("homework management"),
		constants.TherapistAndAbove...,
	)

	for _, prefix := range Prefixes {
		g := api.Group(prefix, authMw)

		g.Post("/", staffOnly, ctrl.Create)
		g.Get("/", staffOnly, ctrl.ListAll)
		g.Get("/:userId", ctrl.ListForUser)       // clients: own list only
		g.Put("/:taskId/complete", ctrl.Complete) // any authenticated caller
		g.Delete("/:taskId", staffOnly, ctrl.Delete)
	}
}
