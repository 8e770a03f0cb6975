// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/features/homework/assignments/controller"
	"mindsprint_backend/internals/features/homework/assignments/store"
	"mindsprint_backend/internals/identity"
	authMiddleware "mindsprint_backend/internals/middlewares/auth"
	routeDetails "mindsprint_backend/internals/route/details"
)

// Deps is everything the route tree needs.
type Deps struct {
	Environment string
	Store       store.Pinger
	Provider    identity.Provider
	Homework    controller.AssignmentService
	Log         logrus.FieldLogger
}

var startTime time.Time

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log := d.Log.WithField("component", "routes")

	log.Info("setting up base routes")
	BaseRoutes(app, d)

	api := app.Group("/api")
	authMw := authMiddleware.AuthMiddleware(d.Provider, d.Log)

	log.Info("mounting auth routes")
	routeDetails.AuthRoutes(api, authMw)

	log.Info("mounting homework routes")
	routeDetails.HomeworkRoutes(api, d.Homework, authMw)
}
