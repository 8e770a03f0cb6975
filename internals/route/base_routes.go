package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("MindSprint homework API is running 🚀")
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		storeStatus := "connected"
		status := "OK"
		message := "MindSprint API is running"
		httpStatus := fiber.StatusOK

		if d.Store != nil {
			if err := d.Store.Ping(c.UserContext()); err != nil {
				d.Log.WithError(err).Warn("health check: store ping failed")
				storeStatus = "unreachable"
				status = "DOWN"
				message = "store connection error"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         status,
			"message":        message,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"environment":    d.Environment,
			"store":          storeStatus,
			"uptime_seconds": int64(time.Since(startTime).Seconds()),
		})
	})
}
