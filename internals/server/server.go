// Package server assembles the Fiber application.
package server

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	helper "mindsprint_backend/internals/helpers"
	middlewares "mindsprint_backend/internals/middlewares"
	routes "mindsprint_backend/internals/route"
)

type Options struct {
	Middleware middlewares.Options
	// TrustedProxies may set X-Forwarded-For. With none, c.IP() is the peer address.
	TrustedProxies []string
}

// New builds the app with the middleware chain and every route mounted.
func New(opts Options, deps routes.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          opts.TrustedProxies,
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, opts.Middleware, deps.Log)
	routes.SetupRoutes(app, deps)
	return app
}
