package middlewares

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/sirupsen/logrus"

	"mindsprint_backend/internals/middlewares/logger"
)

// RequestTimeout bounds every request; store calls inherit it.
const RequestTimeout = 5 * time.Second

type Options struct {
	CORSOrigins  []string
	RateLimitMax int
	AccessLog    io.Writer // nil disables the access log
}

// SetupMiddlewares installs the global chain in order: panic recovery first,
// then request context, CORS, rate limiting and response compression.
func SetupMiddlewares(app *fiber.App, opts Options, log logrus.FieldLogger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestContext(log, RequestTimeout))
	app.Use(CorsMiddleware(opts.CORSOrigins))
	app.Use(GlobalRateLimiter(opts.RateLimitMax))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	if opts.AccessLog != nil {
		app.Use(logger.LoggerMiddleware(opts.AccessLog))
	}
}
