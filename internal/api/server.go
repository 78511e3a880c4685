package api

import (
	"time"

	"github.com/Behyna/pix-checkout/internal/metrics"
	"github.com/Behyna/pix-checkout/internal/middleware"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const ServiceName = "pix-checkout"

func NewFiberApp(logger *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               ServiceName,
		ErrorHandler:          middleware.ErrorHandler(logger),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ReadTimeout:           10 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             64 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.HealthCheckMiddleware(ServiceName))
	app.Use(middleware.HTTPMetricsMiddleware(m, logger))

	return app
}
