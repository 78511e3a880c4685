package api

import (
	v1 "github.com/Behyna/pix-checkout/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixAPI = "/api/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, gatherer prometheus.Gatherer, staticDir string) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Post(prefixAPI+"create-transaction", handler.CreateTransaction)

	if staticDir != "" {
		app.Static("/", staticDir)
	}
}
