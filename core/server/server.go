package server

import (
	"github.com/gofiber/fiber/v2"
)

// New creates a Fiber app that serves the given directory.
func New(dir string) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
	})

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Static("/", dir, fiber.Static{
		Browse: true,
	})

	return app
}
