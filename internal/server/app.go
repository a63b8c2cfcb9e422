// Package server is the room layout backend: a fiber app persisting one layout document.
package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"room-editor/internal/layout"
)

// Options configure NewApp.
type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RequestLog enables the per-request logger middleware.
	RequestLog bool
}

// NewApp wires middleware and routes around h.
func NewApp(h *RoomHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		AppName:      "Room Service",
	})

	app.Use(recover.New())
	if opts.RequestLog {
		app.Use(Logger())
	}
	app.Use(CORS())

	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)

	app.Post(layout.RoomPath, h.Save)
	app.Get(layout.RoomPath, h.Load)

	return app
}
