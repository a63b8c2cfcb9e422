package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"room-editor/internal/layout"
	"room-editor/internal/repository"
)

// ============================================================
// Room Handler
// ============================================================

// LayoutRepo stores raw layout documents by name.
type LayoutRepo interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) (*repository.Layout, error)
	Ping(ctx context.Context) error
}

type RoomHandler struct {
	repo LayoutRepo
	key  string
	log  logrus.FieldLogger
}

func NewRoomHandler(repo LayoutRepo, key string, log logrus.FieldLogger) *RoomHandler {
	return &RoomHandler{repo: repo, key: key, log: log}
}

// Save replaces the stored layout with the posted JSON array.
func (h *RoomHandler) Save(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var records []layout.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: expected an array of items"})
	}
	if records == nil {
		records = []layout.Record{}
	}
	if err := layout.ValidateAll(records); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Re-encode so only known fields are stored.
	data, err := json.Marshal(records)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode layout"})
	}
	if err := h.repo.Save(c.Context(), h.key, data); err != nil {
		h.log.WithError(err).WithField("key", h.key).Error("save layout failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save layout"})
	}

	h.log.WithFields(logrus.Fields{"key": h.key, "items": len(records)}).Info("layout saved")
	return c.JSON(fiber.Map{"status": "saved"})
}

// Load returns the stored layout, or [] when nothing has been saved.
func (h *RoomHandler) Load(c fiber.Ctx) error {
	stored, err := h.repo.Load(c.Context(), h.key)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON([]layout.Record{})
	}
	if err != nil {
		h.log.WithError(err).WithField("key", h.key).Error("load layout failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load layout"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(stored.Data)
}

// ============================================================
// Health Check Handlers
// ============================================================

// Live reports that the process is serving requests.
func (h *RoomHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready reports whether the database answers.
func (h *RoomHandler) Ready(c fiber.Ctx) error {
	if err := h.repo.Ping(c.Context()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
