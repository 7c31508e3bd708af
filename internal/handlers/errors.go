package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"pcstore/internal/models"
)

// statusFor maps a domain error kind to its HTTP status.
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation, models.KindEmptyCart:
		return fiber.StatusBadRequest
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindInsufficientStock, models.KindDuplicateID:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"message", "error", "kind", "field"}.
// Untagged errors are logged and reported as 500.
func respondError(c *fiber.Ctx, log *logrus.Logger, message string, err error) error {
	body := fiber.Map{
		"message": message,
		"error":   err.Error(),
	}
	e, ok := models.AsError(err)
	if !ok {
		log.Errorf("%s: %v", message, err)
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	body["kind"] = e.Kind
	if e.Field != "" {
		body["field"] = e.Field
	}
	if e.ID != "" {
		body["id"] = e.ID
	}
	log.Debugf("%s: %v", message, err)
	return c.Status(statusFor(e.Kind)).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
		"kind":    models.KindValidation,
	})
}
