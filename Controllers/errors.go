package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"CareBridge/Workflow"
)

// respondError maps workflow errors onto HTTP statuses.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		body := fiber.Map{"error": reqErr.Message}
		if len(reqErr.Fields) > 0 {
			body["fields"] = reqErr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, Workflow.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, Workflow.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, Workflow.ErrReportFinalized),
		errors.Is(err, Workflow.ErrReportNotFinalized),
		errors.Is(err, Workflow.ErrTransitionDenied),
		errors.Is(err, Workflow.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func checkDate(day string) error {
	if day == "" {
		return nil
	}
	return Workflow.ValidateDate(day)
}
