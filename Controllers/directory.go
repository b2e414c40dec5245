package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"CareBridge/Workflow"
)

// DirectoryController serves the staff and client records used to fill
// scheduling forms.
type DirectoryController struct {
	engine *Workflow.Engine
	logger *zap.Logger
}

func NewDirectoryController(engine *Workflow.Engine, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{engine: engine, logger: logger}
}

func (h *DirectoryController) ListStaff(c *fiber.Ctx) error {
	staff, err := h.engine.Staff(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(staff)
}

func (h *DirectoryController) GetStaff(c *fiber.Ctx) error {
	s, err := h.engine.StaffMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(s)
}

func (h *DirectoryController) ListClients(c *fiber.Ctx) error {
	clients, err := h.engine.Clients(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(clients)
}

func (h *DirectoryController) GetClient(c *fiber.Ctx) error {
	client, err := h.engine.Client(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(client)
}
