package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"CareBridge/Models"
	"CareBridge/Workflow"
)

type TaskController struct {
	engine    *Workflow.Engine
	validator *Validator
	logger    *zap.Logger
}

func NewTaskController(engine *Workflow.Engine, v *Validator, logger *zap.Logger) *TaskController {
	return &TaskController{engine: engine, validator: v, logger: logger}
}

type scheduleTaskRequest struct {
	StaffID     string `json:"staff_id" validate:"required"`
	ClientID    string `json:"client_id" validate:"required"`
	Date        string `json:"date" validate:"required,date"`
	Time        string `json:"time" validate:"required,hhmm"`
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type taskStatusRequest struct {
	Status string `json:"status" validate:"required,task_status"`
}

type taskCommentRequest struct {
	Comments string `json:"comments" validate:"max=2000"`
}

type duplicateRosterRequest struct {
	StaffID    string `json:"staff_id" validate:"required"`
	ClientID   string `json:"client_id" validate:"required"`
	SourceDate string `json:"source_date" validate:"required,date"`
	TargetDate string `json:"target_date" validate:"required,date,nefield=SourceDate"`
}

// ListTasks filters by the staff_id, client_id and date query parameters.
func (h *TaskController) ListTasks(c *fiber.Ctx) error {
	filter := Workflow.TaskFilter{
		StaffID:  c.Query("staff_id"),
		ClientID: c.Query("client_id"),
		Date:     c.Query("date"),
	}
	if err := checkDate(filter.Date); err != nil {
		return respondError(c, h.logger, err)
	}
	tasks, err := h.engine.Tasks(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskController) GetTask(c *fiber.Ctx) error {
	task, err := h.engine.Task(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

func (h *TaskController) ScheduleTask(c *fiber.Ctx) error {
	var req scheduleTaskRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	task, err := h.engine.ScheduleTask(c.UserContext(), Workflow.NewTask{
		StaffID:     req.StaffID,
		ClientID:    req.ClientID,
		Date:        req.Date,
		Time:        req.Time,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"applied": true, "task": task})
}

func (h *TaskController) SetStatus(c *fiber.Ctx) error {
	var req taskStatusRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	task, err := h.engine.SetTaskStatus(c.UserContext(), c.Params("id"), Models.TaskStatus(req.Status))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "task": task})
}

func (h *TaskController) SetComment(c *fiber.Ctx) error {
	var req taskCommentRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	task, err := h.engine.SetTaskComment(c.UserContext(), c.Params("id"), req.Comments)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "task": task})
}

// DuplicateRoster copies a staff member's tasks for a client onto another day.
func (h *TaskController) DuplicateRoster(c *fiber.Ctx) error {
	var req duplicateRosterRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	key := Models.ReportKey{StaffID: req.StaffID, ClientID: req.ClientID, Date: req.SourceDate}
	tasks, err := h.engine.DuplicateRoster(c.UserContext(), key, req.TargetDate)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"applied": len(tasks) > 0,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}
