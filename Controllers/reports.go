package Controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"CareBridge/Export"
	"CareBridge/Models"
	"CareBridge/Workflow"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	engine    *Workflow.Engine
	validator *Validator
	logger    *zap.Logger
}

func NewReportController(engine *Workflow.Engine, v *Validator, logger *zap.Logger) *ReportController {
	return &ReportController{engine: engine, validator: v, logger: logger}
}

type shiftRequest struct {
	StaffID  string `json:"staff_id" validate:"required"`
	ClientID string `json:"client_id" validate:"required"`
	Date     string `json:"date" validate:"required,date"`
}

func (r shiftRequest) key() Models.ReportKey {
	return Models.ReportKey{StaffID: r.StaffID, ClientID: r.ClientID, Date: r.Date}
}

type reportContentRequest struct {
	shiftRequest
	Content string `json:"content" validate:"max=20000"`
	Mood    string `json:"mood" validate:"omitempty,mood"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,notblank,max=5000"`
}

type replyRequest struct {
	Reply string `json:"reply" validate:"required,notblank,max=5000"`
}

func (h *ReportController) ListReports(c *fiber.Ctx) error {
	filter := Workflow.ReportFilter{
		StaffID:  c.Query("staff_id"),
		ClientID: c.Query("client_id"),
		Date:     c.Query("date"),
	}
	if err := checkDate(filter.Date); err != nil {
		return respondError(c, h.logger, err)
	}
	reports, err := h.engine.Reports(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(reports)
}

func (h *ReportController) FlaggedReports(c *fiber.Ctx) error {
	reports, err := h.engine.FlaggedReports(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(reports)
}

func (h *ReportController) FinalizedReports(c *fiber.Ctx) error {
	reports, err := h.engine.FinalizedReports(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(reports)
}

func (h *ReportController) GetReport(c *fiber.Ctx) error {
	report, err := h.engine.Report(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// ClientReport serves the client portal view: the finalized report for ?date=.
func (h *ReportController) ClientReport(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return respondError(c, h.logger, &RequestError{Message: "date query parameter is required"})
	}
	if err := checkDate(date); err != nil {
		return respondError(c, h.logger, err)
	}
	report, err := h.engine.ClientReport(c.UserContext(), c.Params("id"), date)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// UpsertContent saves the draft for a shift and, when given, its mood.
func (h *ReportController) UpsertContent(c *fiber.Ctx) error {
	var req reportContentRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	report, err := h.engine.UpsertReportContent(c.UserContext(), req.key(), req.Content)
	if err == nil && req.Mood != "" {
		report, err = h.engine.SetReportMood(c.UserContext(), report.ID, Models.Mood(req.Mood))
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

func (h *ReportController) DraftSummary(c *fiber.Ctx) error {
	var req shiftRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	report, err := h.engine.DraftShiftSummary(c.UserContext(), req.key())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

// Finalize answers a repeated finalize with 200 and applied=false.
func (h *ReportController) Finalize(c *fiber.Ctx) error {
	report, err := h.engine.FinalizeReport(c.UserContext(), c.Params("id"))
	if errors.Is(err, Workflow.ErrAlreadyFinalized) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": false, "report": report, "message": err.Error()})
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

func (h *ReportController) SubmitFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	report, err := h.engine.SubmitClientFeedback(c.UserContext(), c.Params("id"), req.Feedback)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

// Acknowledge answers applied=false when there was no flag to clear.
func (h *ReportController) Acknowledge(c *fiber.Ctx) error {
	report, err := h.engine.AcknowledgeFlag(c.UserContext(), c.Params("id"))
	if errors.Is(err, Workflow.ErrNotFlagged) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": false, "report": report, "message": err.Error()})
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

func (h *ReportController) Reply(c *fiber.Ctx) error {
	var req replyRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	report, err := h.engine.SendAgencyReply(c.UserContext(), c.Params("id"), req.Reply)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"applied": true, "report": report})
}

// ExportText downloads the plain-text handover document.
func (h *ReportController) ExportText(c *fiber.Ctx) error {
	bundle, err := h.engine.Bundle(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", Export.ReportFileName(bundle)))
	return c.SendString(Export.ReportText(bundle))
}

// ExportWorkbook downloads every finalized report as an audit workbook.
func (h *ReportController) ExportWorkbook(c *fiber.Ctx) error {
	bundles, err := h.engine.FinalizedBundles(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	buf, err := Export.AuditWorkbook(bundles)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=carebridge_reports.xlsx")
	return c.Send(buf.Bytes())
}
