package FiberConfig

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"CareBridge/Controllers"
	"CareBridge/middleware"
)

// Handlers groups the controllers the routes dispatch to. Directory and Logs
// are optional.
type Handlers struct {
	Tasks     *Controllers.TaskController
	Reports   *Controllers.ReportController
	Directory *Controllers.DirectoryController
	Logs      *Controllers.LogController
}

func SetupRoutes(app *fiber.App, h Handlers) {
	tasks, reports := h.Tasks, h.Reports

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	api := app.Group("/api")

	// Task routes, static paths before the ID routes
	taskRoutes := api.Group("/tasks")
	taskRoutes.Get("/", tasks.ListTasks)
	taskRoutes.Post("/", tasks.ScheduleTask)
	taskRoutes.Post("/duplicate", tasks.DuplicateRoster)
	taskRoutes.Get("/:id", tasks.GetTask)
	taskRoutes.Patch("/:id/status", tasks.SetStatus)
	taskRoutes.Patch("/:id/comments", tasks.SetComment)

	// Report routes
	reportRoutes := api.Group("/reports")
	reportRoutes.Get("/", reports.ListReports)
	reportRoutes.Get("/flagged", reports.FlaggedReports)
	reportRoutes.Get("/finalized", reports.FinalizedReports)
	reportRoutes.Get("/export.xlsx", reports.ExportWorkbook)
	reportRoutes.Put("/content", reports.UpsertContent)
	reportRoutes.Post("/summary", reports.DraftSummary)
	reportRoutes.Get("/:id", reports.GetReport)
	reportRoutes.Post("/:id/finalize", reports.Finalize)
	reportRoutes.Post("/:id/feedback", reports.SubmitFeedback)
	reportRoutes.Post("/:id/acknowledge", reports.Acknowledge)
	reportRoutes.Post("/:id/reply", reports.Reply)
	reportRoutes.Get("/:id/export", reports.ExportText)

	// Directory, listing before the ID routes
	if d := h.Directory; d != nil {
		api.Get("/staff", d.ListStaff)
		api.Get("/staff/:id", d.GetStaff)
		api.Get("/clients", d.ListClients)
		api.Get("/clients/:id", d.GetClient)
	}

	// Client portal
	api.Get("/clients/:id/report", reports.ClientReport)

	// Request log viewer
	if h.Logs != nil {
		api.Get("/logs", h.Logs.GetLogs)
		api.Get("/logs/stats", h.Logs.GetLogStats)
	}
}

// New builds the app with the middleware stack in front of the routes.
// requestLog may be nil.
func New(h Handlers, requestLog *middleware.RequestLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "CareBridge Hub",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if requestLog != nil {
		app.Use(requestLog.Handler())
	}
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With, X-Request-ID",
		MaxAge:       300, // preflight cache (5 minutes)
	}))

	SetupRoutes(app, h)
	return app
}

// errorHandler keeps fiber's own errors (unknown route, bad method) in the
// same JSON shape the controllers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
