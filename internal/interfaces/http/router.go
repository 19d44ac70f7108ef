package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/invoicething/internal/application/analytics"
	"github.com/jhoicas/invoicething/internal/application/auth"
	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ClientUC     *usecase.ClientUseCase
	SettingsUC   *usecase.SettingsUseCase
	InvoiceUC    *billing.InvoiceUseCase
	InvoicePDF   *billing.PDFUseCase
	AttachmentUC *billing.AttachmentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	Auth         AuthConfig
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.Auth, deps.AuthUC))

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/sync", userHandler.Sync)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.InvoiceUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/invoices", clientHandler.Invoices)

	// Settings
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	api.Get("/settings", settingsHandler.Get)
	api.Put("/settings", settingsHandler.Upsert)

	// Invoices: las rutas fijas van antes de /:id
	invoices := api.Group("/invoices")
	invoices.Get("/next-number", invoiceHandler.NextNumber)
	invoices.Patch("/status", invoiceHandler.UpdateStatusBulk)
	invoices.Post("/bulk-delete", invoiceHandler.DeleteMany)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Files
	files := api.Group("/files")
	fileHandler := NewFileHandler(deps.AttachmentUC)
	files.Post("/upload-url", fileHandler.UploadURL)
	files.Get("/url", fileHandler.URL)
	files.Delete("/", fileHandler.Delete)
}
