package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicething/docs"
	appanalytics "github.com/jhoicas/invoicething/internal/application/analytics"
	"github.com/jhoicas/invoicething/internal/application/auth"
	"github.com/jhoicas/invoicething/internal/application/billing"
	"github.com/jhoicas/invoicething/internal/application/usecase"
	"github.com/jhoicas/invoicething/internal/domain/repository"
	"github.com/jhoicas/invoicething/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoicething/internal/infrastructure/pdf"
	"github.com/jhoicas/invoicething/internal/infrastructure/postgres"
	"github.com/jhoicas/invoicething/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/invoicething/internal/interfaces/http"
	"github.com/jhoicas/invoicething/pkg/config"
	"github.com/jhoicas/invoicething/pkg/logger"
)

// backend repositorios y runner de transacciones del driver elegido.
type backend struct {
	users    repository.UserRepository
	clients  repository.ClientRepository
	settings repository.SettingsRepository
	invoices repository.InvoiceRepository
	tx       billing.InvoiceTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	var attachments billing.AttachmentStore
	if cfg.S3.Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar S3")
		}
		attachments = s3Store
	} else {
		log.Warn().Msg("S3 deshabilitado: adjuntos en memoria")
		attachments = storage.NewMemoryStore("http://" + cfg.HTTP.Addr() + "/files")
	}

	authUC := auth.NewAuthUseCase(be.users, log)
	clientUC := usecase.NewClientUseCase(be.clients, log)
	settingsUC := usecase.NewSettingsUseCase(be.settings, log)
	invoiceUC := billing.NewInvoiceUseCase(be.invoices, be.clients, be.settings, be.tx, log)
	attachmentUC := billing.NewAttachmentUseCase(attachments, log)
	dashboardUC := appanalytics.NewDashboardUseCase(be.invoices, be.clients)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(be.invoices, be.clients, be.users, be.settings, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "InvoiceThing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ClientUC:     clientUC,
		SettingsUC:   settingsUC,
		InvoiceUC:    invoiceUC,
		InvoicePDF:   invoicePDFUC,
		AttachmentUC: attachmentUC,
		DashboardUC:  dashboardUC,
		Auth:         httpRouter.AuthConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		s := memory.NewStore()
		return &backend{
			users:    s.Users(),
			clients:  s.Clients(),
			settings: s.Settings(),
			invoices: s.Invoices(),
			tx:       s,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &backend{
		users:    postgres.NewUserRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		settings: postgres.NewSettingsRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
