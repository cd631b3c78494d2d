// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and mounts them on the app.
package routes

import (
	"context"

	"jobpay/internal/config"
	"jobpay/internal/handlers"
	"jobpay/internal/metrics"
	"jobpay/internal/middleware"
	"jobpay/internal/repositories"
	"jobpay/internal/services/auth"
	"jobpay/internal/services/contract"
	"jobpay/internal/services/ledger"
	"jobpay/internal/services/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cache is what the routes need from the report cache backend.
type Cache interface {
	report.Cache
	HealthCheck(ctx context.Context) error
}

// Deps carries the process-wide resources the routes are built from.
type Deps struct {
	DB      *gorm.DB
	Cache   Cache
	Config  *config.Config
	Logger  *zap.Logger
	Version string
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Deps) {
	cfg := deps.Config
	log := deps.Logger
	collector := metrics.NewCollector()

	// Repositories
	profileRepo := repositories.NewProfileRepository(deps.DB)
	contractRepo := repositories.NewContractRepository(deps.DB)
	ledgerRepo := repositories.NewLedgerRepository(deps.DB)
	reportRepo := repositories.NewReportRepository(deps.DB)

	// Services
	authService := auth.NewService(profileRepo, cfg.JWTSecret, cfg.JWTTTL)
	contractService := contract.NewService(contractRepo)
	reportService := report.NewService(reportRepo, deps.Cache, cfg.ReportCacheTTL, collector, log)
	ledgerService := ledger.NewService(
		ledgerRepo,
		reportService,
		ledger.LedgerConfig{
			DepositCapRatio:   cfg.DepositCapRatio,
			ProcessingTimeout: cfg.LedgerTimeout,
		},
		collector,
		log,
	)

	// Handlers
	contractHandler := handlers.NewContractHandler(contractService, log)
	jobHandler := handlers.NewJobHandler(contractService, ledgerService, log)
	balanceHandler := handlers.NewBalanceHandler(ledgerService, log)
	adminHandler := handlers.NewAdminHandler(reportService, log)
	healthHandler := handlers.NewHealthHandler(deps.Version, map[string]handlers.Checker{
		"database": handlers.CheckerFunc(func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"cache": deps.Cache,
	})

	// Operational endpoints
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "jobpay ledger API",
			"version": deps.Version,
		})
	})

	profileMiddleware := middleware.NewProfileMiddleware(authService, cfg.AllowProfileHeader, log)

	setupContractRoutes(app, profileMiddleware.Handler, contractHandler)
	setupJobRoutes(app, profileMiddleware.Handler, jobHandler)
	setupBalanceRoutes(app, profileMiddleware.Handler, balanceHandler)
	setupAdminRoutes(app, profileMiddleware.Handler, adminHandler)
}

func setupContractRoutes(app *fiber.App, auth fiber.Handler, h *handlers.ContractHandler) {
	contracts := app.Group("/contracts", auth)
	contracts.Get("/", h.ListContracts)
	contracts.Get("/:id", h.GetContract)
}

func setupJobRoutes(app *fiber.App, auth fiber.Handler, h *handlers.JobHandler) {
	jobs := app.Group("/jobs", auth)
	jobs.Get("/unpaid", h.ListUnpaid)
	jobs.Post("/:job_id/pay", h.Pay)
}

func setupBalanceRoutes(app *fiber.App, auth fiber.Handler, h *handlers.BalanceHandler) {
	balances := app.Group("/balances", auth)
	balances.Post("/deposit/:userId", h.Deposit)
}

// Admin reports need a known caller but are not scoped to it.
func setupAdminRoutes(app *fiber.App, auth fiber.Handler, h *handlers.AdminHandler) {
	admin := app.Group("/admin", auth)
	admin.Get("/best-profession", h.BestProfession)
	admin.Get("/best-clients", h.BestClients)
}
