package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LocationUC  *usecase.LocationUseCase
	LedgerUC    *ledger.LedgerUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	ExportUC    *analytics.ExportUseCase
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name        string
	SwaggerFile string // vacío o inexistente = sin /docs
}

// NewApp crea la app Fiber con middlewares (recover, request id, access log), /health,
// Swagger UI y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name + " API",
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC, deps.ReportUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Rename)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", productHandler.Stock)
	products.Get("/:id/movements", productHandler.Movements)

	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.LedgerUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Rename)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/movements", locationHandler.Movements)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Record)
	movements.Get("/recent", movementHandler.Recent)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	report := api.Group("/report")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	report.Get("/balance", reportHandler.Balance)
	report.Get("/balance.pdf", reportHandler.BalancePDF)
	report.Get("/balance.xlsx", reportHandler.BalanceXLSX)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/locations", dashboardHandler.GetLocationDistribution)
}
