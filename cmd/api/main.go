package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
	infrapdf "github.com/jhoicas/stockmaster/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/stockmaster/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stockmaster/internal/interfaces/http"
	"github.com/jhoicas/stockmaster/pkg/config"
	"github.com/jhoicas/stockmaster/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	threshold := cfg.Inventory.LowStockThreshold
	ledgerUC := ledger.NewLedgerUseCase(backend.Tx, backend.Movements, backend.Products, backend.Locations, log.Component("ledger"))
	productUC := usecase.NewProductUseCase(backend.Tx, backend.Products)
	locationUC := usecase.NewLocationUseCase(backend.Tx, backend.Locations)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Snapshots, threshold)
	reportUC := appanalytics.NewReportUseCase(backend.Snapshots, threshold)
	exportUC := appanalytics.NewExportUseCase(reportUC,
		infrapdf.NewMarotoPDFGenerator("Reporte de saldos - "+cfg.App.Name),
		infraxlsx.NewExcelizeGenerator(),
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		SwaggerFile: "./docs/swagger.json",
	}, httpRouter.RouterDeps{
		ProductUC:   productUC,
		LocationUC:  locationUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		ExportUC:    exportUC,
	}, log.Component("http"))

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
