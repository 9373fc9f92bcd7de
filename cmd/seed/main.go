// Command seed vacía el almacenamiento configurado y carga los datos de demostración.
//
//	go run ./cmd/seed -seed 42
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/stockmaster/internal/application/seed"
	"github.com/jhoicas/stockmaster/internal/infrastructure/storage"
	"github.com/jhoicas/stockmaster/pkg/config"
	"github.com/jhoicas/stockmaster/pkg/logger"
)

func main() {
	seedFlag := flag.Uint64("seed", uint64(time.Now().UnixNano()), "semilla para las cantidades aleatorias")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	res, err := seed.NewSeeder(backend, log.Component("seed"), *seedFlag).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Uint64("seed", *seedFlag).
		Str("storage", backend.Driver).
		Msgf("base sembrada con %d productos, %d ubicaciones y %d movimientos", res.Products, res.Locations, res.Movements)
}
