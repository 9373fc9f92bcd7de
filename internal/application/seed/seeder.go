// Package seed carga el conjunto de datos de demostración: cuatro productos, cuatro
// ubicaciones y un mes de recepciones, transferencias, devoluciones y despachos.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var (
	Products  = []string{"LAPTOP", "SMARTPHONE", "TABLET", "MONITOR"}
	Locations = []string{"WAREHOUSE", "STORE_NORTH", "STORE_SOUTH", "DISTRIBUTION"}
)

// FreshRunner ejecuta fn en una transacción que arranca con el almacenamiento vacío.
// Si fn falla, los datos previos quedan intactos.
type FreshRunner interface {
	RunFresh(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// Result conteos de lo sembrado.
type Result struct {
	Products  int
	Locations int
	Movements int
}

// Seeder vacía y siembra dentro de una sola transacción.
type Seeder struct {
	tx    FreshRunner
	log   zerolog.Logger
	rng   *rand.Rand
	now   func() time.Time
}

// NewSeeder construye el seeder. El mismo seed produce las mismas cantidades.
func NewSeeder(tx FreshRunner, log zerolog.Logger, seed uint64) *Seeder {
	return &Seeder{
		tx:    tx,
		log:   log,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:   time.Now,
	}
}

// Seed borra todo y vuelve a cargar el conjunto de demostración.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	movements := s.movements()

	err := s.tx.RunFresh(ctx, func(products repository.ProductRepository, locations repository.LocationRepository, movs repository.MovementRepository) error {
		for _, id := range Products {
			if err := products.Create(ctx, &entity.Product{ProductID: id}); err != nil {
				return err
			}
		}
		for _, id := range Locations {
			if err := locations.Create(ctx, &entity.Location{LocationID: id}); err != nil {
				return err
			}
		}
		for i := range movements {
			if err := movements[i].Validate(); err != nil {
				return err
			}
			if err := movs.Create(ctx, &movements[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed: %w", err)
	}

	res := Result{Products: len(Products), Locations: len(Locations), Movements: len(movements)}
	s.log.Info().
		Int("products", res.Products).
		Int("locations", res.Locations).
		Int("movements", res.Movements).
		Msg("datos de demostración cargados")
	return res, nil
}

// movements arma el libro en orden de inserción; los ids quedan en ese orden.
func (s *Seeder) movements() []entity.Movement {
	now := s.now()
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }
	var out []entity.Movement

	// stock inicial en bodega
	for _, p := range Products {
		out = append(out, entity.Movement{Timestamp: daysAgo(30), ProductID: p, ToLocation: "WAREHOUSE", Qty: s.between(50, 100)})
	}

	out = append(out,
		entity.Movement{Timestamp: daysAgo(25), ProductID: "LAPTOP", ToLocation: "STORE_NORTH", Qty: 20},
		entity.Movement{Timestamp: daysAgo(24), ProductID: "SMARTPHONE", ToLocation: "STORE_NORTH", Qty: 30},
		entity.Movement{Timestamp: daysAgo(20), ProductID: "LAPTOP", FromLocation: "STORE_NORTH", ToLocation: "STORE_SOUTH", Qty: 5},
	)

	// distribución desde bodega
	for _, p := range Products {
		for _, loc := range []string{"STORE_NORTH", "STORE_SOUTH", "DISTRIBUTION"} {
			out = append(out, entity.Movement{
				Timestamp: daysAgo(s.between(15, 20)), ProductID: p,
				FromLocation: "WAREHOUSE", ToLocation: loc, Qty: s.between(5, 15),
			})
		}
	}

	// devoluciones
	for _, p := range Products {
		out = append(out, entity.Movement{
			Timestamp: daysAgo(s.between(5, 10)), ProductID: p,
			FromLocation: s.pick("STORE_NORTH", "STORE_SOUTH"), ToLocation: "WAREHOUSE", Qty: s.between(1, 3),
		})
	}

	// despachos
	for range 4 {
		out = append(out, entity.Movement{
			Timestamp: daysAgo(s.between(1, 5)), ProductID: s.pick(Products...),
			FromLocation: s.pick("WAREHOUSE", "DISTRIBUTION"), Qty: s.between(1, 10),
		})
	}
	return out
}

// between entero uniforme en [lo, hi].
func (s *Seeder) between(lo, hi int) int { return lo + s.rng.IntN(hi-lo+1) }

func (s *Seeder) pick(options ...string) string { return options[s.rng.IntN(len(options))] }
