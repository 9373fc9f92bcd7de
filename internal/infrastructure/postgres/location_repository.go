package postgres

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	return locationsTable.insert(ctx, r.q, location.LocationID)
}

// GetByID obtiene una ubicación por ID; (nil, nil) si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	ok, err := locationsTable.exists(ctx, r.q, id)
	if err != nil || !ok {
		return nil, err
	}
	return &entity.Location{LocationID: id}, nil
}

func (r *LocationRepo) Rename(ctx context.Context, oldID, newID string) error {
	return locationsTable.rename(ctx, r.q, oldID, newID)
}

// List lista las ubicaciones ordenadas por location_id.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	ids, err := locationsTable.list(ctx, r.q)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Location, 0, len(ids))
	for _, id := range ids {
		list = append(list, &entity.Location{LocationID: id})
	}
	return list, nil
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	return locationsTable.count(ctx, r.q)
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	return locationsTable.remove(ctx, r.q, id)
}
