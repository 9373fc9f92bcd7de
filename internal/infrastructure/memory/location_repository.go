package memory

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct {
	v view
}

func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	return r.v.write(ctx, func(s *state) error {
		return locationCatalog.create(s, location.LocationID)
	})
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	err := r.v.read(ctx, func(s *state) error {
		if locationCatalog.exists(s, id) {
			out = &entity.Location{LocationID: id}
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Rename(ctx context.Context, oldID, newID string) error {
	return r.v.write(ctx, func(s *state) error {
		return locationCatalog.renameInPlace(s, oldID, newID)
	})
}

// List devuelve las ubicaciones ordenadas por location_id.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	var out []*entity.Location
	err := r.v.read(ctx, func(s *state) error {
		for _, id := range sortedKeys(s.locations) {
			out = append(out, &entity.Location{LocationID: id})
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.v.read(ctx, func(s *state) error {
		n = len(s.locations)
		return nil
	})
	return n, err
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(ctx, func(s *state) error {
		return locationCatalog.remove(s, id)
	})
}
