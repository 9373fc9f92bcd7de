package memory

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	v view
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.v.write(ctx, func(s *state) error {
		return productCatalog.create(s, product.ProductID)
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(ctx, func(s *state) error {
		if productCatalog.exists(s, id) {
			out = &entity.Product{ProductID: id}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Rename(ctx context.Context, oldID, newID string) error {
	return r.v.write(ctx, func(s *state) error {
		return productCatalog.renameInPlace(s, oldID, newID)
	})
}

// List devuelve los productos ordenados por product_id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(ctx, func(s *state) error {
		for _, id := range sortedKeys(s.products) {
			out = append(out, &entity.Product{ProductID: id})
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.v.read(ctx, func(s *state) error {
		n = len(s.products)
		return nil
	})
	return n, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(ctx, func(s *state) error {
		return productCatalog.remove(s, id)
	})
}
