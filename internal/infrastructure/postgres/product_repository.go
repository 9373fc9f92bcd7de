package postgres

import (
	"context"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return productsTable.insert(ctx, r.q, product.ProductID)
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	ok, err := productsTable.exists(ctx, r.q, id)
	if err != nil || !ok {
		return nil, err
	}
	return &entity.Product{ProductID: id}, nil
}

func (r *ProductRepo) Rename(ctx context.Context, oldID, newID string) error {
	return productsTable.rename(ctx, r.q, oldID, newID)
}

// List lista los productos ordenados por product_id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	ids, err := productsTable.list(ctx, r.q)
	if err != nil {
		return nil, err
	}
	list := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		list = append(list, &entity.Product{ProductID: id})
	}
	return list, nil
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	return productsTable.count(ctx, r.q)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return productsTable.remove(ctx, r.q, id)
}
