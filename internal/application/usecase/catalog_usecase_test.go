package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/inventory"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
	"github.com/jhoicas/stockmaster/internal/infrastructure/memory"
)

type fixture struct {
	store     *memory.Store
	products  *usecase.ProductUseCase
	locations *usecase.LocationUseCase
	ledger    *ledger.LedgerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	return &fixture{
		store:     s,
		products:  usecase.NewProductUseCase(s, s.Products()),
		locations: usecase.NewLocationUseCase(s, s.Locations()),
		ledger:    ledger.NewLedgerUseCase(s, s.Movements(), s.Products(), s.Locations(), zerolog.Nop()),
	}
}

// laptopScenario: LAPTOP, WAREHOUSE y STORE_NORTH; entrada de 50 y traslado de 20.
func (f *fixture) laptopScenario(t *testing.T) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.products.Create(ctx, dto.CreateProductRequest{ProductID: "LAPTOP"})
	require.NoError(t, err)
	for _, id := range []string{"WAREHOUSE", "STORE_NORTH"} {
		_, err := f.locations.Create(ctx, dto.CreateLocationRequest{LocationID: id})
		require.NoError(t, err)
	}
	m1, err := f.ledger.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50})
	require.NoError(t, err)
	m2, err := f.ledger.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "WAREHOUSE", ToLocation: "STORE_NORTH", Qty: 20})
	require.NoError(t, err)
	return m1.MovementID, m2.MovementID
}

func TestProduct_CreateYConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.products.Create(ctx, dto.CreateProductRequest{ProductID: "  LAPTOP  "})
	require.NoError(t, err)
	assert.Equal(t, "LAPTOP", out.ProductID)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{ProductID: "LAPTOP"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.products.Create(ctx, dto.CreateProductRequest{ProductID: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.products.GetByID(ctx, "GHOST")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_DeleteBloqueadoPorMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1, m2 := f.laptopScenario(t)

	err := f.products.Delete(ctx, "LAPTOP")
	require.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	require.NoError(t, f.ledger.Delete(ctx, m1))
	require.NoError(t, f.ledger.Delete(ctx, m2))
	require.NoError(t, f.products.Delete(ctx, "LAPTOP"))

	assert.ErrorIs(t, f.products.Delete(ctx, "LAPTOP"), domain.ErrNotFound)
}

func TestLocation_DeleteBloqueadoComoOrigenODestino(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.laptopScenario(t)
	_, err := f.locations.Create(ctx, dto.CreateLocationRequest{LocationID: "EMPTY"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.locations.Delete(ctx, "WAREHOUSE"), domain.ErrReferentialIntegrity)
	assert.ErrorIs(t, f.locations.Delete(ctx, "STORE_NORTH"), domain.ErrReferentialIntegrity)
	assert.NoError(t, f.locations.Delete(ctx, "EMPTY"))
}

func TestLocation_RenameConservaSaldos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.laptopScenario(t)

	out, err := f.locations.Rename(ctx, "STORE_NORTH", dto.RenameLocationRequest{LocationID: "STORE_N"})
	require.NoError(t, err)
	assert.Equal(t, "STORE_N", out.LocationID)

	movs, err := f.ledger.QueryByLocation(ctx, "STORE_N", repository.RoleEither)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "STORE_N", movs[0].ToLocation)

	all, err := f.ledger.List(ctx, repository.OrderByID, false)
	require.NoError(t, err)
	assert.Equal(t, []inventory.Balance{
		{ProductID: "LAPTOP", LocationID: "STORE_N", Quantity: 20},
		{ProductID: "LAPTOP", LocationID: "WAREHOUSE", Quantity: 30},
	}, inventory.Balances([]string{"LAPTOP"}, []string{"STORE_N", "STORE_NORTH", "WAREHOUSE"}, all))

	_, err = f.locations.GetByID(ctx, "STORE_NORTH")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRename_Conflictos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.laptopScenario(t)
	_, err := f.products.Create(ctx, dto.CreateProductRequest{ProductID: "TABLET"})
	require.NoError(t, err)

	_, err = f.products.Rename(ctx, "LAPTOP", dto.RenameProductRequest{ProductID: "TABLET"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.locations.Rename(ctx, "WAREHOUSE", dto.RenameLocationRequest{LocationID: "STORE_NORTH"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.products.Rename(ctx, "GHOST", dto.RenameProductRequest{ProductID: "OTHER"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Renombrar al mismo identificador no es un conflicto.
	out, err := f.products.Rename(ctx, "LAPTOP", dto.RenameProductRequest{ProductID: "LAPTOP"})
	require.NoError(t, err)
	assert.Equal(t, "LAPTOP", out.ProductID)

	out, err = f.products.Rename(ctx, "LAPTOP", dto.RenameProductRequest{ProductID: "NOTEBOOK"})
	require.NoError(t, err)
	assert.Equal(t, "NOTEBOOK", out.ProductID)
	movs, err := f.ledger.QueryByProduct(ctx, "NOTEBOOK")
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestProduct_Search(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, id := range []string{"LAPTOP", "SMARTPHONE", "TABLET", "MONITOR"} {
		_, err := f.products.Create(ctx, dto.CreateProductRequest{ProductID: id})
		require.NoError(t, err)
	}

	res, err := f.products.Search(ctx, "top")
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "LAPTOP", res.Items[0].ProductID)

	res, err = f.products.Search(ctx, "T")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)

	res, err = f.products.Search(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Items)

	all, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ProductResponse{
		{ProductID: "LAPTOP"}, {ProductID: "MONITOR"}, {ProductID: "SMARTPHONE"}, {ProductID: "TABLET"},
	}, all.Items)
}
