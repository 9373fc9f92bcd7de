package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
	"github.com/jhoicas/stockmaster/internal/infrastructure/memory"
)

func newLedger(t *testing.T) (*ledger.LedgerUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ProductID: "LAPTOP"}))
	for _, id := range []string{"WAREHOUSE", "STORE_NORTH"} {
		require.NoError(t, s.Locations().Create(ctx, &entity.Location{LocationID: id}))
	}
	uc := ledger.NewLedgerUseCase(s, s.Movements(), s.Products(), s.Locations(), zerolog.Nop())
	return uc, s
}

func TestRecord_AsignaIDYTimestamp(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	before := time.Now()
	mov, err := uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mov.MovementID)
	assert.Equal(t, entity.MovementKindInbound, mov.Kind())
	assert.False(t, mov.Timestamp.Before(before), "el timestamp por defecto es la hora de creación")

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mov2, err := uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "WAREHOUSE", ToLocation: "STORE_NORTH", Qty: 20, Timestamp: &ts})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mov2.MovementID)
	assert.True(t, ts.Equal(mov2.Timestamp))
}

func TestRecord_Validaciones(t *testing.T) {
	cases := []struct {
		name string
		in   ledger.MovementInput
	}{
		{"qty cero", ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 0}},
		{"qty negativa", ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: -1}},
		{"sin ubicaciones", ledger.MovementInput{ProductID: "LAPTOP", Qty: 5}},
		{"solo espacios en ubicaciones", ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "  ", ToLocation: " ", Qty: 5}},
		{"producto inexistente", ledger.MovementInput{ProductID: "GHOST", ToLocation: "WAREHOUSE", Qty: 5}},
		{"destino inexistente", ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "NOWHERE", Qty: 5}},
		{"origen inexistente", ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "NOWHERE", ToLocation: "WAREHOUSE", Qty: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, s := newLedger(t)
			ctx := context.Background()

			_, err := uc.Record(ctx, tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)

			n, err := s.Movements().Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n, "el libro no debe cambiar ante un registro inválido")
		})
	}
}

func TestUpdate(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mov, err := uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50, Timestamp: &ts})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, mov.MovementID, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "STORE_NORTH", Qty: 7})
	require.NoError(t, err)
	assert.Equal(t, "STORE_NORTH", updated.ToLocation)
	assert.True(t, ts.Equal(updated.Timestamp), "sin timestamp se conserva el original")

	got, err := uc.Get(ctx, mov.MovementID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Qty)

	_, err = uc.Update(ctx, 999, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, mov.MovementID, ledger.MovementInput{ProductID: "LAPTOP", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, err = uc.Get(ctx, mov.MovementID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Qty, "una edición inválida no modifica el movimiento")
}

func TestDelete(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	mov, err := uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, mov.MovementID))

	assert.ErrorIs(t, uc.Delete(ctx, mov.MovementID), domain.ErrNotFound)
	_, err = uc.Get(ctx, mov.MovementID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListYConsultas(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time { ts := base.Add(time.Duration(h) * time.Hour); return &ts }

	_, err := uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50, Timestamp: at(2)})
	require.NoError(t, err)
	_, err = uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "WAREHOUSE", ToLocation: "STORE_NORTH", Qty: 20, Timestamp: at(0)})
	require.NoError(t, err)
	_, err = uc.Record(ctx, ledger.MovementInput{ProductID: "LAPTOP", FromLocation: "STORE_NORTH", Qty: 5, Timestamp: at(1)})
	require.NoError(t, err)

	list, err := uc.List(ctx, repository.OrderByTimestamp, true)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{1, 3, 2}, []int64{list[0].MovementID, list[1].MovementID, list[2].MovementID})

	recent, err := uc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].MovementID)

	src, err := uc.QueryByLocation(ctx, "WAREHOUSE", repository.RoleSource)
	require.NoError(t, err)
	assert.Len(t, src, 1)
	dst, err := uc.QueryByLocation(ctx, "STORE_NORTH", repository.RoleDestination)
	require.NoError(t, err)
	assert.Len(t, dst, 1)
	either, err := uc.QueryByLocation(ctx, "STORE_NORTH", repository.RoleEither)
	require.NoError(t, err)
	assert.Len(t, either, 2)

	byProduct, err := uc.QueryByProduct(ctx, "LAPTOP")
	require.NoError(t, err)
	assert.Len(t, byProduct, 3)

	_, err = uc.QueryByLocation(ctx, "WAREHOUSE", "middle")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.QueryByLocation(ctx, "NOWHERE", repository.RoleEither)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.QueryByProduct(ctx, "GHOST")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.List(ctx, "qty", false)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
