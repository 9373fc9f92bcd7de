package inventory_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/domain/inventory"
)

func mov(product, from, to string, qty int) *entity.Movement {
	return &entity.Movement{ProductID: product, FromLocation: from, ToLocation: to, Qty: qty}
}

// Escenario base: 50 unidades entran a WAREHOUSE y 20 se trasladan a STORE_NORTH.
func laptopLedger() []*entity.Movement {
	return []*entity.Movement{
		mov("LAPTOP", "", "WAREHOUSE", 50),
		mov("LAPTOP", "WAREHOUSE", "STORE_NORTH", 20),
	}
}

func TestBalances_EjemploLaptop(t *testing.T) {
	movs := laptopLedger()
	assert.Equal(t, []inventory.Balance{
		{ProductID: "LAPTOP", LocationID: "WAREHOUSE", Quantity: 30},
		{ProductID: "LAPTOP", LocationID: "STORE_NORTH", Quantity: 20},
	}, inventory.Balances([]string{"LAPTOP"}, []string{"WAREHOUSE", "STORE_NORTH"}, movs))
	assert.Equal(t, 50, inventory.TotalStock(movs, "LAPTOP"))
}

func TestBalances_OmiteSaldosCero(t *testing.T) {
	movs := append(laptopLedger(),
		mov("LAPTOP", "STORE_NORTH", "", 20), // STORE_NORTH queda en cero
		mov("TABLET", "", "STORE_NORTH", 4),
	)
	got := inventory.Balances(
		[]string{"LAPTOP", "TABLET", "MONITOR"},
		[]string{"WAREHOUSE", "STORE_NORTH"},
		movs,
	)
	assert.Equal(t, []inventory.Balance{
		{ProductID: "LAPTOP", LocationID: "WAREHOUSE", Quantity: 30},
		{ProductID: "TABLET", LocationID: "STORE_NORTH", Quantity: 4},
	}, got)
}

func TestBalances_IncluyeNegativos(t *testing.T) {
	movs := []*entity.Movement{mov("LAPTOP", "WAREHOUSE", "", 7)}
	got := inventory.Balances([]string{"LAPTOP"}, []string{"WAREHOUSE"}, movs)
	require.Len(t, got, 1)
	assert.Equal(t, -7, got[0].Quantity)
}

func TestLowStock(t *testing.T) {
	assert.True(t, inventory.IsLowStock(9, inventory.LowStockThreshold))
	assert.False(t, inventory.IsLowStock(10, inventory.LowStockThreshold))
	assert.True(t, inventory.IsLowStock(0, inventory.LowStockThreshold))
	assert.True(t, inventory.IsLowStock(-5, inventory.LowStockThreshold))

	stock := map[string]int{"LAPTOP": 50, "TABLET": 3, "MONITOR": -2}
	// SMARTPHONE sin movimientos cuenta con stock 0.
	n := inventory.CountLowStock([]string{"LAPTOP", "TABLET", "MONITOR", "SMARTPHONE"}, stock, inventory.LowStockThreshold)
	assert.Equal(t, 3, n)
}

func TestStockSeries_RespetaOrdenDeProductos(t *testing.T) {
	stock := inventory.StockByProduct(append(laptopLedger(), mov("TABLET", "", "WAREHOUSE", 80)))
	series := inventory.StockSeries([]string{"TABLET", "LAPTOP", "MONITOR"}, stock)
	assert.Equal(t, []int{80, 50, 0}, series)
}

func TestLocationTotals(t *testing.T) {
	movs := append(laptopLedger(),
		mov("TABLET", "", "STORE_SOUTH", 50),
		mov("TABLET", "STORE_SOUTH", "", 60), // STORE_SOUTH queda en -10
	)
	got := inventory.LocationTotals([]string{"WAREHOUSE", "STORE_NORTH", "STORE_SOUTH", "EMPTY"}, movs)
	require.Len(t, got, 4)

	assert.Equal(t, 30, got[0].Quantity)
	assert.True(t, decimal.NewFromInt(60).Equal(got[0].Share), got[0].Share.String())
	assert.Equal(t, 20, got[1].Quantity)
	assert.True(t, decimal.NewFromInt(40).Equal(got[1].Share), got[1].Share.String())
	assert.Equal(t, -10, got[2].Quantity)
	assert.True(t, got[2].Share.IsZero())
	assert.Equal(t, 0, got[3].Quantity)
	assert.True(t, got[3].Share.IsZero())
}

// Para cualquier secuencia de movimientos: entradas - salidas por producto coincide con
// TotalStock, con la suma de sus saldos por ubicación, y ningún saldo reportado es cero.
func TestInvariantes_SecuenciasAleatorias(t *testing.T) {
	products := []string{"LAPTOP", "SMARTPHONE", "TABLET"}
	locations := []string{"WAREHOUSE", "STORE_NORTH", "STORE_SOUTH", "DISTRIBUTION"}
	rng := rand.New(rand.NewPCG(42, 7))

	for round := 0; round < 200; round++ {
		var movs []*entity.Movement
		for i := 0; i < rng.IntN(40); i++ {
			m := &entity.Movement{ProductID: products[rng.IntN(len(products))], Qty: 1 + rng.IntN(30)}
			switch rng.IntN(3) {
			case 0:
				m.ToLocation = locations[rng.IntN(len(locations))]
			case 1:
				m.FromLocation = locations[rng.IntN(len(locations))]
			default:
				m.FromLocation = locations[rng.IntN(len(locations))]
				m.ToLocation = locations[rng.IntN(len(locations))]
			}
			movs = append(movs, m)
		}

		stock := inventory.StockByProduct(movs)
		balances := inventory.Balances(products, locations, movs)
		perProduct := map[string]int{}
		for _, b := range balances {
			require.NotZero(t, b.Quantity)
			perProduct[b.ProductID] += b.Quantity
		}
		for _, p := range products {
			in, out := 0, 0
			for _, m := range movs {
				if m.ProductID != p {
					continue
				}
				if m.ToLocation != "" {
					in += m.Qty
				}
				if m.FromLocation != "" {
					out += m.Qty
				}
			}
			require.Equal(t, in-out, inventory.TotalStock(movs, p))
			require.Equal(t, in-out, stock[p])
			require.Equal(t, in-out, perProduct[p])
		}
	}
}
