// Package inventory contiene el motor de saldos: reducciones puras del libro de movimientos
// a stock por producto, saldos por producto+ubicación y series para el dashboard.
// No guarda estado; cada consulta recalcula desde los movimientos.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// LowStockThreshold umbral por defecto: un producto con stock total < 10 es bajo stock.
const LowStockThreshold = 10

// Balance saldo neto de un producto en una ubicación.
type Balance struct {
	ProductID  string
	LocationID string
	Quantity   int
}

// LocationTotal stock total en una ubicación (todos los productos) y su participación
// porcentual sobre el stock positivo de la empresa.
type LocationTotal struct {
	LocationID string
	Quantity   int
	Share      decimal.Decimal
}

type balanceKey struct {
	productID  string
	locationID string
}

// TotalStock devuelve entradas menos salidas de un producto sin filtrar por ubicación.
// Los traslados se anulan: restan en origen y suman en destino.
func TotalStock(movements []*entity.Movement, productID string) int {
	total := 0
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		total += signedQty(m)
	}
	return total
}

// StockByProduct calcula TotalStock para todos los productos en una sola pasada.
func StockByProduct(movements []*entity.Movement) map[string]int {
	out := make(map[string]int)
	for _, m := range movements {
		out[m.ProductID] += signedQty(m)
	}
	return out
}

// signedQty aporte neto del movimiento al stock de la empresa.
func signedQty(m *entity.Movement) int {
	n := 0
	if m.ToLocation != "" {
		n += m.Qty
	}
	if m.FromLocation != "" {
		n -= m.Qty
	}
	return n
}

// Balances arma el reporte de saldos: recorre productos y ubicaciones en el orden recibido
// y emite solo los pares con saldo distinto de cero.
func Balances(productIDs, locationIDs []string, movements []*entity.Movement) []Balance {
	byKey := balancesByKey(movements)
	out := make([]Balance, 0, len(byKey))
	for _, p := range productIDs {
		for _, l := range locationIDs {
			if q := byKey[balanceKey{p, l}]; q != 0 {
				out = append(out, Balance{ProductID: p, LocationID: l, Quantity: q})
			}
		}
	}
	return out
}

func balancesByKey(movements []*entity.Movement) map[balanceKey]int {
	byKey := make(map[balanceKey]int)
	for _, m := range movements {
		if m.ToLocation != "" {
			byKey[balanceKey{m.ProductID, m.ToLocation}] += m.Qty
		}
		if m.FromLocation != "" {
			byKey[balanceKey{m.ProductID, m.FromLocation}] -= m.Qty
		}
	}
	return byKey
}

// IsLowStock indica si total está por debajo del umbral. Cero y negativos cuentan
// como bajo stock: un negativo es un error de captura que debe atenderse.
func IsLowStock(total, threshold int) bool {
	return total < threshold
}

// CountLowStock cuenta los productos de productIDs en bajo stock según stock.
// Un producto sin movimientos tiene stock 0.
func CountLowStock(productIDs []string, stock map[string]int, threshold int) int {
	n := 0
	for _, p := range productIDs {
		if IsLowStock(stock[p], threshold) {
			n++
		}
	}
	return n
}

// StockSeries devuelve el stock total de cada producto en el orden de productIDs
// (serie del gráfico del dashboard; no se ordena por cantidad).
func StockSeries(productIDs []string, stock map[string]int) []int {
	out := make([]int, len(productIDs))
	for i, p := range productIDs {
		out[i] = stock[p]
	}
	return out
}

// LocationTotals suma los saldos de todos los productos por ubicación, en el orden de
// locationIDs. Share = cantidad / suma de cantidades positivas * 100 (2 decimales);
// ubicaciones con saldo <= 0 tienen Share cero.
func LocationTotals(locationIDs []string, movements []*entity.Movement) []LocationTotal {
	perLocation := make(map[string]int, len(locationIDs))
	for _, m := range movements {
		if m.ToLocation != "" {
			perLocation[m.ToLocation] += m.Qty
		}
		if m.FromLocation != "" {
			perLocation[m.FromLocation] -= m.Qty
		}
	}

	positive := 0
	for _, l := range locationIDs {
		if q := perLocation[l]; q > 0 {
			positive += q
		}
	}

	hundred := decimal.NewFromInt(100)
	out := make([]LocationTotal, 0, len(locationIDs))
	for _, l := range locationIDs {
		q := perLocation[l]
		share := decimal.Zero
		if q > 0 && positive > 0 {
			share = decimal.NewFromInt(int64(q)).Mul(hundred).Div(decimal.NewFromInt(int64(positive))).Round(2)
		}
		out = append(out, LocationTotal{LocationID: l, Quantity: q, Share: share})
	}
	return out
}
