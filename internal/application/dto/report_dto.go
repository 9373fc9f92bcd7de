package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceLineDTO saldo no nulo de un producto en una ubicación.
type BalanceLineDTO struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// BalanceReportResponse respuesta de GET /api/report/balance.
// Solo incluye pares (producto, ubicación) con saldo distinto de cero, ordenados por
// producto y luego por ubicación.
type BalanceReportResponse struct {
	Lines       []BalanceLineDTO `json:"lines"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// LocationTotalDTO stock total de una ubicación y su participación (%).
type LocationTotalDTO struct {
	LocationID string          `json:"location_id"`
	Quantity   int             `json:"quantity"`
	Share      decimal.Decimal `json:"share"`
}

// LocationDistributionResponse respuesta de GET /api/dashboard/locations (gráfico de torta).
type LocationDistributionResponse struct {
	LocationLabels []string           `json:"location_labels"`
	LocationData   []int              `json:"location_data"`
	Locations      []LocationTotalDTO `json:"locations"`
}

// ProductStockResponse respuesta de GET /api/products/:id/stock.
type ProductStockResponse struct {
	ProductID  string           `json:"product_id"`
	TotalStock int              `json:"total_stock"`
	LowStock   bool             `json:"low_stock"`
	Balances   []BalanceLineDTO `json:"balances"`
}
