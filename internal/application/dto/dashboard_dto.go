package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ProductCount  int `json:"product_count"`
	LocationCount int `json:"location_count"`
	MovementCount int `json:"movement_count"`
	LowStockCount int `json:"low_stock_count"` // productos con stock total < umbral

	// Los 5 movimientos más recientes (por movement_id descendente)
	RecentMovements []MovementResponse `json:"recent_movements"`

	// Serie del gráfico: una etiqueta y un valor por producto, en el orden del listado
	ProductLabels []string `json:"product_labels"`
	StockLevels   []int    `json:"stock_levels"`

	LowStockThreshold int `json:"low_stock_threshold"`
}
