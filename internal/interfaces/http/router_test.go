package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
	"github.com/jhoicas/stockmaster/internal/domain/entity"
	"github.com/jhoicas/stockmaster/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster/internal/infrastructure/pdf"
	"github.com/jhoicas/stockmaster/internal/infrastructure/storage"
	"github.com/jhoicas/stockmaster/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/stockmaster/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	b := storage.NewMemory(memory.NewStore())
	log := zerolog.Nop()
	reports := analytics.NewReportUseCase(b.Snapshots, 10)
	return apphttp.NewApp(apphttp.AppConfig{Name: "stockmaster-test"}, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(b.Tx, b.Products),
		LocationUC:  usecase.NewLocationUseCase(b.Tx, b.Locations),
		LedgerUC:    ledger.NewLedgerUseCase(b.Tx, b.Movements, b.Products, b.Locations, log),
		DashboardUC: analytics.NewDashboardUseCase(b.Snapshots, 10),
		ReportUC:    reports,
		ExportUC:    analytics.NewExportUseCase(reports, pdf.NewMarotoPDFGenerator(""), xlsx.NewExcelizeGenerator()),
	}, log)
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func expectError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	assert.Equal(t, code, decode[dto.ErrorResponse](t, resp).Code)
}

// laptopScenario: LAPTOP +50 en WAREHOUSE y traslado de 20 a STORE_NORTH.
func laptopScenario(t *testing.T, app *fiber.App) {
	t.Helper()
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "LAPTOP"}).StatusCode)
	for _, id := range []string{"WAREHOUSE", "STORE_NORTH"} {
		require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/locations", dto.CreateLocationRequest{LocationID: id}).StatusCode)
	}
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 50}).StatusCode)
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "LAPTOP", FromLocation: "WAREHOUSE", ToLocation: "STORE_NORTH", Qty: 20}).StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYRequestID(t *testing.T) {
	app := buildTestApp(t)
	resp := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestRutaInexistente(t *testing.T) {
	app := buildTestApp(t)
	expectError(t, do(t, app, http.MethodGet, "/api/nada", nil), fiber.StatusNotFound, "NOT_FOUND")
}

func TestBalanceReport_EjemploLaptop(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	rep := decode[dto.BalanceReportResponse](t, do(t, app, http.MethodGet, "/api/report/balance", nil))
	assert.Equal(t, []dto.BalanceLineDTO{
		{ProductID: "LAPTOP", LocationID: "STORE_NORTH", Quantity: 20},
		{ProductID: "LAPTOP", LocationID: "WAREHOUSE", Quantity: 30},
	}, rep.Lines)

	stock := decode[dto.ProductStockResponse](t, do(t, app, http.MethodGet, "/api/products/LAPTOP/stock", nil))
	assert.Equal(t, 50, stock.TotalStock)
	assert.False(t, stock.LowStock)
}

func TestRecord_Rechazos(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	expectError(t, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "LAPTOP", Qty: 5}), fiber.StatusBadRequest, "VALIDATION")
	expectError(t, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 0}), fiber.StatusBadRequest, "VALIDATION")
	expectError(t, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "GHOST", ToLocation: "WAREHOUSE", Qty: 1}), fiber.StatusBadRequest, "VALIDATION")

	list := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/movements", nil))
	assert.Equal(t, 2, list.Total, "los rechazos no modifican el libro")
}

func TestMovements_CRUD(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	expectError(t, do(t, app, http.MethodGet, "/api/movements/abc", nil), fiber.StatusBadRequest, "INVALID_ID")
	expectError(t, do(t, app, http.MethodGet, "/api/movements/999", nil), fiber.StatusNotFound, "NOT_FOUND")

	mov := decode[dto.MovementResponse](t, do(t, app, http.MethodGet, "/api/movements/1", nil))
	assert.Equal(t, "INBOUND", mov.Kind)
	assert.Nil(t, mov.FromLocation)

	upd := decode[dto.MovementResponse](t, do(t, app, http.MethodPut, "/api/movements/1",
		dto.MovementRequest{ProductID: "LAPTOP", ToLocation: "WAREHOUSE", Qty: 60}))
	assert.Equal(t, 60, upd.Qty)
	assert.True(t, mov.Timestamp.Equal(upd.Timestamp), "sin timestamp se conserva el original")

	byID := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/movements?order_by=id&desc=false", nil))
	require.Len(t, byID.Items, 2)
	assert.Equal(t, int64(1), byID.Items[0].MovementID)

	expectError(t, do(t, app, http.MethodGet, "/api/movements?order_by=qty", nil), fiber.StatusBadRequest, "VALIDATION")

	recent := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/movements/recent?n=1", nil))
	require.Len(t, recent.Items, 1)
	assert.Equal(t, int64(2), recent.Items[0].MovementID)

	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodDelete, "/api/movements/2", nil).StatusCode)
	expectError(t, do(t, app, http.MethodDelete, "/api/movements/2", nil), fiber.StatusNotFound, "NOT_FOUND")
}

func TestDeleteProducto_Protegido(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	expectError(t, do(t, app, http.MethodDelete, "/api/products/LAPTOP", nil), fiber.StatusConflict, "REFERENTIAL_INTEGRITY")
	do(t, app, http.MethodDelete, "/api/movements/1", nil)
	do(t, app, http.MethodDelete, "/api/movements/2", nil)
	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodDelete, "/api/products/LAPTOP", nil).StatusCode)
	expectError(t, do(t, app, http.MethodGet, "/api/products/LAPTOP", nil), fiber.StatusNotFound, "NOT_FOUND")
}

func TestRenameUbicacion_ConservaSaldos(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	resp := do(t, app, http.MethodPut, "/api/locations/STORE_NORTH", dto.RenameLocationRequest{LocationID: "STORE_N"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	expectError(t, do(t, app, http.MethodPut, "/api/locations/STORE_N", dto.RenameLocationRequest{LocationID: "WAREHOUSE"}),
		fiber.StatusConflict, "CONFLICT")

	movs := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/locations/STORE_N/movements?role=destination", nil))
	require.Equal(t, 1, movs.Total)
	require.NotNil(t, movs.Items[0].ToLocation)
	assert.Equal(t, "STORE_N", *movs.Items[0].ToLocation)

	dist := decode[dto.LocationDistributionResponse](t, do(t, app, http.MethodGet, "/api/dashboard/locations", nil))
	assert.Equal(t, []string{"STORE_N", "WAREHOUSE"}, dist.LocationLabels)
	assert.Equal(t, []int{20, 30}, dist.LocationData)

	expectError(t, do(t, app, http.MethodGet, "/api/locations/STORE_N/movements?role=owner", nil), fiber.StatusBadRequest, "VALIDATION")
}

func TestBusquedaDeProductos(t *testing.T) {
	app := buildTestApp(t)
	for _, id := range []string{"LAPTOP", "SMARTPHONE", "TABLET"} {
		do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: id})
	}
	expectError(t, do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "LAPTOP"}), fiber.StatusConflict, "CONFLICT")

	out := decode[dto.ProductListResponse](t, do(t, app, http.MethodGet, "/api/products?q=P", nil))
	assert.Equal(t, []dto.ProductResponse{{ProductID: "LAPTOP"}, {ProductID: "SMARTPHONE"}}, out.Items)
}

func TestDashboardSummary(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	sum := decode[dto.DashboardSummaryDTO](t, do(t, app, http.MethodGet, "/api/dashboard/summary", nil))
	assert.Equal(t, 1, sum.ProductCount)
	assert.Equal(t, 2, sum.LocationCount)
	assert.Equal(t, 2, sum.MovementCount)
	assert.Zero(t, sum.LowStockCount)
	assert.Equal(t, []int{50}, sum.StockLevels)
	require.Len(t, sum.RecentMovements, 2)
	assert.Equal(t, int64(2), sum.RecentMovements[0].MovementID)
}

func TestExportaciones(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	resp := do(t, app, http.MethodGet, "/api/report/balance.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = do(t, app, http.MethodGet, "/api/report/balance.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "balance_report.xlsx")
}

func TestIdentificadoresCodificadosEnLaRuta(t *testing.T) {
	app := buildTestApp(t)
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{ProductID: "STORE NORTH"}).StatusCode)
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/locations", dto.CreateLocationRequest{LocationID: "BODEGA_ÑUÑOA"}).StatusCode)
	require.Equal(t, fiber.StatusCreated, do(t, app, http.MethodPost, "/api/movements",
		dto.MovementRequest{ProductID: "STORE NORTH", ToLocation: "BODEGA_ÑUÑOA", Qty: 7}).StatusCode)

	p := decode[dto.ProductResponse](t, do(t, app, http.MethodGet, "/api/products/STORE%20NORTH", nil))
	assert.Equal(t, "STORE NORTH", p.ProductID)
	stock := decode[dto.ProductStockResponse](t, do(t, app, http.MethodGet, "/api/products/STORE%20NORTH/stock", nil))
	assert.Equal(t, 7, stock.TotalStock)

	l := decode[dto.LocationResponse](t, do(t, app, http.MethodGet, "/api/locations/BODEGA_%C3%91U%C3%91OA", nil))
	assert.Equal(t, "BODEGA_ÑUÑOA", l.LocationID)
	movs := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/locations/BODEGA_%C3%91U%C3%91OA/movements", nil))
	assert.Equal(t, 1, movs.Total)

	renamed := decode[dto.ProductResponse](t, do(t, app, http.MethodPut, "/api/products/STORE%20NORTH",
		dto.RenameProductRequest{ProductID: "STORE SOUTH"}))
	assert.Equal(t, "STORE SOUTH", renamed.ProductID)
	byProduct := decode[dto.MovementListResponse](t, do(t, app, http.MethodGet, "/api/products/STORE%20SOUTH/movements", nil))
	assert.Equal(t, 1, byProduct.Total)

	// escape inválido: se envía la ruta cruda para que llegue sin normalizar
	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.URL.Opaque = "/api/products/BAD%ZZ"
	resp, err := app.Test(bad, -1)
	require.NoError(t, err)
	expectError(t, resp, fiber.StatusBadRequest, "INVALID_ID")

	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodDelete, "/api/movements/1", nil).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodDelete, "/api/products/STORE%20SOUTH", nil).StatusCode)
	assert.Equal(t, fiber.StatusOK, do(t, app, http.MethodDelete, "/api/locations/BODEGA_%C3%91U%C3%91OA", nil).StatusCode)
}

func TestRecord_CantidadFueraDeRango(t *testing.T) {
	app := buildTestApp(t)
	laptopScenario(t, app)

	expectError(t, do(t, app, http.MethodPost, "/api/movements",
		map[string]any{"product_id": "LAPTOP", "to_location": "WAREHOUSE", "qty": int64(entity.MaxQty) + 1}),
		fiber.StatusBadRequest, "VALIDATION")
}
