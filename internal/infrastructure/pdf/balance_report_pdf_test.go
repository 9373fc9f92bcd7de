package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster/internal/application/dto"
)

func TestGenerateBalanceReportPDF(t *testing.T) {
	report := &dto.BalanceReportResponse{
		GeneratedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Lines: []dto.BalanceLineDTO{
			{ProductID: "LAPTOP", LocationID: "STORE_NORTH", Quantity: 20},
			{ProductID: "LAPTOP", LocationID: "WAREHOUSE", Quantity: 30},
			{ProductID: "MOUSE", LocationID: "WAREHOUSE", Quantity: -2},
		},
	}
	b, err := NewMarotoPDFGenerator("").GenerateBalanceReportPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateBalanceReportPDF_Vacio(t *testing.T) {
	b, err := NewMarotoPDFGenerator("Saldos").GenerateBalanceReportPDF(context.Background(), &dto.BalanceReportResponse{})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestBalanceRows_SubtotalPorProducto(t *testing.T) {
	lines := []dto.BalanceLineDTO{
		{ProductID: "A", LocationID: "X", Quantity: 1},
		{ProductID: "A", LocationID: "Y", Quantity: 2},
		{ProductID: "B", LocationID: "X", Quantity: 3},
	}
	// 3 saldos + 2 subtotales
	assert.Len(t, balanceRows(lines), 5)
	assert.Len(t, balanceRows(nil), 1)
}

func TestGenerateBalanceReportPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoPDFGenerator("").GenerateBalanceReportPDF(ctx, &dto.BalanceReportResponse{})
	require.ErrorIs(t, err, context.Canceled)
}
