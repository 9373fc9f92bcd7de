package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/stockmaster/internal/domain"
)

// Dirección de un movimiento, derivada de qué ubicaciones están presentes.
const (
	MovementKindInbound  = "INBOUND"  // solo destino: recepción
	MovementKindOutbound = "OUTBOUND" // solo origen: despacho
	MovementKindTransfer = "TRANSFER" // origen y destino: traslado
)

// MaxQty cantidad máxima de un movimiento (columna INTEGER).
const MaxQty = math.MaxInt32

// Movement es una transacción direccional de stock. La cantidad siempre es positiva;
// la dirección la determinan FromLocation / ToLocation ("" = ausente).
type Movement struct {
	MovementID   int64
	Timestamp    time.Time
	ProductID    string
	FromLocation string
	ToLocation   string
	Qty          int
}

// Kind devuelve INBOUND, OUTBOUND o TRANSFER. Un movimiento sin ubicaciones no es válido
// y devuelve "".
func (m *Movement) Kind() string {
	switch {
	case m.FromLocation != "" && m.ToLocation != "":
		return MovementKindTransfer
	case m.ToLocation != "":
		return MovementKindInbound
	case m.FromLocation != "":
		return MovementKindOutbound
	}
	return ""
}

// References indica si el movimiento usa locationID como origen o destino.
func (m *Movement) References(locationID string) bool {
	return m.FromLocation == locationID || m.ToLocation == locationID
}

// Validate aplica las reglas de forma del movimiento (sin consultar el almacenamiento).
func (m *Movement) Validate() error {
	if m.ProductID == "" {
		return fmt.Errorf("%w: product_id es requerido", domain.ErrValidation)
	}
	if m.Qty <= 0 {
		return fmt.Errorf("%w: qty debe ser mayor que cero", domain.ErrValidation)
	}
	if m.Qty > MaxQty {
		return fmt.Errorf("%w: qty excede %d", domain.ErrValidation, MaxQty)
	}
	if m.FromLocation == "" && m.ToLocation == "" {
		return fmt.Errorf("%w: se requiere ubicación de origen o de destino", domain.ErrValidation)
	}
	if m.FromLocation != "" && m.FromLocation == m.ToLocation {
		return fmt.Errorf("%w: origen y destino no pueden ser la misma ubicación", domain.ErrValidation)
	}
	return nil
}
