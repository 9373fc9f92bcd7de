package dto

import (
	"time"

	"github.com/jhoicas/stockmaster/internal/domain/entity"
)

// MovementRequest body para POST /api/movements y PUT /api/movements/:id.
// from_location / to_location vacíos u omitidos = ausentes; al menos uno es obligatorio.
type MovementRequest struct {
	ProductID    string     `json:"product_id"`
	FromLocation string     `json:"from_location,omitempty"`
	ToLocation   string     `json:"to_location,omitempty"`
	Qty          int        `json:"qty"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

// MovementResponse salida de un movimiento. Las ubicaciones ausentes se serializan como null.
type MovementResponse struct {
	MovementID   int64     `json:"movement_id"`
	Timestamp    time.Time `json:"timestamp"`
	ProductID    string    `json:"product_id"`
	FromLocation *string   `json:"from_location"`
	ToLocation   *string   `json:"to_location"`
	Qty          int       `json:"qty"`
	Kind         string    `json:"kind"` // INBOUND | OUTBOUND | TRANSFER
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// ToMovementResponse convierte la entidad en DTO.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		MovementID:   m.MovementID,
		Timestamp:    m.Timestamp,
		ProductID:    m.ProductID,
		FromLocation: optional(m.FromLocation),
		ToLocation:   optional(m.ToLocation),
		Qty:          m.Qty,
		Kind:         m.Kind(),
	}
}

// ToMovementResponses convierte una lista; nunca devuelve nil (JSON [] en vez de null).
func ToMovementResponses(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
