package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/stockmaster/internal/domain"
)

// MaxIDLength longitud máxima de product_id / location_id (VARCHAR(50)).
const MaxIDLength = 50

// NormalizeID recorta espacios y valida un identificador elegido por el usuario.
// kind se usa solo para el mensaje de error ("product_id", "location_id", ...).
func NormalizeID(kind, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: %s es requerido", domain.ErrValidation, kind)
	}
	if utf8.RuneCountInString(id) > MaxIDLength {
		return "", fmt.Errorf("%w: %s excede %d caracteres", domain.ErrValidation, kind, MaxIDLength)
	}
	return id, nil
}
