package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores y casos de uso agregan detalle con fmt.Errorf("%w: ...", ErrX);
// la capa HTTP los distingue con errors.Is.
var (
	ErrValidation           = errors.New("entrada inválida")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrConflict             = errors.New("el identificador ya existe")
	ErrReferentialIntegrity = errors.New("el recurso está referenciado por movimientos")

	// ErrStorage marca fallas de infraestructura (driver, red, transacción).
	// No forma parte de la taxonomía de dominio.
	ErrStorage = errors.New("error de almacenamiento")
)

// IsDomainError indica si err pertenece a la taxonomía de dominio (recuperable en el borde).
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrReferentialIntegrity)
}
