package entity

// Location representa una ubicación de almacenamiento (bodega, tienda, centro de distribución).
type Location struct {
	LocationID string
}
