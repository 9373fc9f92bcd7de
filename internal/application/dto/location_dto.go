package dto

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,max=50"`
}

// RenameLocationRequest entrada para renombrar una ubicación.
type RenameLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,max=50"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	LocationID string `json:"location_id"`
}

// LocationListResponse listado completo de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Total int                `json:"total"`
}
