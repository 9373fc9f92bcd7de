package dto

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	ProductID string `json:"product_id" validate:"required,max=50"`
}

// RenameProductRequest entrada para renombrar un producto (PUT /api/products/:id).
type RenameProductRequest struct {
	ProductID string `json:"product_id" validate:"required,max=50"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ProductID string `json:"product_id"`
}

// ProductListResponse listado completo de productos (sin paginación).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
	Query string            `json:"query,omitempty"` // término de búsqueda, si hubo
}
