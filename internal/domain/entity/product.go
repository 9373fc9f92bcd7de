package entity

// Product representa un producto del inventario. Solo tiene su identificador;
// el stock se deriva siempre del libro de movimientos.
type Product struct {
	ProductID string
}
