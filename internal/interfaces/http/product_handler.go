package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster/internal/application/analytics"
	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	ledger  *ledger.LedgerUseCase
	reports *analytics.ReportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, ledgerUC *ledger.LedgerUseCase, reports *analytics.ReportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, ledger: ledgerUC, reports: reports}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Identificador del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product_id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Description  Sin q devuelve todos; con q filtra por subcadena sin distinguir mayúsculas.
// @Tags         products
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar en product_id"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var (
		out *dto.ProductListResponse
		err error
	)
	if q := c.Query("q"); q != "" {
		out, err = h.uc.Search(c.Context(), q)
	} else {
		out, err = h.uc.List(c.Context())
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar producto
// @Description  Cambia el identificador; los movimientos existentes pasan al nuevo id.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "product_id actual"
// @Param        body  body  dto.RenameProductRequest  true  "Nuevo product_id"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Rename(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	var in dto.RenameProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Rename(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Rechazado con 409 mientras algún movimiento lo referencie.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// Stock godoc
// @Summary      Stock de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product_id"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	out, err := h.reports.ProductStock(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un producto
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product_id"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	list, err := h.ledger.QueryByProduct(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	items := dto.ToMovementResponses(list)
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}
