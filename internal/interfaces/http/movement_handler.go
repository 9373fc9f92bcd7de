package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// MovementHandler expone el libro de movimientos.
type MovementHandler struct {
	uc *ledger.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

func toInput(in dto.MovementRequest) ledger.MovementInput {
	return ledger.MovementInput{
		ProductID:    in.ProductID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
		Timestamp:    in.Timestamp,
	}
}

// Record godoc
// @Summary      Registrar movimiento
// @Description  Solo to_location = entrada; solo from_location = salida; ambos = traslado.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.uc.Record(c.Context(), toInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Produce      json
// @Param        id   path  int  true  "movement_id"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "movement_id debe ser un entero positivo")
	}
	mov, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Produce      json
// @Param        order_by  query  string  false  "timestamp | id"  default(timestamp)
// @Param        desc      query  bool    false  "Orden descendente"  default(true)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	orderBy := c.Query("order_by", repository.OrderByTimestamp)
	list, err := h.uc.List(c.Context(), orderBy, c.QueryBool("desc", true))
	if err != nil {
		return respondError(c, err)
	}
	items := dto.ToMovementResponses(list)
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}

// Recent godoc
// @Summary      Últimos movimientos
// @Description  Los n movimientos más recientes por movement_id descendente.
// @Tags         movements
// @Produce      json
// @Param        n    query  int  false  "Cantidad (1-100)"  default(5)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/recent [get]
func (h *MovementHandler) Recent(c *fiber.Ctx) error {
	n := c.QueryInt("n", 5)
	if n <= 0 || n > 100 {
		return badRequest(c, "VALIDATION", "n debe estar entre 1 y 100")
	}
	list, err := h.uc.Recent(c.Context(), n)
	if err != nil {
		return respondError(c, err)
	}
	items := dto.ToMovementResponses(list)
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}

// Update godoc
// @Summary      Actualizar movimiento
// @Description  Reemplaza producto, ubicaciones y cantidad. Sin timestamp se conserva el actual.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "movement_id"
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "movement_id debe ser un entero positivo")
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	mov, err := h.uc.Update(c.Context(), id, toInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Tags         movements
// @Produce      json
// @Param        id   path  int  true  "movement_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return badRequest(c, "INVALID_ID", "movement_id debe ser un entero positivo")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}
