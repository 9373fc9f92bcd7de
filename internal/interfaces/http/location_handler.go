package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster/internal/application/dto"
	"github.com/jhoicas/stockmaster/internal/application/ledger"
	"github.com/jhoicas/stockmaster/internal/application/usecase"
	"github.com/jhoicas/stockmaster/internal/domain/repository"
)

// LocationHandler maneja las peticiones HTTP para Location.
type LocationHandler struct {
	uc     *usecase.LocationUseCase
	ledger *ledger.LedgerUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase, ledgerUC *ledger.LedgerUseCase) *LocationHandler {
	return &LocationHandler{uc: uc, ledger: ledgerUC}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Identificador de la ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
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
// @Summary      Obtener ubicación
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "location_id"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "location_id actual"
// @Param        body  body  dto.RenameLocationRequest  true  "Nuevo location_id"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Rename(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	var in dto.RenameLocationRequest
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
// @Summary      Eliminar ubicación
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "location_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ubicación eliminada"})
}

// Movements godoc
// @Summary      Movimientos de una ubicación
// @Tags         locations
// @Produce      json
// @Param        id    path   string  true   "location_id"
// @Param        role  query  string  false  "source | destination | either"  default(either)
// @Success      200   {object}  dto.MovementListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/movements [get]
func (h *LocationHandler) Movements(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return invalidPathID(c)
	}
	role := c.Query("role", repository.RoleEither)
	list, err := h.ledger.QueryByLocation(c.Context(), id, role)
	if err != nil {
		return respondError(c, err)
	}
	items := dto.ToMovementResponses(list)
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}
