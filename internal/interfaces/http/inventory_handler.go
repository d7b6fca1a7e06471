package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/inventory"
)

// InventoryHandler unidades de sangre del hospital del token (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AddUnit godoc
// @Summary      Registrar unidad de sangre
// @Description  Sin expiry_date la unidad vence 42 días después de collection_date.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddUnitRequest  true  "blood_type, quantity_units, batch_number, collection_date"
// @Success      201   {object}  dto.InventoryUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) AddUnit(c *fiber.Ctx) error {
	var in dto.AddUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddUnit(c.Context(), GetHospitalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        blood_type  query  string  false  "O-, O+, A-, A+, B-, B+, AB-, AB+"
// @Param        status      query  string  false  "available | reserved | used | expired | discarded"
// @Param        search      query  string  false  "lote, ubicación o notas"
// @Param        limit       query  int     false  "máximo 100"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryListQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), GetHospitalID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/inventory/:id
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetHospitalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/inventory/:id/status
func (h *InventoryHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUnitStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetHospitalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/inventory/:id
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetHospitalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "unidad eliminada"})
}

// Summary GET /api/inventory/summary
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetHospitalID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExpireOverdue POST /api/inventory/expire
func (h *InventoryHandler) ExpireOverdue(c *fiber.Ctx) error {
	out, err := h.uc.ExpireOverdue(c.Context(), GetHospitalID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
