package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
)

// RequestHandler solicitudes de sangre y su cruce contra inventario.
type RequestHandler struct {
	uc *requests.RequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *requests.RequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de sangre
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBloodRequestRequest  true  "blood_type, units_needed, urgency"
// @Success      201   {object}  dto.BloodRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBloodRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/requests (ordenado por urgencia, critical primero).
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var q dto.RequestListQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/requests/:id
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Preview GET /api/requests/:id/availability
// Evalúa la asignación contra el inventario actual sin persistir nada.
func (h *RequestHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.Preview(c.Context(), GetHospitalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Match godoc
// @Summary      Asignar inventario a la solicitud
// @Description  Ejecuta el cruce (FEFO) dentro de una transacción y persiste fulfilled, partially_fulfilled o unavailable.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/match [post]
func (h *RequestHandler) Match(c *fiber.Ctx) error {
	out, err := h.uc.Match(c.Context(), GetHospitalID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus PATCH /api/requests/:id/status (assigned | unavailable | cancelled).
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetHospitalID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Compatibility godoc
// @Summary      Tabla de compatibilidad de grupos sanguíneos
// @Description  Con blood_type devuelve de quién puede recibir y a quién puede donar; sin él, la tabla completa.
// @Tags         blood-types
// @Produce      json
// @Param        blood_type  query  string  false  "ej. AB-"
// @Success      200  {object}  dto.CompatibilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/blood-types/compatibility [get]
func (h *RequestHandler) Compatibility(c *fiber.Ctx) error {
	raw := c.Query("blood_type")
	if raw == "" {
		return c.JSON(requests.CompatibilityTable())
	}
	out, err := requests.Compatibility(raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
