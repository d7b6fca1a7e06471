package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
)

// AppointmentHandler ciclo de vida de las citas de donación.
type AppointmentHandler struct {
	uc *usecase.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Schedule godoc
// @Summary      Agendar cita de donación
// @Description  El donante debe ser elegible (56 días desde la última donación) y el hospital estar verificado.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "hospital_id, appointment_date"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Schedule(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Schedule(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/appointments?status=&limit=&offset=
// El donante ve sus citas; el personal las de su hospital.
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	var q dto.AppointmentListQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "parámetros inválidos")
	}
	out, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm PATCH /api/appointments/:id/confirm
func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), GetHospitalID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Complete PATCH /api/appointments/:id/complete
// Con quantity_units > 0 registra la unidad colectada en inventario.
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteAppointmentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Complete(c.Context(), GetHospitalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel PATCH /api/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reschedule PATCH /api/appointments/:id/reschedule
func (h *AppointmentHandler) Reschedule(c *fiber.Ctx) error {
	var in dto.RescheduleAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reschedule(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
