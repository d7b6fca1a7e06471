package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
)

// HospitalHandler registro y verificación de hospitales, y su personal.
type HospitalHandler struct {
	uc     *usecase.HospitalUseCase
	userUC *usecase.UserUseCase
}

// NewHospitalHandler construye el handler.
func NewHospitalHandler(uc *usecase.HospitalUseCase, userUC *usecase.UserUseCase) *HospitalHandler {
	return &HospitalHandler{uc: uc, userUC: userUC}
}

// Create godoc
// @Summary      Registrar hospital (queda pending hasta que el super admin lo verifique)
// @Tags         hospitals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHospitalRequest  true  "datos del hospital"
// @Success      201   {object}  dto.HospitalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hospitals [post]
func (h *HospitalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHospitalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.LicenseNumber == "" {
		return validation(c, "name y license_number son requeridos")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/hospitals?status=&limit=&offset=
func (h *HospitalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "parámetros de paginación inválidos")
	}
	out, err := h.uc.List(c.Context(), GetActor(c), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/hospitals/:id
func (h *HospitalHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/hospitals/:id (administrador del hospital o super admin).
func (h *HospitalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateHospitalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Verificar o suspender un hospital
// @Tags         hospitals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID del hospital"
// @Param        body  body  dto.UpdateHospitalStatusRequest  true  "pending | verified | suspended"
// @Success      200   {object}  dto.HospitalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/hospitals/{id}/status [patch]
func (h *HospitalHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateHospitalStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Personal ──────────────────────────────────────────────────────────────────

// CreateStaff POST /api/staff
func (h *HospitalHandler) CreateStaff(c *fiber.Ctx) error {
	var in dto.CreateStaffRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || len(in.Password) < 8 || in.FullName == "" {
		return validation(c, "email, full_name y password (mínimo 8) son requeridos")
	}
	out, err := h.userUC.CreateStaff(c.Context(), GetHospitalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStaff GET /api/staff
func (h *HospitalHandler) ListStaff(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "parámetros de paginación inválidos")
	}
	out, err := h.userUC.ListStaff(c.Context(), GetHospitalID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// SetStaffStatus PATCH /api/staff/:id/status
func (h *HospitalHandler) SetStaffStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.userUC.SetStatus(c.Context(), GetHospitalID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
