package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/bloodbank-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Hospital devuelve el resumen operativo del hospital del token.
// GET /api/dashboard/hospital
//
// Respuesta: HospitalDashboardDTO (stock por grupo, por vencer, citas pendientes,
// solicitudes críticas, fulfillment_rate).
func (h *DashboardHandler) Hospital(c *fiber.Ctx) error {
	summary, err := h.uc.HospitalSummary(c.Context(), GetHospitalID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Platform GET /api/dashboard/platform (super admin).
func (h *DashboardHandler) Platform(c *fiber.Ctx) error {
	summary, err := h.uc.PlatformSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
