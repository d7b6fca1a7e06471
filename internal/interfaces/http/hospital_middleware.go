package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
)

// hospitalChecker es el contrato mínimo que necesita el middleware.
// Lo implementa *usecase.HospitalAccessService.
type hospitalChecker interface {
	IsHospitalVerified(ctx context.Context, hospitalID string) (bool, error)
}

// RequireVerifiedHospital verifica que el hospital del token esté verificado.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalHospitalID).
//
// Comportamiento:
//   - 403 HOSPITAL_REQUIRED → el usuario no pertenece a un hospital.
//   - 403 HOSPITAL_NOT_VERIFIED → hospital pendiente o suspendido.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireVerifiedHospital(checker hospitalChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hospitalID := GetHospitalID(c)
		if hospitalID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "HOSPITAL_REQUIRED",
				Message: "el usuario no está asociado a un hospital",
			})
		}

		ok, err := checker.IsHospitalVerified(c.Context(), hospitalID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "HOSPITAL_CHECK_FAILED",
				Message: "no se pudo verificar el hospital, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "HOSPITAL_NOT_VERIFIED",
				Message: "el hospital no está verificado",
			})
		}
		return c.Next()
	}
}
