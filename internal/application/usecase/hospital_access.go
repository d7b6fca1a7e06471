package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

// HospitalAccessService verifica si un hospital está habilitado para operar
// (inventario, solicitudes, citas). Solo los hospitales verificados operan.
type HospitalAccessService struct {
	hospitalRepo repository.HospitalRepository
}

// NewHospitalAccessService construye el servicio.
func NewHospitalAccessService(hospitalRepo repository.HospitalRepository) *HospitalAccessService {
	return &HospitalAccessService{hospitalRepo: hospitalRepo}
}

// IsHospitalVerified informa si el hospital existe y está verificado.
// Devuelve false (sin error) si no existe o está pendiente/suspendido.
// Devuelve error solo ante fallos de infraestructura.
func (s *HospitalAccessService) IsHospitalVerified(ctx context.Context, hospitalID string) (bool, error) {
	if hospitalID == "" {
		return false, fmt.Errorf("hospital access: hospitalID es obligatorio")
	}
	h, err := s.hospitalRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return false, err
	}
	return h != nil && h.Status == entity.HospitalStatusVerified, nil
}
