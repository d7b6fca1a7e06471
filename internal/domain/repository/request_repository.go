package repository

import (
	"context"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// BloodRequestRepository define el puerto de persistencia para solicitudes de sangre.
type BloodRequestRepository interface {
	Create(ctx context.Context, r *entity.BloodRequest) error
	GetByID(ctx context.Context, id string) (*entity.BloodRequest, error)
	// GetByIDForUpdate bloquea la fila de la solicitud dentro de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.BloodRequest, error)
	// Update persiste status, matched_unit_ids, assigned_staff_id y notes.
	Update(ctx context.Context, r *entity.BloodRequest) error
	// List ordena por urgencia (critical primero) y luego por fecha de creación.
	List(ctx context.Context, f RequestFilter) ([]*entity.BloodRequest, error)
	Count(ctx context.Context, f RequestFilter) (int, error)
}
