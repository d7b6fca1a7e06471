package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para unidades de sangre.
// Acepta pool o tx en la implementación, igual que el resto de adaptadores.
type InventoryRepository interface {
	Create(ctx context.Context, u *entity.InventoryUnit) error
	GetByID(ctx context.Context, id string) (*entity.InventoryUnit, error)
	UpdateStatus(ctx context.Context, id string, status entity.UnitStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f InventoryFilter) ([]*entity.InventoryUnit, error)
	// Count total sin paginar para el mismo filtro.
	Count(ctx context.Context, f InventoryFilter) (int, error)

	// ListAvailable devuelve las unidades disponibles del hospital ordenadas por vencimiento (FEFO).
	ListAvailable(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error)
	// ListAvailableForUpdate igual que ListAvailable pero bloquea las filas (SELECT FOR UPDATE).
	ListAvailableForUpdate(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error)
	// ReserveUnits pasa a reserved, a nombre de requestID, solo las unidades que siguen available.
	// Devuelve filas afectadas.
	ReserveUnits(ctx context.Context, requestID string, ids []string) (int64, error)
	// ReleaseUnits devuelve a available solo las unidades que siguen reserved para requestID.
	// Las que pasaron a used, expired, discarded o a otra solicitud no se tocan.
	ReleaseUnits(ctx context.Context, requestID string, ids []string) (int64, error)
	// ExpireOverdue marca como expired las unidades available/reserved vencidas antes de now.
	ExpireOverdue(ctx context.Context, hospitalID string, now time.Time) (int64, error)
}
