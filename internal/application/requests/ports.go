package requests

import (
	"context"

	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La asignación lee inventario con bloqueo de fila y escribe solicitud y unidades en el mismo Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.BloodRequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// AllocationRecorder registra métricas de cada intento de asignación.
type AllocationRecorder interface {
	RecordAllocation(outcome matching.Outcome, unitsNeeded, availableQuantity int)
}

type nopRecorder struct{}

func (nopRecorder) RecordAllocation(matching.Outcome, int, int) {}
