package repository

import (
	"context"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// HospitalRepository define el puerto de persistencia para Hospital.
type HospitalRepository interface {
	Create(ctx context.Context, h *entity.Hospital) error
	GetByID(ctx context.Context, id string) (*entity.Hospital, error)
	Update(ctx context.Context, h *entity.Hospital) error
	UpdateStatus(ctx context.Context, id string, status entity.HospitalStatus) error
	// List filtra por estado si status no es vacío.
	List(ctx context.Context, status entity.HospitalStatus, limit, offset int) ([]*entity.Hospital, error)
	Count(ctx context.Context, status entity.HospitalStatus) (int, error)
	CountByStatus(ctx context.Context) (map[entity.HospitalStatus]int, error)
}
