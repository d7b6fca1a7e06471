package repository

import (
	"context"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para citas de donación.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	Update(ctx context.Context, a *entity.Appointment) error
	List(ctx context.Context, f AppointmentFilter) ([]*entity.Appointment, error)
	Count(ctx context.Context, f AppointmentFilter) (int, error)
}
