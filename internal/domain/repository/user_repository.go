package repository

import (
	"context"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByHospital(ctx context.Context, hospitalID string, limit, offset int) ([]*entity.User, error)
	// CountByRole conteo de usuarios por rol (dashboard del super admin).
	CountByRole(ctx context.Context) (map[string]int, error)
}
