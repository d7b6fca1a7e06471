package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// DonorRepository define el puerto de persistencia para perfiles de donante.
type DonorRepository interface {
	Create(ctx context.Context, d *entity.Donor) error
	GetByID(ctx context.Context, id string) (*entity.Donor, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Donor, error)
	Update(ctx context.Context, d *entity.Donor) error
	UpdateLastDonation(ctx context.Context, donorID string, date time.Time) error
	// List incluye Contact; orden por nombre.
	List(ctx context.Context, f ProfileFilter) ([]*entity.Donor, error)
	Count(ctx context.Context, f ProfileFilter) (int, error)
}

// RecipientRepository define el puerto de persistencia para perfiles de receptor.
type RecipientRepository interface {
	Create(ctx context.Context, r *entity.Recipient) error
	GetByID(ctx context.Context, id string) (*entity.Recipient, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Recipient, error)
	Update(ctx context.Context, r *entity.Recipient) error
	List(ctx context.Context, f ProfileFilter) ([]*entity.Recipient, error)
	Count(ctx context.Context, f ProfileFilter) (int, error)
}
