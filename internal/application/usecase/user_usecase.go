package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bloodbank-api/internal/application/auth"
	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

// UserUseCase gestión del personal de un hospital por su administrador.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// CreateStaff da de alta personal (hospital_staff) en el hospital del administrador.
func (uc *UserUseCase) CreateStaff(ctx context.Context, hospitalID string, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	email := textnorm.Email(in.Email)
	if hospitalID == "" {
		return nil, domain.ErrForbidden
	}
	if email == "" || len(in.Password) < 8 || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         entity.RoleHospitalStaff,
		HospitalID:   hospitalID,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// ListStaff lista los usuarios vinculados al hospital.
func (uc *UserUseCase) ListStaff(ctx context.Context, hospitalID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByHospital(ctx, hospitalID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// SetStatus activa o suspende a un miembro del personal del mismo hospital.
func (uc *UserUseCase) SetStatus(ctx context.Context, hospitalID, userID, status string) (*dto.UserResponse, error) {
	switch status {
	case entity.UserStatusActive, entity.UserStatusInactive, entity.UserStatusSuspended:
	default:
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.HospitalID != hospitalID || u.Role != entity.RoleHospitalStaff {
		return nil, domain.ErrForbidden
	}
	u.Status = status
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}
