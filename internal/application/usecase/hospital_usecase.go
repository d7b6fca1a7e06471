package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

// HospitalUseCase registro, edición y verificación de hospitales.
type HospitalUseCase struct {
	repo     repository.HospitalRepository
	userRepo repository.UserRepository
}

// NewHospitalUseCase construye el caso de uso.
func NewHospitalUseCase(repo repository.HospitalRepository, userRepo repository.UserRepository) *HospitalUseCase {
	return &HospitalUseCase{repo: repo, userRepo: userRepo}
}

// Create registra el hospital del administrador autenticado en estado pending y lo
// vincula a su cuenta. Un administrador gestiona un solo hospital.
func (uc *HospitalUseCase) Create(ctx context.Context, adminUserID string, in dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	if in.Name == "" || in.LicenseNumber == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	admin, err := uc.userRepo.GetByID(ctx, adminUserID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}
	if admin.Role != entity.RoleHospitalAdmin {
		return nil, domain.ErrForbidden
	}
	if admin.HospitalID != "" {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	services := in.Services
	if services == nil {
		services = []string{}
	}
	h := &entity.Hospital{
		ID:            uuid.New().String(),
		Name:          textnorm.Title(in.Name),
		LicenseNumber: in.LicenseNumber,
		Address:       in.Address,
		City:          textnorm.Title(in.City),
		State:         in.State,
		PostalCode:    in.PostalCode,
		Phone:         in.Phone,
		Email:         textnorm.Email(in.Email),
		Website:       in.Website,
		Services:      services,
		Status:        entity.HospitalStatusPending,
		AdminUserID:   admin.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	admin.HospitalID = h.ID
	admin.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return toHospitalResponse(h), nil
}

// GetByID obtiene un hospital por ID.
func (uc *HospitalUseCase) GetByID(ctx context.Context, id string) (*dto.HospitalResponse, error) {
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	return toHospitalResponse(h), nil
}

// List lista hospitales. Los no administradores solo ven hospitales verificados.
func (uc *HospitalUseCase) List(ctx context.Context, actor dto.Actor, status string, page dto.PageRequest) (*dto.HospitalListResponse, error) {
	page.DefaultPage()
	st := entity.HospitalStatus(status)
	if status != "" && !st.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !actor.IsSuperAdmin() {
		st = entity.HospitalStatusVerified
	}
	list, err := uc.repo.List(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HospitalResponse, 0, len(list))
	for _, h := range list {
		items = append(items, *toHospitalResponse(h))
	}
	meta, err := page.Response(len(items), func() (int, error) { return uc.repo.Count(ctx, st) })
	if err != nil {
		return nil, err
	}
	return &dto.HospitalListResponse{Items: items, Page: meta}, nil
}

// Update edita los datos del hospital. Solo su administrador.
func (uc *HospitalUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleHospitalAdmin || actor.HospitalID != h.ID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		h.Name = textnorm.Title(*in.Name)
	}
	if in.Address != nil {
		h.Address = *in.Address
	}
	if in.City != nil {
		h.City = textnorm.Title(*in.City)
	}
	if in.State != nil {
		h.State = *in.State
	}
	if in.Phone != nil {
		h.Phone = *in.Phone
	}
	if in.Email != nil {
		h.Email = textnorm.Email(*in.Email)
	}
	if in.Website != nil {
		h.Website = *in.Website
	}
	if in.Services != nil {
		h.Services = in.Services
	}
	h.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return toHospitalResponse(h), nil
}

// UpdateStatus verificación o suspensión por el super admin.
func (uc *HospitalUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateHospitalStatusRequest) (*dto.HospitalResponse, error) {
	st := entity.HospitalStatus(in.Status)
	if !st.Valid() {
		return nil, domain.ErrInvalidInput
	}
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.UpdateStatus(ctx, id, st); err != nil {
		return nil, err
	}
	h.Status = st
	h.UpdatedAt = time.Now()
	return toHospitalResponse(h), nil
}

func toHospitalResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}
	services := h.Services
	if services == nil {
		services = []string{}
	}
	return &dto.HospitalResponse{
		ID:            h.ID,
		Name:          h.Name,
		LicenseNumber: h.LicenseNumber,
		Address:       h.Address,
		City:          h.City,
		State:         h.State,
		PostalCode:    h.PostalCode,
		Phone:         h.Phone,
		Email:         h.Email,
		Website:       h.Website,
		Services:      services,
		Status:        string(h.Status),
		AdminUserID:   h.AdminUserID,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}
