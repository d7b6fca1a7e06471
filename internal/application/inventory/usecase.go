// Package inventory contiene los casos de uso del inventario de sangre de un hospital.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/pkg/logger"
	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

// ExpiryRecorder registra cuántas unidades vence cada barrido.
type ExpiryRecorder interface {
	RecordExpired(n int64)
}

type nopExpiryRecorder struct{}

func (nopExpiryRecorder) RecordExpired(int64) {}

// InventoryUseCase alta, cambios de estado, listado y resumen de unidades de sangre.
type InventoryUseCase struct {
	repo             repository.InventoryRepository
	donorRepo        repository.DonorRepository
	expiringSoonDays int
	recorder         ExpiryRecorder
	log              *logger.Logger
	now              func() time.Time
}

// NewInventoryUseCase construye el caso de uso. expiringSoonDays <= 0 usa 7.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	donorRepo repository.DonorRepository,
	expiringSoonDays int,
	recorder ExpiryRecorder,
	log *logger.Logger,
) *InventoryUseCase {
	if expiringSoonDays <= 0 {
		expiringSoonDays = 7
	}
	if recorder == nil {
		recorder = nopExpiryRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{
		repo:             repo,
		donorRepo:        donorRepo,
		expiringSoonDays: expiringSoonDays,
		recorder:         recorder,
		log:              log.Named("inventory"),
		now:              time.Now,
	}
}

// AddUnit registra una unidad disponible. Sin expiry_date vence a los 42 días de la colecta.
func (uc *InventoryUseCase) AddUnit(ctx context.Context, hospitalID string, in dto.AddUnitRequest) (*dto.InventoryUnitResponse, error) {
	bt, err := entity.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if in.QuantityUnits < 1 || in.BatchNumber == "" || in.CollectionDate.IsZero() || in.CollectionDate.After(now) {
		return nil, domain.ErrInvalidInput
	}
	expiry := in.CollectionDate.AddDate(0, 0, entity.ShelfLifeDays)
	if in.ExpiryDate != nil {
		if !in.ExpiryDate.After(in.CollectionDate) {
			return nil, domain.ErrInvalidInput
		}
		expiry = *in.ExpiryDate
	}
	if in.DonorID != "" {
		d, err := uc.donorRepo.GetByID(ctx, in.DonorID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.ErrNotFound
		}
		if d.BloodType != bt {
			return nil, domain.ErrInvalidInput
		}
	}

	u := &entity.InventoryUnit{
		ID:              uuid.New().String(),
		HospitalID:      hospitalID,
		DonorID:         in.DonorID,
		BloodType:       bt,
		QuantityUnits:   in.QuantityUnits,
		BatchNumber:     in.BatchNumber,
		StorageLocation: in.StorageLocation,
		CollectionDate:  in.CollectionDate,
		ExpiryDate:      expiry,
		Status:          entity.UnitStatusAvailable,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("unit_id", u.ID).
		Str("hospital_id", hospitalID).
		Str("blood_type", bt.String()).
		Int("quantity_units", u.QuantityUnits).
		Msg("unidad registrada")
	return uc.toResponse(u), nil
}

// UpdateStatus cambio manual de estado. used y discarded son terminales.
func (uc *InventoryUseCase) UpdateStatus(ctx context.Context, hospitalID, unitID string, in dto.UpdateUnitStatusRequest) (*dto.InventoryUnitResponse, error) {
	next := entity.UnitStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.owned(ctx, hospitalID, unitID)
	if err != nil {
		return nil, err
	}
	if u.Status.Terminal() && u.Status != next {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.repo.UpdateStatus(ctx, unitID, next); err != nil {
		return nil, err
	}
	u.Status = next
	u.UpdatedAt = uc.now()
	return uc.toResponse(u), nil
}

// Delete elimina una unidad del hospital. Las reservadas están comprometidas con una solicitud.
func (uc *InventoryUseCase) Delete(ctx context.Context, hospitalID, unitID string) error {
	u, err := uc.owned(ctx, hospitalID, unitID)
	if err != nil {
		return err
	}
	if u.Status == entity.UnitStatusReserved {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, unitID)
}

// Get devuelve una unidad del hospital.
func (uc *InventoryUseCase) Get(ctx context.Context, hospitalID, unitID string) (*dto.InventoryUnitResponse, error) {
	u, err := uc.owned(ctx, hospitalID, unitID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(u), nil
}

// List listado filtrado, ordenado por vencimiento.
func (uc *InventoryUseCase) List(ctx context.Context, hospitalID string, q dto.InventoryListQuery) (*dto.InventoryListResponse, error) {
	q.DefaultPage()
	f := repository.InventoryFilter{
		HospitalID: hospitalID,
		Search:     textnorm.Fold(q.Search),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if q.BloodType != "" {
		bt, err := entity.ParseBloodType(q.BloodType)
		if err != nil {
			return nil, err
		}
		f.BloodType = bt
	}
	if q.Status != "" {
		f.Status = entity.UnitStatus(q.Status)
		if !f.Status.Valid() {
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryUnitResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *uc.toResponse(u))
	}
	page, err := q.PageRequest.Response(len(items), func() (int, error) { return uc.repo.Count(ctx, f) })
	if err != nil {
		return nil, err
	}
	return &dto.InventoryListResponse{Items: items, Page: page}, nil
}

// Summary unidades disponibles por grupo, total reservado y unidades por vencer.
func (uc *InventoryUseCase) Summary(ctx context.Context, hospitalID string) (*dto.InventorySummaryResponse, error) {
	available, err := uc.repo.List(ctx, repository.InventoryFilter{HospitalID: hospitalID, Status: entity.UnitStatusAvailable})
	if err != nil {
		return nil, fmt.Errorf("summary: disponibles: %w", err)
	}
	reserved, err := uc.repo.List(ctx, repository.InventoryFilter{HospitalID: hospitalID, Status: entity.UnitStatusReserved})
	if err != nil {
		return nil, fmt.Errorf("summary: reservadas: %w", err)
	}

	now := uc.now()
	byType := make(map[entity.BloodType]*dto.BloodTypeSummary, len(entity.AllBloodTypes))
	out := &dto.InventorySummaryResponse{
		HospitalID:   hospitalID,
		ExpiringSoon: []dto.InventoryUnitResponse{},
		ByBloodType:  make([]dto.BloodTypeSummary, 0, len(entity.AllBloodTypes)),
		GeneratedAt:  now,
	}
	for _, bt := range entity.AllBloodTypes {
		out.ByBloodType = append(out.ByBloodType, dto.BloodTypeSummary{BloodType: bt.String()})
	}
	for i := range out.ByBloodType {
		byType[entity.BloodType(out.ByBloodType[i].BloodType)] = &out.ByBloodType[i]
	}

	for _, u := range available {
		out.TotalAvailable += u.QuantityUnits
		if s, ok := byType[u.BloodType]; ok {
			s.Available += u.QuantityUnits
		}
		if d := u.DaysUntilExpiry(now); d >= 0 && d <= uc.expiringSoonDays {
			out.ExpiringSoon = append(out.ExpiringSoon, *uc.toResponse(u))
		}
	}
	for _, u := range reserved {
		out.TotalReserved += u.QuantityUnits
		if s, ok := byType[u.BloodType]; ok {
			s.Reserved += u.QuantityUnits
		}
	}
	sort.SliceStable(out.ExpiringSoon, func(i, j int) bool {
		return out.ExpiringSoon[i].ExpiryDate.Before(out.ExpiringSoon[j].ExpiryDate)
	})
	return out, nil
}

// ExpireOverdue marca como expired las unidades available/reserved ya vencidas.
// hospitalID vacío aplica a todos los hospitales.
func (uc *InventoryUseCase) ExpireOverdue(ctx context.Context, hospitalID string) (*dto.ExpireResponse, error) {
	n, err := uc.repo.ExpireOverdue(ctx, hospitalID, uc.now())
	if err != nil {
		return nil, err
	}
	uc.recorder.RecordExpired(n)
	if n > 0 {
		uc.log.Info().Str("hospital_id", hospitalID).Int64("expired", n).Msg("unidades vencidas")
	}
	return &dto.ExpireResponse{Expired: n}, nil
}

func (uc *InventoryUseCase) owned(ctx context.Context, hospitalID, unitID string) (*entity.InventoryUnit, error) {
	u, err := uc.repo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if u.HospitalID != hospitalID {
		return nil, domain.ErrForbidden
	}
	return u, nil
}

func (uc *InventoryUseCase) toResponse(u *entity.InventoryUnit) *dto.InventoryUnitResponse {
	return &dto.InventoryUnitResponse{
		ID:              u.ID,
		HospitalID:      u.HospitalID,
		DonorID:         u.DonorID,
		BloodType:       u.BloodType.String(),
		QuantityUnits:   u.QuantityUnits,
		BatchNumber:     u.BatchNumber,
		StorageLocation: u.StorageLocation,
		CollectionDate:  u.CollectionDate,
		ExpiryDate:      u.ExpiryDate,
		DaysUntilExpiry: u.DaysUntilExpiry(uc.now()),
		Status:          string(u.Status),
		Notes:           u.Notes,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
