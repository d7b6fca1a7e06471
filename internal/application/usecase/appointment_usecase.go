package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

// AppointmentUseCase ciclo de vida de las citas de donación:
// scheduled -> confirmed -> completed, más cancelled y rescheduled.
type AppointmentUseCase struct {
	repo          repository.AppointmentRepository
	donorRepo     repository.DonorRepository
	hospitalRepo  repository.HospitalRepository
	inventoryRepo repository.InventoryRepository
	now           func() time.Time
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(
	repo repository.AppointmentRepository,
	donorRepo repository.DonorRepository,
	hospitalRepo repository.HospitalRepository,
	inventoryRepo repository.InventoryRepository,
) *AppointmentUseCase {
	return &AppointmentUseCase{
		repo:          repo,
		donorRepo:     donorRepo,
		hospitalRepo:  hospitalRepo,
		inventoryRepo: inventoryRepo,
		now:           time.Now,
	}
}

// Schedule el donante agenda una cita: fecha futura, hospital verificado y
// al menos 56 días desde su última donación a la fecha de la cita.
func (uc *AppointmentUseCase) Schedule(ctx context.Context, donorUserID string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := uc.now()
	if in.HospitalID == "" || !in.AppointmentDate.After(now) {
		return nil, domain.ErrInvalidInput
	}
	donor, err := uc.donorRepo.GetByUserID(ctx, donorUserID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}
	h, err := uc.hospitalRepo.GetByID(ctx, in.HospitalID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	if h.Status != entity.HospitalStatusVerified {
		return nil, domain.ErrHospitalNotActive
	}
	if !donor.CanDonateAt(in.AppointmentDate) {
		return nil, domain.ErrNotEligible
	}

	a := &entity.Appointment{
		ID:              uuid.New().String(),
		DonorID:         donor.ID,
		HospitalID:      h.ID,
		AppointmentDate: in.AppointmentDate,
		Status:          entity.AppointmentScheduled,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// List citas visibles para el actor: el donante ve las suyas, el personal las de su hospital.
func (uc *AppointmentUseCase) List(ctx context.Context, actor dto.Actor, q dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	q.DefaultPage()
	f := repository.AppointmentFilter{Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		f.Status = entity.AppointmentStatus(q.Status)
		if !f.Status.Valid() {
			return nil, domain.ErrInvalidInput
		}
	}
	switch {
	case actor.IsSuperAdmin():
	case actor.IsHospitalStaff():
		if actor.HospitalID == "" {
			return nil, domain.ErrForbidden
		}
		f.HospitalID = actor.HospitalID
	case actor.Role == entity.RoleDonor:
		donor, err := uc.donorRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if donor == nil {
			return &dto.AppointmentListResponse{Items: []dto.AppointmentResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
		}
		f.DonorID = donor.ID
	default:
		return nil, domain.ErrForbidden
	}

	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAppointmentResponse(a))
	}
	page, err := q.PageRequest.Response(len(items), func() (int, error) { return uc.repo.Count(ctx, f) })
	if err != nil {
		return nil, err
	}
	return &dto.AppointmentListResponse{Items: items, Page: page}, nil
}

// Confirm el personal confirma una cita scheduled o rescheduled.
func (uc *AppointmentUseCase) Confirm(ctx context.Context, hospitalID, staffID, id string) (*dto.AppointmentResponse, error) {
	a, err := uc.forHospital(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(entity.AppointmentConfirmed) {
		return nil, domain.ErrInvalidTransition
	}
	now := uc.now()
	a.Status = entity.AppointmentConfirmed
	a.ConfirmedBy = staffID
	a.ConfirmedAt = &now
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// Complete cierra una cita confirmada: actualiza la última donación del donante y,
// si se indican unidades, registra la donación en el inventario del hospital.
func (uc *AppointmentUseCase) Complete(ctx context.Context, hospitalID, id string, in dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, err := uc.forHospital(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(entity.AppointmentCompleted) {
		return nil, domain.ErrInvalidTransition
	}
	if in.QuantityUnits < 0 {
		return nil, domain.ErrInvalidInput
	}
	donor, err := uc.donorRepo.GetByID(ctx, a.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	a.Status = entity.AppointmentCompleted
	if in.Notes != "" {
		a.Notes = in.Notes
	}
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if err := uc.donorRepo.UpdateLastDonation(ctx, donor.ID, now); err != nil {
		return nil, err
	}
	if in.QuantityUnits > 0 {
		batch := in.BatchNumber
		if batch == "" {
			batch = "APT-" + shortID(a.ID)
		}
		unit := &entity.InventoryUnit{
			ID:              uuid.New().String(),
			HospitalID:      hospitalID,
			DonorID:         donor.ID,
			BloodType:       donor.BloodType,
			QuantityUnits:   in.QuantityUnits,
			BatchNumber:     batch,
			StorageLocation: in.StorageLocation,
			CollectionDate:  now,
			ExpiryDate:      now.AddDate(0, 0, entity.ShelfLifeDays),
			Status:          entity.UnitStatusAvailable,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.inventoryRepo.Create(ctx, unit); err != nil {
			return nil, err
		}
	}
	return toAppointmentResponse(a), nil
}

// Cancel cancela una cita no cerrada. Puede hacerlo el donante dueño o el personal del hospital.
func (uc *AppointmentUseCase) Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.AppointmentResponse, error) {
	a, err := uc.forActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(entity.AppointmentCancelled) {
		return nil, domain.ErrInvalidTransition
	}
	a.Status = entity.AppointmentCancelled
	a.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// Reschedule mueve una cita no cerrada a una nueva fecha futura; queda pendiente de confirmar.
func (uc *AppointmentUseCase) Reschedule(ctx context.Context, actor dto.Actor, id string, in dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	now := uc.now()
	if !in.AppointmentDate.After(now) {
		return nil, domain.ErrInvalidInput
	}
	a, err := uc.forActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(entity.AppointmentRescheduled) {
		return nil, domain.ErrInvalidTransition
	}
	donor, err := uc.donorRepo.GetByID(ctx, a.DonorID)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		return nil, domain.ErrNotFound
	}
	if !donor.CanDonateAt(in.AppointmentDate) {
		return nil, domain.ErrNotEligible
	}
	a.Status = entity.AppointmentRescheduled
	a.AppointmentDate = in.AppointmentDate
	a.ConfirmedBy = ""
	a.ConfirmedAt = nil
	if in.Notes != "" {
		a.Notes = in.Notes
	}
	a.UpdatedAt = now
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

func (uc *AppointmentUseCase) forHospital(ctx context.Context, hospitalID, id string) (*entity.Appointment, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.HospitalID != hospitalID {
		return nil, domain.ErrForbidden
	}
	return a, nil
}

func (uc *AppointmentUseCase) forActor(ctx context.Context, actor dto.Actor, id string) (*entity.Appointment, error) {
	if actor.IsHospitalStaff() {
		return uc.forHospital(ctx, actor.HospitalID, id)
	}
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleDonor {
		return nil, domain.ErrForbidden
	}
	donor, err := uc.donorRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if donor == nil || donor.ID != a.DonorID {
		return nil, domain.ErrForbidden
	}
	return a, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:              a.ID,
		DonorID:         a.DonorID,
		HospitalID:      a.HospitalID,
		AppointmentDate: a.AppointmentDate,
		Status:          string(a.Status),
		ConfirmedBy:     a.ConfirmedBy,
		ConfirmedAt:     a.ConfirmedAt,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
