// Package requests contiene los casos de uso de solicitudes de sangre:
// alta, listado por urgencia, vista previa de disponibilidad, asignación y cambios manuales.
package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/pkg/logger"
	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

// Config opciones de comportamiento de la asignación.
type Config struct {
	// ReserveUnits marca como reserved las unidades asignadas en la misma transacción.
	ReserveUnits bool
}

// RequestUseCase casos de uso sobre BloodRequest.
type RequestUseCase struct {
	requestRepo   repository.BloodRequestRepository
	inventoryRepo repository.InventoryRepository
	recipientRepo repository.RecipientRepository
	hospitalRepo  repository.HospitalRepository
	txRunner      TxRunner
	recorder      AllocationRecorder
	cfg           Config
	log           *logger.Logger
	now           func() time.Time
}

// NewRequestUseCase construye el caso de uso. recorder y log pueden ser nil.
func NewRequestUseCase(
	requestRepo repository.BloodRequestRepository,
	inventoryRepo repository.InventoryRepository,
	recipientRepo repository.RecipientRepository,
	hospitalRepo repository.HospitalRepository,
	txRunner TxRunner,
	recorder AllocationRecorder,
	cfg Config,
	log *logger.Logger,
) *RequestUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RequestUseCase{
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		recipientRepo: recipientRepo,
		hospitalRepo:  hospitalRepo,
		txRunner:      txRunner,
		recorder:      recorder,
		cfg:           cfg,
		log:           log.Named("requests"),
		now:           time.Now,
	}
}

// Create registra una solicitud en estado pending.
// Un receptor la crea para sí mismo indicando el hospital; el personal la crea en su hospital
// con o sin receptor registrado.
func (uc *RequestUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	bt, err := entity.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, err
	}
	urgency := entity.Urgency(in.Urgency)
	if in.UnitsNeeded < 1 || !urgency.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var hospitalID, recipientID string
	switch {
	case actor.Role == entity.RoleRecipient:
		profile, err := uc.recipientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, domain.ErrNotFound
		}
		if in.HospitalID == "" {
			return nil, domain.ErrInvalidInput
		}
		hospitalID, recipientID = in.HospitalID, profile.ID
	case actor.IsHospitalStaff():
		if actor.HospitalID == "" {
			return nil, domain.ErrForbidden
		}
		hospitalID = actor.HospitalID
		if in.RecipientID != "" {
			r, err := uc.recipientRepo.GetByID(ctx, in.RecipientID)
			if err != nil {
				return nil, err
			}
			if r == nil {
				return nil, domain.ErrNotFound
			}
			recipientID = r.ID
		}
	default:
		return nil, domain.ErrForbidden
	}

	h, err := uc.hospitalRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, domain.ErrNotFound
	}
	if h.Status != entity.HospitalStatusVerified {
		return nil, domain.ErrHospitalNotActive
	}

	now := uc.now()
	neededBy := now
	if in.NeededBy != nil {
		neededBy = *in.NeededBy
	}
	req := &entity.BloodRequest{
		ID:             uuid.New().String(),
		RecipientID:    recipientID,
		HospitalID:     hospitalID,
		BloodType:      bt,
		UnitsNeeded:    in.UnitsNeeded,
		Urgency:        urgency,
		Status:         entity.RequestStatusPending,
		MatchedUnitIDs: []string{},
		DoctorName:     in.DoctorName,
		DoctorContact:  in.DoctorContact,
		MedicalReason:  in.MedicalReason,
		NeededBy:       neededBy,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("request_id", req.ID).
		Str("hospital_id", hospitalID).
		Str("blood_type", bt.String()).
		Int("units_needed", req.UnitsNeeded).
		Str("urgency", string(urgency)).
		Msg("solicitud creada")
	return ToRequestResponse(req), nil
}

// List devuelve solicitudes ordenadas por urgencia (critical primero).
// El alcance depende del rol: personal ve su hospital, receptor sus propias solicitudes.
func (uc *RequestUseCase) List(ctx context.Context, actor dto.Actor, q dto.RequestListQuery) (*dto.BloodRequestListResponse, error) {
	q.DefaultPage()
	f := repository.RequestFilter{
		Search: textnorm.Fold(q.Search),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.BloodType != "" {
		bt, err := entity.ParseBloodType(q.BloodType)
		if err != nil {
			return nil, err
		}
		f.BloodType = bt
	}
	if q.Urgency != "" {
		f.Urgency = entity.Urgency(q.Urgency)
		if !f.Urgency.Valid() {
			return nil, domain.ErrInvalidInput
		}
	}
	if q.Status != "" {
		f.Status = entity.RequestStatus(q.Status)
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
	case actor.Role == entity.RoleRecipient:
		profile, err := uc.recipientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return &dto.BloodRequestListResponse{Items: []dto.BloodRequestResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}, nil
		}
		f.RecipientID = profile.ID
	default:
		return nil, domain.ErrForbidden
	}

	list, err := uc.requestRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BloodRequestResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *ToRequestResponse(r))
	}
	page, err := q.PageRequest.Response(len(items), func() (int, error) { return uc.requestRepo.Count(ctx, f) })
	if err != nil {
		return nil, err
	}
	return &dto.BloodRequestListResponse{Items: items, Page: page}, nil
}

// Get devuelve una solicitud visible para el actor.
func (uc *RequestUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.BloodRequestResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.canView(ctx, actor, req); err != nil {
		return nil, err
	}
	return ToRequestResponse(req), nil
}

func (uc *RequestUseCase) canView(ctx context.Context, actor dto.Actor, req *entity.BloodRequest) error {
	switch {
	case actor.IsSuperAdmin():
		return nil
	case actor.IsHospitalStaff():
		if req.HospitalID == actor.HospitalID {
			return nil
		}
	case actor.Role == entity.RoleRecipient:
		profile, err := uc.recipientRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if profile != nil && profile.ID == req.RecipientID {
			return nil
		}
	}
	return domain.ErrForbidden
}

// ToRequestResponse convierte la entidad a DTO.
func ToRequestResponse(r *entity.BloodRequest) *dto.BloodRequestResponse {
	if r == nil {
		return nil
	}
	matched := r.MatchedUnitIDs
	if matched == nil {
		matched = []string{}
	}
	return &dto.BloodRequestResponse{
		ID:              r.ID,
		RecipientID:     r.RecipientID,
		HospitalID:      r.HospitalID,
		BloodType:       r.BloodType.String(),
		UnitsNeeded:     r.UnitsNeeded,
		Urgency:         string(r.Urgency),
		Status:          string(r.Status),
		MatchedUnitIDs:  matched,
		DoctorName:      r.DoctorName,
		DoctorContact:   r.DoctorContact,
		MedicalReason:   r.MedicalReason,
		NeededBy:        r.NeededBy,
		AssignedStaffID: r.AssignedStaffID,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
