package requests

import (
	"context"
	"fmt"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

// Preview ejecuta el asignador sobre el inventario disponible actual sin persistir nada.
func (uc *RequestUseCase) Preview(ctx context.Context, hospitalID, requestID string) (*dto.AllocationResponse, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.HospitalID != hospitalID {
		return nil, domain.ErrForbidden
	}
	snapshot, err := uc.inventoryRepo.ListAvailable(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("preview: listar inventario: %w", err)
	}
	alloc, err := matching.Allocate(req.BloodType, req.UnitsNeeded, snapshot)
	if err != nil {
		return nil, err
	}
	return toAllocationResponse(req, alloc, false), nil
}

// Match intenta atender la solicitud con el inventario del hospital.
//
// Dentro de una transacción:
//  1. bloquea la solicitud (debe pertenecer al hospital y estar pending o assigned)
//  2. lee las unidades disponibles ordenadas por vencimiento con SELECT FOR UPDATE
//  3. ejecuta matching.Allocate sobre ese snapshot
//  4. persiste estado y unidades asignadas
//  5. si ReserveUnits, marca las unidades asignadas como reserved
//
// Un resultado unavailable no es error: se persiste y se devuelve.
func (uc *RequestUseCase) Match(ctx context.Context, hospitalID, staffID, requestID string) (*dto.AllocationResponse, error) {
	var (
		req   *entity.BloodRequest
		alloc matching.Allocation
	)
	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.BloodRequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		var err error
		req, err = requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.HospitalID != hospitalID {
			return domain.ErrForbidden
		}
		if !req.Status.Open() {
			return domain.ErrInvalidTransition
		}

		snapshot, err := inventoryRepo.ListAvailableForUpdate(ctx, hospitalID)
		if err != nil {
			return fmt.Errorf("match: listar inventario: %w", err)
		}
		alloc, err = matching.Allocate(req.BloodType, req.UnitsNeeded, snapshot)
		if err != nil {
			return err
		}

		req.Status = alloc.Outcome.RequestStatus()
		req.MatchedUnitIDs = alloc.MatchedUnitIDs
		if req.AssignedStaffID == "" {
			req.AssignedStaffID = staffID
		}
		req.UpdatedAt = uc.now()
		if err := requestRepo.Update(ctx, req); err != nil {
			return fmt.Errorf("match: actualizar solicitud: %w", err)
		}

		if uc.cfg.ReserveUnits && len(alloc.MatchedUnitIDs) > 0 {
			n, err := inventoryRepo.ReserveUnits(ctx, req.ID, alloc.MatchedUnitIDs)
			if err != nil {
				return fmt.Errorf("match: reservar unidades: %w", err)
			}
			if n != int64(len(alloc.MatchedUnitIDs)) {
				return domain.ErrConflict
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.RecordAllocation(alloc.Outcome, req.UnitsNeeded, alloc.AvailableQuantity)
	uc.log.Info().
		Str("request_id", req.ID).
		Str("hospital_id", hospitalID).
		Str("blood_type", req.BloodType.String()).
		Int("units_needed", req.UnitsNeeded).
		Int("available_quantity", alloc.AvailableQuantity).
		Int("matched_units", len(alloc.MatchedUnitIDs)).
		Str("outcome", string(alloc.Outcome)).
		Bool("reserved", uc.cfg.ReserveUnits).
		Msg("asignación de solicitud")

	return toAllocationResponse(req, alloc, true), nil
}

// UpdateStatus cambio manual por el personal del hospital.
//
//   - assigned: solo desde pending; registra al responsable.
//   - unavailable: desde pending o assigned.
//   - cancelled: desde cualquier estado salvo cancelled. Las unidades que sigan reservadas
//     para esta solicitud vuelven a available; las usadas, vencidas o descartadas no.
func (uc *RequestUseCase) UpdateStatus(ctx context.Context, hospitalID, staffID, requestID string, in dto.UpdateRequestStatusRequest) (*dto.BloodRequestResponse, error) {
	next := entity.RequestStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var req *entity.BloodRequest
	err := uc.txRunner.Run(ctx, func(
		requestRepo repository.BloodRequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		var err error
		req, err = requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.HospitalID != hospitalID {
			return domain.ErrForbidden
		}
		if !canOverride(req.Status, next) {
			return domain.ErrInvalidTransition
		}

		release := next == entity.RequestStatusCancelled && uc.cfg.ReserveUnits &&
			(req.Status == entity.RequestStatusFulfilled || req.Status == entity.RequestStatusPartiallyFulfilled)
		if release && len(req.MatchedUnitIDs) > 0 {
			n, err := inventoryRepo.ReleaseUnits(ctx, req.ID, req.MatchedUnitIDs)
			if err != nil {
				return fmt.Errorf("liberar unidades: %w", err)
			}
			if n < int64(len(req.MatchedUnitIDs)) {
				uc.log.Warn().
					Str("request_id", req.ID).
					Int64("released", n).
					Int("matched", len(req.MatchedUnitIDs)).
					Msg("unidades ya consumidas o reasignadas; no se liberan")
			}
		}

		req.Status = next
		if next == entity.RequestStatusAssigned {
			req.AssignedStaffID = staffID
		}
		if in.Notes != "" {
			req.Notes = in.Notes
		}
		req.UpdatedAt = uc.now()
		return requestRepo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("request_id", req.ID).
		Str("status", string(next)).
		Str("staff_id", staffID).
		Msg("estado de solicitud actualizado")
	return ToRequestResponse(req), nil
}

func canOverride(from, to entity.RequestStatus) bool {
	switch to {
	case entity.RequestStatusAssigned:
		return from == entity.RequestStatusPending
	case entity.RequestStatusUnavailable:
		return from.Open()
	case entity.RequestStatusCancelled:
		return from != entity.RequestStatusCancelled
	}
	return false
}

func toAllocationResponse(req *entity.BloodRequest, alloc matching.Allocation, persisted bool) *dto.AllocationResponse {
	out := &dto.AllocationResponse{
		RequestID:         req.ID,
		Outcome:           string(alloc.Outcome),
		UnitsNeeded:       req.UnitsNeeded,
		AvailableQuantity: alloc.AvailableQuantity,
		CompatibleTypes:   typeStrings(alloc.CompatibleTypes),
		MatchedUnitIDs:    alloc.MatchedUnitIDs,
		Persisted:         persisted,
	}
	if persisted {
		out.Request = ToRequestResponse(req)
	}
	return out
}
