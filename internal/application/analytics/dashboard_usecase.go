// Package analytics contiene los casos de uso del dashboard del hospital y de la plataforma.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera los resúmenes operativos.
//
// Fuente de datos: ReportRepository (consultas read-only) más los conteos de
// hospitales y usuarios para la vista de plataforma.
type DashboardUseCase struct {
	reportRepo   repository.ReportRepository
	hospitalRepo repository.HospitalRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	hospitalRepo repository.HospitalRepository,
	userRepo repository.UserRepository,
) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, hospitalRepo: hospitalRepo, userRepo: userRepo, now: time.Now}
}

// HospitalSummary construye el HospitalDashboardDTO del hospital indicado.
// FulfillmentRate = fulfilled / (fulfilled + partially_fulfilled + unavailable) * 100, con 2 decimales.
func (uc *DashboardUseCase) HospitalSummary(ctx context.Context, hospitalID string) (*dto.HospitalDashboardDTO, error) {
	now := uc.now()
	snap, err := uc.reportRepo.HospitalSnapshot(ctx, hospitalID, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard: snapshot hospital: %w", err)
	}

	out := &dto.HospitalDashboardDTO{
		HospitalID:          hospitalID,
		ExpiringSoon:        snap.ExpiringSoon,
		UsedUnits:           snap.UsedUnits,
		PendingAppointments: snap.PendingAppointments,
		CompletedDonations:  snap.CompletedDonations,
		PendingRequests:     snap.PendingRequests,
		CriticalPending:     snap.CriticalPending,
		ByBloodType:         make([]dto.BloodTypeSummary, 0, len(entity.AllBloodTypes)),
		RequestsByStatus:    make(map[string]int, len(snap.RequestsByStatus)),
		RequestsByUrgency:   make(map[string]int, len(snap.RequestsByUrgency)),
		GeneratedAt:         now,
	}

	stock := make(map[entity.BloodType]repository.BloodTypeStock, len(snap.ByBloodType))
	for _, s := range snap.ByBloodType {
		stock[s.BloodType] = s
	}
	for _, bt := range entity.AllBloodTypes {
		s := stock[bt]
		out.ByBloodType = append(out.ByBloodType, dto.BloodTypeSummary{
			BloodType: bt.String(), Available: s.Available, Reserved: s.Reserved,
		})
		out.TotalAvailable += s.Available
		out.TotalReserved += s.Reserved
	}
	for st, n := range snap.RequestsByStatus {
		out.RequestsByStatus[string(st)] = n
	}
	for u, n := range snap.RequestsByUrgency {
		out.RequestsByUrgency[string(u)] = n
	}

	fulfilled := snap.RequestsByStatus[entity.RequestStatusFulfilled]
	closed := fulfilled +
		snap.RequestsByStatus[entity.RequestStatusPartiallyFulfilled] +
		snap.RequestsByStatus[entity.RequestStatusUnavailable]
	out.FulfillmentRate = percentage(fulfilled, closed)
	return out, nil
}

// PlatformSummary resumen global para el super admin.
//
// Tres consultas en paralelo:
//  1. PlatformSnapshot -> donaciones completadas, solicitudes abiertas, unidades disponibles
//  2. CountByStatus    -> hospitales por estado
//  3. CountByRole      -> usuarios por rol
func (uc *DashboardUseCase) PlatformSummary(ctx context.Context) (*dto.PlatformDashboardDTO, error) {
	type snapResult struct {
		snap *repository.PlatformSnapshot
		err  error
	}
	type hospitalsResult struct {
		counts map[entity.HospitalStatus]int
		err    error
	}
	type usersResult struct {
		counts map[string]int
		err    error
	}

	snapCh := make(chan snapResult, 1)
	hospCh := make(chan hospitalsResult, 1)
	userCh := make(chan usersResult, 1)

	go func() {
		s, err := uc.reportRepo.PlatformSnapshot(ctx)
		snapCh <- snapResult{s, err}
	}()
	go func() {
		c, err := uc.hospitalRepo.CountByStatus(ctx)
		hospCh <- hospitalsResult{c, err}
	}()
	go func() {
		c, err := uc.userRepo.CountByRole(ctx)
		userCh <- usersResult{c, err}
	}()

	snap := <-snapCh
	hosp := <-hospCh
	users := <-userCh

	if snap.err != nil {
		return nil, fmt.Errorf("dashboard: snapshot plataforma: %w", snap.err)
	}
	if hosp.err != nil {
		return nil, fmt.Errorf("dashboard: hospitales por estado: %w", hosp.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios por rol: %w", users.err)
	}

	out := &dto.PlatformDashboardDTO{
		HospitalsByStatus:  make(map[string]int, len(hosp.counts)),
		UsersByRole:        make(map[string]int, len(users.counts)),
		CompletedDonations: snap.snap.CompletedDonations,
		OpenRequests:       snap.snap.OpenRequests,
		UnitsAvailable:     snap.snap.UnitsAvailable,
		GeneratedAt:        uc.now(),
	}
	for st, n := range hosp.counts {
		out.HospitalsByStatus[string(st)] = n
		out.TotalHospitals += n
	}
	for role, n := range users.counts {
		out.UsersByRole[role] = n
		out.TotalUsers += n
	}
	out.VerifiedHospitalRatio = percentage(hosp.counts[entity.HospitalStatusVerified], out.TotalHospitals)
	return out, nil
}

// percentage part/total*100 redondeado a 2 decimales; 0 si total es 0.
func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
