package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// BloodTypeStock unidades por grupo sanguíneo.
type BloodTypeStock struct {
	BloodType entity.BloodType
	Available int
	Reserved  int
}

// HospitalSnapshot agregados crudos de un hospital para el dashboard.
type HospitalSnapshot struct {
	ByBloodType         []BloodTypeStock
	ExpiringSoon        int // unidades available que vencen en los próximos 7 días
	UsedUnits           int
	PendingAppointments int
	CompletedDonations  int
	PendingRequests     int
	CriticalPending     int
	RequestsByStatus    map[entity.RequestStatus]int
	RequestsByUrgency   map[entity.Urgency]int
}

// PlatformSnapshot actividad global para el super admin.
// Los conteos de hospitales y usuarios salen de sus propios repositorios.
type PlatformSnapshot struct {
	CompletedDonations int
	OpenRequests       int
	UnitsAvailable     int
}

// ReportRepository consultas agregadas de solo lectura (dashboards y reportes).
type ReportRepository interface {
	HospitalSnapshot(ctx context.Context, hospitalID string, now time.Time) (*HospitalSnapshot, error)
	PlatformSnapshot(ctx context.Context) (*PlatformSnapshot, error)
}
