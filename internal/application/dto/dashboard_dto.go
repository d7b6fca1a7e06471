package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HospitalDashboardDTO resumen operativo de un hospital.
type HospitalDashboardDTO struct {
	HospitalID          string             `json:"hospital_id"`
	TotalAvailable      int                `json:"total_available"`
	TotalReserved       int                `json:"total_reserved"`
	ExpiringSoon        int                `json:"expiring_soon"`
	UsedUnits           int                `json:"used_units"`
	PendingAppointments int                `json:"pending_appointments"`
	CompletedDonations  int                `json:"completed_donations"`
	PendingRequests     int                `json:"pending_requests"`
	CriticalPending     int                `json:"critical_pending"`
	FulfillmentRate     decimal.Decimal    `json:"fulfillment_rate"` // % de solicitudes cerradas atendidas completamente
	ByBloodType         []BloodTypeSummary `json:"by_blood_type"`
	RequestsByStatus    map[string]int     `json:"requests_by_status"`
	RequestsByUrgency   map[string]int     `json:"requests_by_urgency"`
	GeneratedAt         time.Time          `json:"generated_at"`
}

// PlatformDashboardDTO resumen global para el super admin.
type PlatformDashboardDTO struct {
	HospitalsByStatus     map[string]int  `json:"hospitals_by_status"`
	UsersByRole           map[string]int  `json:"users_by_role"`
	TotalHospitals        int             `json:"total_hospitals"`
	TotalUsers            int             `json:"total_users"`
	VerifiedHospitalRatio decimal.Decimal `json:"verified_hospital_ratio"`
	CompletedDonations    int             `json:"completed_donations"`
	OpenRequests          int             `json:"open_requests"`
	UnitsAvailable        int             `json:"units_available"`
	GeneratedAt           time.Time       `json:"generated_at"`
}
