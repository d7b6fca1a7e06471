package entity

import "time"

// Urgency prioridad de la solicitud. Solo ordena y se muestra; no altera la asignación.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Valid indica si la urgencia es conocida.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

// Rank 0 = más urgente.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	default:
		return 3
	}
}

// RequestStatus estado de una solicitud de sangre.
type RequestStatus string

const (
	RequestStatusPending            RequestStatus = "pending"
	RequestStatusAssigned           RequestStatus = "assigned"
	RequestStatusFulfilled          RequestStatus = "fulfilled"
	RequestStatusPartiallyFulfilled RequestStatus = "partially_fulfilled"
	RequestStatusUnavailable        RequestStatus = "unavailable"
	RequestStatusCancelled          RequestStatus = "cancelled"
)

// Valid indica si el estado es conocido.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAssigned, RequestStatusFulfilled,
		RequestStatusPartiallyFulfilled, RequestStatusUnavailable, RequestStatusCancelled:
		return true
	}
	return false
}

// Open true mientras la solicitud admite un intento de asignación.
func (s RequestStatus) Open() bool {
	return s == RequestStatusPending || s == RequestStatusAssigned
}

// BloodRequest solicitud de sangre creada por un receptor o por personal del hospital.
type BloodRequest struct {
	ID              string
	RecipientID     string // vacío si la crea el personal sin receptor registrado
	HospitalID      string
	BloodType       BloodType
	UnitsNeeded     int
	Urgency         Urgency
	Status          RequestStatus
	MatchedUnitIDs  []string
	DoctorName      string
	DoctorContact   string
	MedicalReason   string
	NeededBy        time.Time
	AssignedStaffID string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
