package entity

import "time"

// AppointmentStatus estado de una cita de donación.
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentConfirmed   AppointmentStatus = "confirmed"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
)

// Valid indica si el estado es conocido.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentRescheduled:
		return true
	}
	return false
}

// Terminal: completed y cancelled cierran la cita.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// CanTransitionTo reglas de la máquina de estados de la cita.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case AppointmentConfirmed:
		return s == AppointmentScheduled || s == AppointmentRescheduled
	case AppointmentCompleted:
		return s == AppointmentConfirmed
	case AppointmentCancelled, AppointmentRescheduled:
		return true
	}
	return false
}

// Appointment cita de donación de un donante en un hospital.
type Appointment struct {
	ID              string
	DonorID         string
	HospitalID      string
	AppointmentDate time.Time
	Status          AppointmentStatus
	ConfirmedBy     string
	ConfirmedAt     *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
