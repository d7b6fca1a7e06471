package entity

import "time"

// HospitalStatus estado de verificación de un hospital (lo gestiona el super admin).
type HospitalStatus string

const (
	HospitalStatusPending   HospitalStatus = "pending"
	HospitalStatusVerified  HospitalStatus = "verified"
	HospitalStatusSuspended HospitalStatus = "suspended"
)

// Valid indica si el estado es conocido.
func (s HospitalStatus) Valid() bool {
	return s == HospitalStatusPending || s == HospitalStatusVerified || s == HospitalStatusSuspended
}

// Hospital banco de sangre / institución registrada en la plataforma.
type Hospital struct {
	ID            string
	Name          string
	LicenseNumber string
	Address       string
	City          string
	State         string
	PostalCode    string
	Phone         string
	Email         string
	Website       string
	Services      []string
	Status        HospitalStatus
	AdminUserID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
