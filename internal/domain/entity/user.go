package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin    = "super_admin"
	RoleHospitalAdmin = "hospital_admin"
	RoleHospitalStaff = "hospital_staff"
	RoleDonor         = "donor"
	RoleRecipient     = "recipient"
)

// ValidRole indica si el rol es uno de los cinco soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleHospitalAdmin, RoleHospitalStaff, RoleDonor, RoleRecipient:
		return true
	}
	return false
}

// Estados de cuenta.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa una cuenta del sistema. HospitalID solo aplica a personal y administradores de hospital.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Phone        string
	Role         string
	HospitalID   string
	Status       string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
