package dto

import "github.com/jhoicas/bloodbank-api/internal/domain/entity"

// Actor identidad del usuario autenticado tal como llega del token.
type Actor struct {
	UserID     string
	HospitalID string
	Role       string
}

// IsHospitalStaff true para personal y administradores de hospital.
func (a Actor) IsHospitalStaff() bool {
	return a.Role == entity.RoleHospitalStaff || a.Role == entity.RoleHospitalAdmin
}

// IsSuperAdmin true para el administrador de la plataforma.
func (a Actor) IsSuperAdmin() bool { return a.Role == entity.RoleSuperAdmin }
