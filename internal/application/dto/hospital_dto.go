package dto

import "time"

// CreateHospitalRequest registro de un hospital por su administrador. Queda en estado pending.
type CreateHospitalRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	LicenseNumber string   `json:"license_number" validate:"required,max=50"`
	Address       string   `json:"address" validate:"required"`
	City          string   `json:"city" validate:"required"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Phone         string   `json:"phone" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Website       string   `json:"website" validate:"omitempty,url"`
	Services      []string `json:"services"`
}

// UpdateHospitalRequest campos editables por el administrador (nil = sin cambio).
type UpdateHospitalRequest struct {
	Name     *string  `json:"name,omitempty"`
	Address  *string  `json:"address,omitempty"`
	City     *string  `json:"city,omitempty"`
	State    *string  `json:"state,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Website  *string  `json:"website,omitempty"`
	Services []string `json:"services,omitempty"`
}

// UpdateHospitalStatusRequest verificación o suspensión (super admin).
type UpdateHospitalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified suspended"`
}

// HospitalResponse salida de un hospital.
type HospitalResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postal_code,omitempty"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Website       string    `json:"website,omitempty"`
	Services      []string  `json:"services"`
	Status        string    `json:"status"`
	AdminUserID   string    `json:"admin_user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HospitalListResponse listado paginado de hospitales.
type HospitalListResponse struct {
	Items []HospitalResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
