package dto

import "time"

// DonorProfileRequest alta o actualización del perfil de donante del usuario autenticado.
type DonorProfileRequest struct {
	BloodType             string   `json:"blood_type" validate:"required"`
	DateOfBirth           string   `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	WeightKg              float64  `json:"weight_kg" validate:"required,gt=0"`
	MedicalConditions     []string `json:"medical_conditions"`
	EmergencyContactName  string   `json:"emergency_contact_name"`
	EmergencyContactPhone string   `json:"emergency_contact_phone"`
}

// DonorResponse perfil de donante con su próxima fecha elegible.
type DonorResponse struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user_id"`
	BloodType             string     `json:"blood_type"`
	DateOfBirth           string     `json:"date_of_birth"`
	WeightKg              float64    `json:"weight_kg"`
	IsEligible            bool       `json:"is_eligible"`
	LastDonationDate      *time.Time `json:"last_donation_date,omitempty"`
	NextEligibleDate      time.Time  `json:"next_eligible_date"`
	CanDonateNow          bool       `json:"can_donate_now"`
	MedicalConditions     []string   `json:"medical_conditions"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	CanDonateTo           []string   `json:"can_donate_to"`
	FullName              string     `json:"full_name,omitempty"`
	Email                 string     `json:"email,omitempty"`
	Phone                 string     `json:"phone,omitempty"`
}

// DonorListQuery filtros del listado de donantes para el personal.
type DonorListQuery struct {
	PageRequest
	BloodType    string `query:"blood_type"`
	Search       string `query:"search"`
	EligibleOnly bool   `query:"eligible"`
}

// DonorListResponse listado paginado de donantes.
type DonorListResponse struct {
	Items []DonorResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// RecipientProfileRequest alta o actualización del perfil de receptor.
type RecipientProfileRequest struct {
	BloodType             string   `json:"blood_type" validate:"required"`
	DateOfBirth           string   `json:"date_of_birth" validate:"required"`
	MedicalConditions     []string `json:"medical_conditions"`
	EmergencyContactName  string   `json:"emergency_contact_name"`
	EmergencyContactPhone string   `json:"emergency_contact_phone"`
}

// RecipientResponse perfil de receptor con los grupos que puede recibir.
type RecipientResponse struct {
	ID                    string   `json:"id"`
	UserID                string   `json:"user_id"`
	BloodType             string   `json:"blood_type"`
	DateOfBirth           string   `json:"date_of_birth"`
	MedicalConditions     []string `json:"medical_conditions"`
	EmergencyContactName  string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string   `json:"emergency_contact_phone,omitempty"`
	CanReceiveFrom        []string `json:"can_receive_from"`
	FullName              string   `json:"full_name,omitempty"`
	Email                 string   `json:"email,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
}

// RecipientListQuery filtros del listado de receptores.
type RecipientListQuery struct {
	PageRequest
	BloodType string `query:"blood_type"`
	Search    string `query:"search"`
}

// RecipientListResponse listado paginado de receptores.
type RecipientListResponse struct {
	Items []RecipientResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
