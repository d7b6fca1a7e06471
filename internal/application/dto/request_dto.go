package dto

import "time"

// CreateBloodRequestRequest alta de una solicitud de sangre.
type CreateBloodRequestRequest struct {
	HospitalID    string     `json:"hospital_id" validate:"omitempty,uuid"` // receptor: hospital destino
	RecipientID   string     `json:"recipient_id" validate:"omitempty,uuid"`
	BloodType     string     `json:"blood_type" validate:"required"`
	UnitsNeeded   int        `json:"units_needed" validate:"required,min=1"`
	Urgency       string     `json:"urgency" validate:"required,oneof=critical high medium low"`
	DoctorName    string     `json:"doctor_name"`
	DoctorContact string     `json:"doctor_contact"`
	MedicalReason string     `json:"medical_reason"`
	NeededBy      *time.Time `json:"needed_by,omitempty"`
	Notes         string     `json:"notes"`
}

// UpdateRequestStatusRequest cambio manual de estado por el personal.
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending assigned fulfilled partially_fulfilled unavailable cancelled"`
	Notes  string `json:"notes"`
}

// BloodRequestResponse salida de una solicitud.
type BloodRequestResponse struct {
	ID              string    `json:"id"`
	RecipientID     string    `json:"recipient_id,omitempty"`
	HospitalID      string    `json:"hospital_id"`
	BloodType       string    `json:"blood_type"`
	UnitsNeeded     int       `json:"units_needed"`
	Urgency         string    `json:"urgency"`
	Status          string    `json:"status"`
	MatchedUnitIDs  []string  `json:"matched_unit_ids"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	DoctorContact   string    `json:"doctor_contact,omitempty"`
	MedicalReason   string    `json:"medical_reason,omitempty"`
	NeededBy        time.Time `json:"needed_by"`
	AssignedStaffID string    `json:"assigned_staff_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AllocationResponse decisión del asignador (preview o match).
type AllocationResponse struct {
	RequestID         string                `json:"request_id"`
	Outcome           string                `json:"outcome"`
	UnitsNeeded       int                   `json:"units_needed"`
	AvailableQuantity int                   `json:"available_quantity"`
	CompatibleTypes   []string              `json:"compatible_types"`
	MatchedUnitIDs    []string              `json:"matched_unit_ids"`
	Persisted         bool                  `json:"persisted"`
	Request           *BloodRequestResponse `json:"request,omitempty"`
}

// CompatibilityResponse tabla de compatibilidad para un grupo.
type CompatibilityResponse struct {
	BloodType      string   `json:"blood_type"`
	CanReceiveFrom []string `json:"can_receive_from"`
	CanDonateTo    []string `json:"can_donate_to"`
}

// RequestListQuery filtros de listado recibidos por query string.
type RequestListQuery struct {
	PageRequest
	BloodType string `query:"blood_type"`
	Urgency   string `query:"urgency"`
	Status    string `query:"status"`
	Search    string `query:"search"`
}

// BloodRequestListResponse listado paginado de solicitudes.
type BloodRequestListResponse struct {
	Items []BloodRequestResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
