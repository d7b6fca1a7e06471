package dto

import "time"

// CreateAppointmentRequest el donante agenda una cita en un hospital verificado.
type CreateAppointmentRequest struct {
	HospitalID      string    `json:"hospital_id" validate:"required,uuid"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes"`
}

// RescheduleAppointmentRequest nueva fecha para una cita no cerrada.
type RescheduleAppointmentRequest struct {
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Notes           string    `json:"notes"`
}

// CompleteAppointmentRequest datos opcionales de la donación realizada.
// Si QuantityUnits > 0 se registra la unidad en inventario.
type CompleteAppointmentRequest struct {
	QuantityUnits   int    `json:"quantity_units" validate:"omitempty,min=1"`
	BatchNumber     string `json:"batch_number"`
	StorageLocation string `json:"storage_location"`
	Notes           string `json:"notes"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID              string     `json:"id"`
	DonorID         string     `json:"donor_id"`
	HospitalID      string     `json:"hospital_id"`
	AppointmentDate time.Time  `json:"appointment_date"`
	Status          string     `json:"status"`
	ConfirmedBy     string     `json:"confirmed_by,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AppointmentListQuery filtros de listado de citas.
type AppointmentListQuery struct {
	PageRequest
	Status string `query:"status"`
}

// AppointmentListResponse listado paginado de citas.
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
