package repository

import "github.com/jhoicas/bloodbank-api/internal/domain/entity"

// InventoryFilter criterios de listado de inventario. Campos vacíos = sin filtro; Limit 0 = sin límite.
type InventoryFilter struct {
	HospitalID string
	BloodType  entity.BloodType
	Status     entity.UnitStatus
	Search     string // lote, ubicación o notas
	Limit      int
	Offset     int
}

// ProfileFilter criterios de listado de donantes y receptores.
type ProfileFilter struct {
	BloodType    entity.BloodType
	Search       string // nombre, email o teléfono del usuario; ya normalizado
	EligibleOnly bool   // solo donantes
	Limit        int
	Offset       int
}

// RequestFilter criterios de listado de solicitudes. Campos vacíos = sin filtro.
type RequestFilter struct {
	HospitalID  string
	RecipientID string
	BloodType   entity.BloodType
	Urgency     entity.Urgency
	Status      entity.RequestStatus
	Search      string // médico o motivo
	Limit       int
	Offset      int
}

// AppointmentFilter criterios de listado de citas.
type AppointmentFilter struct {
	HospitalID string
	DonorID    string
	Status     entity.AppointmentStatus
	Limit      int
	Offset     int
}
