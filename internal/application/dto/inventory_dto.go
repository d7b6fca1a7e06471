package dto

import "time"

// AddUnitRequest registro de una unidad de sangre. expiry_date es opcional (por defecto colecta + 42 días).
type AddUnitRequest struct {
	BloodType       string     `json:"blood_type" validate:"required"`
	QuantityUnits   int        `json:"quantity_units" validate:"required,min=1"`
	DonorID         string     `json:"donor_id" validate:"omitempty,uuid"`
	BatchNumber     string     `json:"batch_number" validate:"required,max=50"`
	StorageLocation string     `json:"storage_location"`
	CollectionDate  time.Time  `json:"collection_date" validate:"required"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	Notes           string     `json:"notes"`
}

// UpdateUnitStatusRequest cambio de estado manual.
type UpdateUnitStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved used expired discarded"`
}

// InventoryUnitResponse salida de una unidad.
type InventoryUnitResponse struct {
	ID              string    `json:"id"`
	HospitalID      string    `json:"hospital_id"`
	DonorID         string    `json:"donor_id,omitempty"`
	BloodType       string    `json:"blood_type"`
	QuantityUnits   int       `json:"quantity_units"`
	BatchNumber     string    `json:"batch_number"`
	StorageLocation string    `json:"storage_location,omitempty"`
	CollectionDate  time.Time `json:"collection_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InventoryListResponse listado paginado.
type InventoryListResponse struct {
	Items []InventoryUnitResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// BloodTypeSummary unidades por grupo sanguíneo.
type BloodTypeSummary struct {
	BloodType string `json:"blood_type"`
	Available int    `json:"available"`
	Reserved  int    `json:"reserved"`
}

// InventorySummaryResponse resumen del inventario de un hospital.
type InventorySummaryResponse struct {
	HospitalID     string                  `json:"hospital_id"`
	TotalAvailable int                     `json:"total_available"`
	TotalReserved  int                     `json:"total_reserved"`
	ExpiringSoon   []InventoryUnitResponse `json:"expiring_soon"`
	ByBloodType    []BloodTypeSummary      `json:"by_blood_type"`
	GeneratedAt    time.Time               `json:"generated_at"`
}

// ExpireResponse resultado del barrido de vencimientos.
type ExpireResponse struct {
	Expired int64 `json:"expired"`
}

// InventoryListQuery filtros de listado recibidos por query string.
type InventoryListQuery struct {
	PageRequest
	BloodType string `query:"blood_type"`
	Status    string `query:"status"`
	Search    string `query:"search"`
}
