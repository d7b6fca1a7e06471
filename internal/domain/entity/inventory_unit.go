package entity

import "time"

// UnitStatus estado de una unidad de sangre en inventario.
type UnitStatus string

const (
	UnitStatusAvailable UnitStatus = "available"
	UnitStatusReserved  UnitStatus = "reserved"
	UnitStatusUsed      UnitStatus = "used"
	UnitStatusExpired   UnitStatus = "expired"
	UnitStatusDiscarded UnitStatus = "discarded"
)

// ShelfLifeDays vida útil de sangre total refrigerada.
const ShelfLifeDays = 42

// Valid indica si el estado es uno de los cinco conocidos.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusReserved, UnitStatusUsed, UnitStatusExpired, UnitStatusDiscarded:
		return true
	}
	return false
}

// Terminal: used y discarded no admiten más cambios.
func (s UnitStatus) Terminal() bool {
	return s == UnitStatusUsed || s == UnitStatusDiscarded
}

// InventoryUnit representa un lote/bolsa de sangre almacenado en un hospital.
// QuantityUnits se mide en unidades enteras (no en ml).
type InventoryUnit struct {
	ID              string
	HospitalID      string
	DonorID         string // vacío si se desconoce
	BloodType       BloodType
	QuantityUnits   int
	BatchNumber     string
	StorageLocation string
	CollectionDate  time.Time
	ExpiryDate      time.Time
	Status          UnitStatus
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAvailable true si la unidad puede participar en una asignación.
func (u *InventoryUnit) IsAvailable() bool {
	return u.Status == UnitStatusAvailable
}

// DaysUntilExpiry días (redondeo hacia arriba) hasta el vencimiento respecto a now.
func (u *InventoryUnit) DaysUntilExpiry(now time.Time) int {
	d := u.ExpiryDate.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
