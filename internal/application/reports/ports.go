package reports

import (
	"context"
	"time"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// BloodTypeLine fila del cuadro resumen por grupo sanguíneo.
type BloodTypeLine struct {
	BloodType entity.BloodType
	Available int
	Reserved  int
}

// InventoryReportData datos ya resueltos para el reporte de inventario.
type InventoryReportData struct {
	Hospital         *entity.Hospital
	Units            []*entity.InventoryUnit // available y reserved, ordenadas por vencimiento
	Summary          []BloodTypeLine         // los 8 grupos, en orden fijo
	ExpiringSoon     int
	ExpiringSoonDays int
	GeneratedAt      time.Time
}

// InventoryPDFGenerator genera la representación PDF del inventario de un hospital.
type InventoryPDFGenerator interface {
	GenerateInventoryReport(ctx context.Context, data InventoryReportData) ([]byte, error)
}
