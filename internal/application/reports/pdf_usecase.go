// Package reports genera reportes descargables (PDF) del inventario de sangre.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

// PDFUseCase arma los datos del reporte de inventario y delega el render en el generador.
type PDFUseCase struct {
	hospitalRepo     repository.HospitalRepository
	inventoryRepo    repository.InventoryRepository
	generator        InventoryPDFGenerator
	expiringSoonDays int
	now              func() time.Time
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	hospitalRepo repository.HospitalRepository,
	inventoryRepo repository.InventoryRepository,
	generator InventoryPDFGenerator,
	expiringSoonDays int,
) *PDFUseCase {
	if expiringSoonDays <= 0 {
		expiringSoonDays = 7
	}
	return &PDFUseCase{
		hospitalRepo:     hospitalRepo,
		inventoryRepo:    inventoryRepo,
		generator:        generator,
		expiringSoonDays: expiringSoonDays,
		now:              time.Now,
	}
}

// DownloadInventoryReport genera el PDF del inventario vigente (available + reserved).
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el hospital no existe.
func (uc *PDFUseCase) DownloadInventoryReport(ctx context.Context, hospitalID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Hospital ───────────────────────────────────────────────────────────
	h, err := uc.hospitalRepo.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener hospital: %w", err)
	}
	if h == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Unidades vigentes ──────────────────────────────────────────────────
	var units []*entity.InventoryUnit
	for _, st := range []entity.UnitStatus{entity.UnitStatusAvailable, entity.UnitStatusReserved} {
		list, err := uc.inventoryRepo.List(ctx, repository.InventoryFilter{HospitalID: hospitalID, Status: st})
		if err != nil {
			return nil, "", fmt.Errorf("pdf: listar inventario %s: %w", st, err)
		}
		units = append(units, list...)
	}
	sort.SliceStable(units, func(i, j int) bool { return units[i].ExpiryDate.Before(units[j].ExpiryDate) })

	// ── 3. Resumen por grupo ──────────────────────────────────────────────────
	now := uc.now()
	data := InventoryReportData{
		Hospital:         h,
		Units:            units,
		Summary:          make([]BloodTypeLine, len(entity.AllBloodTypes)),
		ExpiringSoonDays: uc.expiringSoonDays,
		GeneratedAt:      now,
	}
	idx := make(map[entity.BloodType]int, len(entity.AllBloodTypes))
	for i, bt := range entity.AllBloodTypes {
		data.Summary[i].BloodType = bt
		idx[bt] = i
	}
	for _, u := range units {
		i, ok := idx[u.BloodType]
		if !ok {
			continue
		}
		if u.Status == entity.UnitStatusReserved {
			data.Summary[i].Reserved += u.QuantityUnits
			continue
		}
		data.Summary[i].Available += u.QuantityUnits
		if d := u.DaysUntilExpiry(now); d >= 0 && d <= uc.expiringSoonDays {
			data.ExpiringSoon += u.QuantityUnits
		}
	}

	// ── 4. Render ─────────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInventoryReport(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("inventario_%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}
