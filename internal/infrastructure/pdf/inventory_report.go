// Package pdf implementa el reporte de inventario de sangre en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hospital + licencia  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: Dirección / Tel / Email                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: 8 grupos (disponibles / reservadas)                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Grupo | Lote | Ubicación | Cant | Estado | Vence   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de trazabilidad + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bloodbank-api/internal/application/reports"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 150, Green: 20, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning = &props.Color{Red: 200, Green: 110, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.InventoryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(_ context.Context, data reports.InventoryReportData) ([]byte, error) {
	if data.Hospital == nil {
		return nil, fmt.Errorf("pdf: hospital requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario de sangre", true).
		WithAuthor(data.Hospital.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(data.Hospital))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(summaryRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(data)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data reports.InventoryReportData) core.Row {
	h := data.Hospital
	return row.New(18).Add(
		col.New(7).Add(
			text.New(h.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Licencia: "+nonEmpty(h.LicenseNumber, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

func contactRow(h *entity.Hospital) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s, %s   |   Tel: %s   |   Email: %s",
				nonEmpty(h.Address, "-"),
				nonEmpty(h.City, "-"),
				nonEmpty(h.Phone, "-"),
				nonEmpty(h.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// summaryRows: una columna por grupo sanguíneo y una línea de alertas.
func summaryRows(data reports.InventoryReportData) []core.Row {
	labels := make([]core.Col, 0, len(data.Summary))
	values := make([]core.Col, 0, len(data.Summary))
	totalAvailable, totalReserved := 0, 0
	for _, l := range data.Summary {
		labels = append(labels, col.New(1).Add(text.New(string(l.BloodType), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Center, Color: colorPrimary, Top: 1,
		})))
		values = append(values, col.New(1).Add(text.New(
			fmt.Sprintf("%d / %d", l.Available, l.Reserved),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)))
		totalAvailable += l.Available
		totalReserved += l.Reserved
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("RESUMEN POR GRUPO (disponibles / reservadas)", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))),
		row.New(7).Add(labels...),
		row.New(6).Add(values...),
		row.New(7).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Total disponibles: %d   |   Reservadas: %d   |   Vencen en %d días o menos: %d",
				totalAvailable, totalReserved, data.ExpiringSoonDays, data.ExpiringSoon),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		))),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Grupo", 1, align.Center),
		h("Lote", 3, align.Left),
		h("Ubicación", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("Estado", 2, align.Left),
		h("Vence", 2, align.Right),
	)
}

// tableDetailRows: una fila por unidad; las próximas a vencer en otro color.
func tableDetailRows(data reports.InventoryReportData) []core.Row {
	if len(data.Units) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New("Sin unidades vigentes.", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		})))}
	}
	result := make([]core.Row, 0, len(data.Units))
	for _, u := range data.Units {
		expiry := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if d := u.DaysUntilExpiry(data.GeneratedAt); d <= data.ExpiringSoonDays {
			expiry.Style = fontstyle.Bold
			expiry.Color = colorWarning
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(string(u.BloodType), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(u.BatchNumber, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(u.StorageLocation, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(u.QuantityUnits), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(string(u.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(u.ExpiryDate.Format("02/01/2006"), expiry)),
		))
	}
	return result
}

// footerRow: QR con hospital y fecha para cotejar la copia impresa.
func footerRow(data reports.InventoryReportData) core.Row {
	qr := fmt.Sprintf("bloodbank:inventory:%s:%s", data.Hospital.ID, data.GeneratedAt.UTC().Format("20060102T150405Z"))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Documento informativo generado automáticamente.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Las cantidades se expresan en unidades. Verifique el estado físico de cada unidad antes de transfundir.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
