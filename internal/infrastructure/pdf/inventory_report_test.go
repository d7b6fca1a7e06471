package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/application/reports"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

func TestGenerateInventoryReport(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	data := reports.InventoryReportData{
		Hospital: &entity.Hospital{ID: "h-1", Name: "Hospital Central", City: "Bogotá"},
		Units: []*entity.InventoryUnit{
			{ID: "u-1", BloodType: entity.BloodTypeONeg, QuantityUnits: 2, BatchNumber: "L-01",
				Status: entity.UnitStatusAvailable, ExpiryDate: now.AddDate(0, 0, 3)},
		},
		Summary:          []reports.BloodTypeLine{{BloodType: entity.BloodTypeONeg, Available: 2}},
		ExpiringSoon:     2,
		ExpiringSoonDays: 7,
		GeneratedAt:      now,
	}

	out, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInventoryReport_SinHospital(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), reports.InventoryReportData{})
	assert.Error(t, err)
}
