package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository/mocks"
)

type generatorSpy struct {
	got InventoryReportData
}

func (g *generatorSpy) GenerateInventoryReport(_ context.Context, data InventoryReportData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-1.3"), nil
}

func TestDownloadInventoryReport(t *testing.T) {
	hospitals := &mocks.HospitalRepository{}
	inventory := &mocks.InventoryRepository{}
	gen := &generatorSpy{}
	uc := NewPDFUseCase(hospitals, inventory, gen, 7)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	ctx := context.Background()

	hospitals.On("GetByID", ctx, "h-1").Return(&entity.Hospital{ID: "h-1", Name: "Central"}, nil)
	inventory.On("List", ctx, repository.InventoryFilter{HospitalID: "h-1", Status: entity.UnitStatusAvailable}).Return([]*entity.InventoryUnit{
		{ID: "a", BloodType: entity.BloodTypeAPos, QuantityUnits: 2, Status: entity.UnitStatusAvailable, ExpiryDate: now.AddDate(0, 0, 20)},
		{ID: "b", BloodType: entity.BloodTypeONeg, QuantityUnits: 1, Status: entity.UnitStatusAvailable, ExpiryDate: now.AddDate(0, 0, 3)},
	}, nil)
	inventory.On("List", ctx, repository.InventoryFilter{HospitalID: "h-1", Status: entity.UnitStatusReserved}).Return([]*entity.InventoryUnit{
		{ID: "c", BloodType: entity.BloodTypeAPos, QuantityUnits: 1, Status: entity.UnitStatusReserved, ExpiryDate: now.AddDate(0, 0, 10)},
	}, nil)

	pdf, filename, err := uc.DownloadInventoryReport(ctx, "h-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "inventario_20260401.pdf", filename)

	require.Len(t, gen.got.Units, 3)
	assert.Equal(t, "b", gen.got.Units[0].ID)
	assert.Equal(t, "c", gen.got.Units[1].ID)
	assert.Equal(t, 1, gen.got.ExpiringSoon)
	assert.Equal(t, BloodTypeLine{BloodType: entity.BloodTypeAPos, Available: 2, Reserved: 1}, gen.got.Summary[3])
}

func TestDownloadInventoryReport_HospitalInexistente(t *testing.T) {
	hospitals := &mocks.HospitalRepository{}
	uc := NewPDFUseCase(hospitals, &mocks.InventoryRepository{}, &generatorSpy{}, 7)
	hospitals.On("GetByID", context.Background(), "h-x").Return(nil, nil)

	_, _, err := uc.DownloadInventoryReport(context.Background(), "h-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
