package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository/mocks"
)

var fixedNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestUC() (*DashboardUseCase, *mocks.ReportRepository, *mocks.HospitalRepository, *mocks.UserRepository) {
	reports := &mocks.ReportRepository{}
	hospitals := &mocks.HospitalRepository{}
	users := &mocks.UserRepository{}
	uc := NewDashboardUseCase(reports, hospitals, users)
	uc.now = func() time.Time { return fixedNow }
	return uc, reports, hospitals, users
}

func TestHospitalSummary(t *testing.T) {
	uc, reports, _, _ := newTestUC()
	ctx := context.Background()
	reports.On("HospitalSnapshot", ctx, "h-1", fixedNow).Return(&repository.HospitalSnapshot{
		ByBloodType: []repository.BloodTypeStock{
			{BloodType: entity.BloodTypeONeg, Available: 4, Reserved: 1},
			{BloodType: entity.BloodTypeABPos, Available: 2},
		},
		ExpiringSoon:    3,
		PendingRequests: 2,
		CriticalPending: 1,
		RequestsByStatus: map[entity.RequestStatus]int{
			entity.RequestStatusFulfilled:          2,
			entity.RequestStatusPartiallyFulfilled: 0,
			entity.RequestStatusUnavailable:        1,
			entity.RequestStatusPending:            2,
		},
		RequestsByUrgency: map[entity.Urgency]int{entity.UrgencyCritical: 1},
	}, nil)

	out, err := uc.HospitalSummary(ctx, "h-1")
	require.NoError(t, err)

	assert.Equal(t, 6, out.TotalAvailable)
	assert.Equal(t, 1, out.TotalReserved)
	require.Len(t, out.ByBloodType, 8)
	assert.Equal(t, "O-", out.ByBloodType[0].BloodType)
	assert.Equal(t, 0, out.ByBloodType[1].Available, "los grupos sin stock aparecen en cero")
	assert.True(t, decimal.RequireFromString("66.67").Equal(out.FulfillmentRate), "got %s", out.FulfillmentRate)
	assert.Equal(t, 2, out.RequestsByStatus["pending"])
	assert.Equal(t, 1, out.RequestsByUrgency["critical"])
}

func TestHospitalSummary_SinSolicitudesCerradas(t *testing.T) {
	uc, reports, _, _ := newTestUC()
	ctx := context.Background()
	reports.On("HospitalSnapshot", ctx, "h-1", fixedNow).Return(&repository.HospitalSnapshot{}, nil)

	out, err := uc.HospitalSummary(ctx, "h-1")
	require.NoError(t, err)
	assert.True(t, out.FulfillmentRate.IsZero())
}

func TestPlatformSummary(t *testing.T) {
	uc, reports, hospitals, users := newTestUC()
	reports.On("PlatformSnapshot", mock.Anything).Return(&repository.PlatformSnapshot{CompletedDonations: 10, OpenRequests: 4, UnitsAvailable: 30}, nil)
	hospitals.On("CountByStatus", mock.Anything).Return(map[entity.HospitalStatus]int{
		entity.HospitalStatusVerified: 3, entity.HospitalStatusPending: 1,
	}, nil)
	users.On("CountByRole", mock.Anything).Return(map[string]int{"donor": 20, "recipient": 5}, nil)

	out, err := uc.PlatformSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalHospitals)
	assert.Equal(t, 25, out.TotalUsers)
	assert.Equal(t, 10, out.CompletedDonations)
	assert.True(t, decimal.NewFromInt(75).Equal(out.VerifiedHospitalRatio))
}

func TestPlatformSummary_PropagaError(t *testing.T) {
	uc, reports, hospitals, users := newTestUC()
	boom := errors.New("timeout")
	reports.On("PlatformSnapshot", mock.Anything).Return(&repository.PlatformSnapshot{}, nil)
	hospitals.On("CountByStatus", mock.Anything).Return(nil, boom)
	users.On("CountByRole", mock.Anything).Return(map[string]int{}, nil)

	_, err := uc.PlatformSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}
