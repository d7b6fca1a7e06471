package requests_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository/mocks"
)

const hospitalID = "h-1"

// fakeTx ejecuta fn con los mismos mocks; no hay BD real.
type fakeTx struct {
	requests  *mocks.BloodRequestRepository
	inventory *mocks.InventoryRepository
	calls     int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.BloodRequestRepository, repository.InventoryRepository) error) error {
	f.calls++
	return fn(f.requests, f.inventory)
}

type recorderSpy struct {
	outcomes []matching.Outcome
}

func (r *recorderSpy) RecordAllocation(o matching.Outcome, _, _ int) {
	r.outcomes = append(r.outcomes, o)
}

type fixture struct {
	uc         *requests.RequestUseCase
	reqRepo    *mocks.BloodRequestRepository
	invRepo    *mocks.InventoryRepository
	recipients *mocks.RecipientRepository
	hospitals  *mocks.HospitalRepository
	tx         *fakeTx
	recorder   *recorderSpy
}

func newFixture(reserve bool) *fixture {
	f := &fixture{
		reqRepo:    &mocks.BloodRequestRepository{},
		invRepo:    &mocks.InventoryRepository{},
		recipients: &mocks.RecipientRepository{},
		hospitals:  &mocks.HospitalRepository{},
		recorder:   &recorderSpy{},
	}
	f.tx = &fakeTx{requests: f.reqRepo, inventory: f.invRepo}
	f.uc = requests.NewRequestUseCase(f.reqRepo, f.invRepo, f.recipients, f.hospitals, f.tx, f.recorder,
		requests.Config{ReserveUnits: reserve}, nil)
	return f
}

func unit(id string, bt entity.BloodType, qty int) entity.InventoryUnit {
	return entity.InventoryUnit{ID: id, HospitalID: hospitalID, BloodType: bt, QuantityUnits: qty, Status: entity.UnitStatusAvailable}
}

func pendingRequest(bt entity.BloodType, units int) *entity.BloodRequest {
	return &entity.BloodRequest{
		ID: "r-1", HospitalID: hospitalID, BloodType: bt, UnitsNeeded: units,
		Urgency: entity.UrgencyHigh, Status: entity.RequestStatusPending,
	}
}

func TestMatch_FulfilledReservaUnidades(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	req := pendingRequest(entity.BloodTypeAPos, 2)
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(req, nil)
	f.invRepo.On("ListAvailableForUpdate", ctx, hospitalID).Return([]entity.InventoryUnit{
		unit("u1", entity.BloodTypeONeg, 1),
		unit("u2", entity.BloodTypeAPos, 3),
		unit("u3", entity.BloodTypeBPos, 5),
	}, nil)
	f.reqRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.BloodRequest) bool {
		return r.Status == entity.RequestStatusFulfilled && r.AssignedStaffID == "staff-1"
	})).Return(nil)
	f.invRepo.On("ReserveUnits", ctx, "r-1", []string{"u1", "u2"}).Return(int64(2), nil)

	out, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)

	assert.Equal(t, "fulfilled", out.Outcome)
	assert.Equal(t, 4, out.AvailableQuantity)
	assert.Equal(t, []string{"u1", "u2"}, out.MatchedUnitIDs)
	assert.True(t, out.Persisted)
	require.NotNil(t, out.Request)
	assert.Equal(t, "fulfilled", out.Request.Status)
	assert.Equal(t, []matching.Outcome{matching.OutcomeFulfilled}, f.recorder.outcomes)
	f.reqRepo.AssertExpectations(t)
	f.invRepo.AssertExpectations(t)
}

func TestMatch_SinReservaNoTocaInventario(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(pendingRequest(entity.BloodTypeABNeg, 10), nil)
	f.invRepo.On("ListAvailableForUpdate", ctx, hospitalID).Return([]entity.InventoryUnit{
		unit("u1", entity.BloodTypeONeg, 2),
		unit("u2", entity.BloodTypeABNeg, 1),
	}, nil)
	f.reqRepo.On("Update", ctx, mock.Anything).Return(nil)

	out, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)

	assert.Equal(t, "partially_fulfilled", out.Outcome)
	assert.Equal(t, []string{"u1", "u2"}, out.MatchedUnitIDs)
	f.invRepo.AssertNotCalled(t, "ReserveUnits", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatch_UnavailableSePersisteSinError(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(pendingRequest(entity.BloodTypeONeg, 1), nil)
	f.invRepo.On("ListAvailableForUpdate", ctx, hospitalID).Return([]entity.InventoryUnit{
		unit("u1", entity.BloodTypeAPos, 5),
	}, nil)
	f.reqRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.BloodRequest) bool {
		return r.Status == entity.RequestStatusUnavailable && len(r.MatchedUnitIDs) == 0
	})).Return(nil)

	out, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)
	assert.Equal(t, "unavailable", out.Outcome)
	assert.Empty(t, out.MatchedUnitIDs)
	f.invRepo.AssertNotCalled(t, "ReserveUnits", mock.Anything, mock.Anything, mock.Anything)
}

func TestMatch_SolicitudCerrada(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	req := pendingRequest(entity.BloodTypeAPos, 1)
	req.Status = entity.RequestStatusFulfilled
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(req, nil)

	_, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.recorder.outcomes)
}

func TestMatch_OtroHospital(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	req := pendingRequest(entity.BloodTypeAPos, 1)
	req.HospitalID = "h-2"
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(req, nil)

	_, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMatch_ReservaIncompletaEsConflicto(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(pendingRequest(entity.BloodTypeAPos, 1), nil)
	f.invRepo.On("ListAvailableForUpdate", ctx, hospitalID).Return([]entity.InventoryUnit{
		unit("u1", entity.BloodTypeAPos, 1),
	}, nil)
	f.reqRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.invRepo.On("ReserveUnits", ctx, "r-1", []string{"u1"}).Return(int64(0), nil)

	_, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPreview_NoPersiste(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.reqRepo.On("GetByID", ctx, "r-1").Return(pendingRequest(entity.BloodTypeBPos, 3), nil)
	f.invRepo.On("ListAvailable", ctx, hospitalID).Return([]entity.InventoryUnit{
		unit("u1", entity.BloodTypeBNeg, 1),
		unit("u2", entity.BloodTypeONeg, 1),
	}, nil)

	out, err := f.uc.Preview(ctx, hospitalID, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "partially_fulfilled", out.Outcome)
	assert.False(t, out.Persisted)
	assert.Nil(t, out.Request)
	assert.Equal(t, []string{"O-", "O+", "B-", "B+"}, out.CompatibleTypes)
	assert.Zero(t, f.tx.calls)
	f.reqRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatus_CancelarLiberaReservas(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	req := pendingRequest(entity.BloodTypeAPos, 2)
	req.Status = entity.RequestStatusFulfilled
	req.MatchedUnitIDs = []string{"u1", "u2"}
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(req, nil)
	f.invRepo.On("ReleaseUnits", ctx, "r-1", []string{"u1", "u2"}).Return(int64(2), nil)
	f.reqRepo.On("Update", ctx, mock.Anything).Return(nil)

	out, err := f.uc.UpdateStatus(ctx, hospitalID, "staff-1", "r-1", dto.UpdateRequestStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)
	f.invRepo.AssertExpectations(t)
}

func TestUpdateStatus_TransicionesInvalidas(t *testing.T) {
	cases := []struct {
		from entity.RequestStatus
		to   string
	}{
		{entity.RequestStatusFulfilled, "assigned"},
		{entity.RequestStatusCancelled, "cancelled"},
		{entity.RequestStatusUnavailable, "unavailable"},
		{entity.RequestStatusPending, "fulfilled"},
	}
	for _, tc := range cases {
		f := newFixture(true)
		ctx := context.Background()
		req := pendingRequest(entity.BloodTypeAPos, 1)
		req.Status = tc.from
		f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(req, nil)

		_, err := f.uc.UpdateStatus(ctx, hospitalID, "staff-1", "r-1", dto.UpdateRequestStatusRequest{Status: tc.to})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestCreate_StaffEnHospitalVerificado(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.hospitals.On("GetByID", ctx, hospitalID).Return(&entity.Hospital{ID: hospitalID, Status: entity.HospitalStatusVerified}, nil)
	f.reqRepo.On("Create", ctx, mock.MatchedBy(func(r *entity.BloodRequest) bool {
		return r.HospitalID == hospitalID && r.BloodType == entity.BloodTypeABPos &&
			r.Status == entity.RequestStatusPending && r.RecipientID == ""
	})).Return(nil)

	neededBy := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	out, err := f.uc.Create(ctx,
		dto.Actor{UserID: "staff-1", HospitalID: hospitalID, Role: entity.RoleHospitalStaff},
		dto.CreateBloodRequestRequest{BloodType: "ab+", UnitsNeeded: 2, Urgency: "critical", NeededBy: &neededBy},
	)
	require.NoError(t, err)
	assert.Equal(t, "AB+", out.BloodType)
	assert.Equal(t, neededBy, out.NeededBy)
	assert.Equal(t, []string{}, out.MatchedUnitIDs)
}

func TestCreate_HospitalNoVerificado(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.hospitals.On("GetByID", ctx, hospitalID).Return(&entity.Hospital{ID: hospitalID, Status: entity.HospitalStatusPending}, nil)

	_, err := f.uc.Create(ctx,
		dto.Actor{UserID: "staff-1", HospitalID: hospitalID, Role: entity.RoleHospitalAdmin},
		dto.CreateBloodRequestRequest{BloodType: "O-", UnitsNeeded: 1, Urgency: "low"},
	)
	assert.ErrorIs(t, err, domain.ErrHospitalNotActive)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	f := newFixture(true)
	actor := dto.Actor{UserID: "staff-1", HospitalID: hospitalID, Role: entity.RoleHospitalStaff}

	_, err := f.uc.Create(context.Background(), actor, dto.CreateBloodRequestRequest{BloodType: "C+", UnitsNeeded: 1, Urgency: "low"})
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)

	_, err = f.uc.Create(context.Background(), actor, dto.CreateBloodRequestRequest{BloodType: "A+", UnitsNeeded: 0, Urgency: "low"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), actor, dto.CreateBloodRequestRequest{BloodType: "A+", UnitsNeeded: 1, Urgency: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DonanteNoPuede(t *testing.T) {
	f := newFixture(true)
	_, err := f.uc.Create(context.Background(),
		dto.Actor{UserID: "d-1", Role: entity.RoleDonor},
		dto.CreateBloodRequestRequest{BloodType: "A+", UnitsNeeded: 1, Urgency: "low"},
	)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_StaffFiltraPorSuHospital(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	f.reqRepo.On("List", ctx, repository.RequestFilter{
		HospitalID: hospitalID, Urgency: entity.UrgencyCritical, Search: "dr. gómez", Limit: 20,
	}).Return([]*entity.BloodRequest{pendingRequest(entity.BloodTypeAPos, 1)}, nil)

	out, err := f.uc.List(ctx,
		dto.Actor{UserID: "staff-1", HospitalID: hospitalID, Role: entity.RoleHospitalStaff},
		dto.RequestListQuery{Urgency: "critical", Search: "  Dr.  Gómez"},
	)
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	f.reqRepo.AssertExpectations(t)
}

func TestList_PaginaLlenaCuentaTotal(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	filter := repository.RequestFilter{HospitalID: hospitalID, Limit: 2, Offset: 2}
	f.reqRepo.On("List", ctx, filter).Return([]*entity.BloodRequest{
		pendingRequest(entity.BloodTypeAPos, 1),
		pendingRequest(entity.BloodTypeONeg, 1),
	}, nil)
	f.reqRepo.On("Count", ctx, filter).Return(7, nil)

	out, err := f.uc.List(ctx,
		dto.Actor{UserID: "staff-1", HospitalID: hospitalID, Role: entity.RoleHospitalStaff},
		dto.RequestListQuery{PageRequest: dto.PageRequest{Limit: 2, Offset: 2}},
	)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 2, Total: 7}, out.Page)
	f.reqRepo.AssertExpectations(t)
}

func TestGet_ReceptorAjeno(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	req := pendingRequest(entity.BloodTypeAPos, 1)
	req.RecipientID = "rec-2"
	f.reqRepo.On("GetByID", ctx, "r-1").Return(req, nil)
	f.recipients.On("GetByUserID", ctx, "u-9").Return(&entity.Recipient{ID: "rec-1"}, nil)

	_, err := f.uc.Get(ctx, dto.Actor{UserID: "u-9", Role: entity.RoleRecipient}, "r-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMatch_ErrorDeRepositorioSePropaga(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()
	boom := errors.New("db caída")
	f.reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(nil, boom)

	_, err := f.uc.Match(ctx, hospitalID, "staff-1", "r-1")
	assert.ErrorIs(t, err, boom)
}
