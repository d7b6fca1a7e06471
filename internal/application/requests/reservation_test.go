package requests_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository/mocks"
)

// memInventory replica en memoria las condiciones de las sentencias SQL de reserva y liberación.
type memInventory struct {
	units       map[string]*entity.InventoryUnit
	reservedFor map[string]string
}

var _ repository.InventoryRepository = (*memInventory)(nil)

func newMemInventory(units ...entity.InventoryUnit) *memInventory {
	m := &memInventory{units: map[string]*entity.InventoryUnit{}, reservedFor: map[string]string{}}
	for i := range units {
		u := units[i]
		m.units[u.ID] = &u
	}
	return m
}

func (m *memInventory) status(id string) entity.UnitStatus { return m.units[id].Status }

func (m *memInventory) Create(_ context.Context, u *entity.InventoryUnit) error {
	m.units[u.ID] = u
	return nil
}

func (m *memInventory) GetByID(_ context.Context, id string) (*entity.InventoryUnit, error) {
	return m.units[id], nil
}

func (m *memInventory) UpdateStatus(_ context.Context, id string, status entity.UnitStatus) error {
	u, ok := m.units[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = status
	if status != entity.UnitStatusReserved {
		delete(m.reservedFor, id)
	}
	return nil
}

func (m *memInventory) Delete(_ context.Context, id string) error {
	delete(m.units, id)
	return nil
}

func (m *memInventory) List(context.Context, repository.InventoryFilter) ([]*entity.InventoryUnit, error) {
	return nil, nil
}

func (m *memInventory) Count(context.Context, repository.InventoryFilter) (int, error) {
	return len(m.units), nil
}

func (m *memInventory) ListAvailable(_ context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	var list []entity.InventoryUnit
	for _, u := range m.units {
		if u.HospitalID == hospitalID && u.Status == entity.UnitStatusAvailable {
			list = append(list, *u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ExpiryDate.Before(list[j].ExpiryDate) })
	return list, nil
}

func (m *memInventory) ListAvailableForUpdate(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	return m.ListAvailable(ctx, hospitalID)
}

func (m *memInventory) ReserveUnits(_ context.Context, requestID string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := m.units[id]; ok && u.Status == entity.UnitStatusAvailable {
			u.Status = entity.UnitStatusReserved
			m.reservedFor[id] = requestID
			n++
		}
	}
	return n, nil
}

func (m *memInventory) ReleaseUnits(_ context.Context, requestID string, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		u, ok := m.units[id]
		if ok && u.Status == entity.UnitStatusReserved && m.reservedFor[id] == requestID {
			u.Status = entity.UnitStatusAvailable
			delete(m.reservedFor, id)
			n++
		}
	}
	return n, nil
}

func (m *memInventory) ExpireOverdue(context.Context, string, time.Time) (int64, error) {
	return 0, nil
}

type memTx struct {
	requests  *mocks.BloodRequestRepository
	inventory *memInventory
}

func (t *memTx) Run(_ context.Context, fn func(repository.BloodRequestRepository, repository.InventoryRepository) error) error {
	return fn(t.requests, t.inventory)
}

func newMemFixture(units ...entity.InventoryUnit) (*requests.RequestUseCase, *mocks.BloodRequestRepository, *memInventory) {
	reqRepo := &mocks.BloodRequestRepository{}
	inv := newMemInventory(units...)
	reqRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := requests.NewRequestUseCase(reqRepo, inv, &mocks.RecipientRepository{}, &mocks.HospitalRepository{},
		&memTx{requests: reqRepo, inventory: inv}, nil, requests.Config{ReserveUnits: true}, nil)
	return uc, reqRepo, inv
}

func expiringUnit(id string, bt entity.BloodType, days int) entity.InventoryUnit {
	u := unit(id, bt, 1)
	u.ExpiryDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return u
}

var cancel = dto.UpdateRequestStatusRequest{Status: "cancelled"}

func TestCancelar_NoResucitaUnidadesUsadasOVencidas(t *testing.T) {
	uc, reqRepo, inv := newMemFixture(
		expiringUnit("u1", entity.BloodTypeAPos, 1),
		expiringUnit("u2", entity.BloodTypeAPos, 2),
		expiringUnit("u3", entity.BloodTypeBPos, 3),
	)
	ctx := context.Background()
	reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(pendingRequest(entity.BloodTypeAPos, 2), nil)

	out, err := uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, out.MatchedUnitIDs)
	assert.Equal(t, entity.UnitStatusReserved, inv.status("u1"))
	assert.Equal(t, entity.UnitStatusReserved, inv.status("u2"))

	// transfundida y vencida por el barrido
	require.NoError(t, inv.UpdateStatus(ctx, "u1", entity.UnitStatusUsed))
	inv.units["u2"].Status = entity.UnitStatusExpired

	res, err := uc.UpdateStatus(ctx, hospitalID, "staff-1", "r-1", cancel)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)
	assert.Equal(t, entity.UnitStatusUsed, inv.status("u1"))
	assert.Equal(t, entity.UnitStatusExpired, inv.status("u2"))
	assert.Equal(t, entity.UnitStatusAvailable, inv.status("u3"))
}

func TestCancelar_NoLiberaReservaDeOtraSolicitud(t *testing.T) {
	uc, reqRepo, inv := newMemFixture(expiringUnit("u1", entity.BloodTypeONeg, 5))
	ctx := context.Background()
	first := pendingRequest(entity.BloodTypeAPos, 1)
	second := pendingRequest(entity.BloodTypeBPos, 1)
	second.ID = "r-2"
	reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(first, nil)
	reqRepo.On("GetByIDForUpdate", ctx, "r-2").Return(second, nil)

	_, err := uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)

	// el personal libera a mano y la segunda solicitud toma la unidad
	require.NoError(t, inv.UpdateStatus(ctx, "u1", entity.UnitStatusAvailable))
	out, err := uc.Match(ctx, hospitalID, "staff-1", "r-2")
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, out.MatchedUnitIDs)

	_, err = uc.UpdateStatus(ctx, hospitalID, "staff-1", "r-1", cancel)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitStatusReserved, inv.status("u1"))
	assert.Equal(t, "r-2", inv.reservedFor["u1"])

	_, err = uc.UpdateStatus(ctx, hospitalID, "staff-1", "r-2", cancel)
	require.NoError(t, err)
	assert.Equal(t, entity.UnitStatusAvailable, inv.status("u1"))
}

func TestMatch_NoReservaUnidadYaTomada(t *testing.T) {
	uc, reqRepo, inv := newMemFixture(expiringUnit("u1", entity.BloodTypeAPos, 1))
	ctx := context.Background()
	reqRepo.On("GetByIDForUpdate", ctx, "r-1").Return(pendingRequest(entity.BloodTypeAPos, 1), nil)

	n, err := inv.ReserveUnits(ctx, "r-9", []string{"u1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	out, err := uc.Match(ctx, hospitalID, "staff-1", "r-1")
	require.NoError(t, err)
	assert.Equal(t, "unavailable", out.Outcome)
	assert.Equal(t, "r-9", inv.reservedFor["u1"])
}
