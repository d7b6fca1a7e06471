// Package mocks implementaciones testify/mock de los puertos de repositorio.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.HospitalRepository     = (*HospitalRepository)(nil)
	_ repository.DonorRepository        = (*DonorRepository)(nil)
	_ repository.RecipientRepository    = (*RecipientRepository)(nil)
	_ repository.AppointmentRepository  = (*AppointmentRepository)(nil)
	_ repository.InventoryRepository    = (*InventoryRepository)(nil)
	_ repository.BloodRequestRepository = (*BloodRequestRepository)(nil)
	_ repository.ReportRepository       = (*ReportRepository)(nil)
)

// ── Users ────────────────────────────────────────────────────────────────────

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) ListByHospital(ctx context.Context, hospitalID string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, hospitalID, limit, offset)
	l, _ := args.Get(0).([]*entity.User)
	return l, args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(map[string]int)
	return c, args.Error(1)
}

// ── Hospitals ────────────────────────────────────────────────────────────────

type HospitalRepository struct{ mock.Mock }

func (m *HospitalRepository) Create(ctx context.Context, h *entity.Hospital) error {
	return m.Called(ctx, h).Error(0)
}

func (m *HospitalRepository) GetByID(ctx context.Context, id string) (*entity.Hospital, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*entity.Hospital)
	return h, args.Error(1)
}

func (m *HospitalRepository) Update(ctx context.Context, h *entity.Hospital) error {
	return m.Called(ctx, h).Error(0)
}

func (m *HospitalRepository) UpdateStatus(ctx context.Context, id string, status entity.HospitalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *HospitalRepository) List(ctx context.Context, status entity.HospitalStatus, limit, offset int) ([]*entity.Hospital, error) {
	args := m.Called(ctx, status, limit, offset)
	l, _ := args.Get(0).([]*entity.Hospital)
	return l, args.Error(1)
}

func (m *HospitalRepository) Count(ctx context.Context, status entity.HospitalStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *HospitalRepository) CountByStatus(ctx context.Context) (map[entity.HospitalStatus]int, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(map[entity.HospitalStatus]int)
	return c, args.Error(1)
}

// ── Donors / Recipients ──────────────────────────────────────────────────────

type DonorRepository struct{ mock.Mock }

func (m *DonorRepository) Create(ctx context.Context, d *entity.Donor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DonorRepository) GetByID(ctx context.Context, id string) (*entity.Donor, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.Donor)
	return d, args.Error(1)
}

func (m *DonorRepository) GetByUserID(ctx context.Context, userID string) (*entity.Donor, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*entity.Donor)
	return d, args.Error(1)
}

func (m *DonorRepository) Update(ctx context.Context, d *entity.Donor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DonorRepository) UpdateLastDonation(ctx context.Context, donorID string, date time.Time) error {
	return m.Called(ctx, donorID, date).Error(0)
}

func (m *DonorRepository) List(ctx context.Context, f repository.ProfileFilter) ([]*entity.Donor, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.Donor)
	return l, args.Error(1)
}

func (m *DonorRepository) Count(ctx context.Context, f repository.ProfileFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

type RecipientRepository struct{ mock.Mock }

func (m *RecipientRepository) Create(ctx context.Context, r *entity.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RecipientRepository) GetByID(ctx context.Context, id string) (*entity.Recipient, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Recipient)
	return r, args.Error(1)
}

func (m *RecipientRepository) GetByUserID(ctx context.Context, userID string) (*entity.Recipient, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*entity.Recipient)
	return r, args.Error(1)
}

func (m *RecipientRepository) Update(ctx context.Context, r *entity.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *RecipientRepository) List(ctx context.Context, f repository.ProfileFilter) ([]*entity.Recipient, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.Recipient)
	return l, args.Error(1)
}

func (m *RecipientRepository) Count(ctx context.Context, f repository.ProfileFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

// ── Appointments ─────────────────────────────────────────────────────────────

type AppointmentRepository struct{ mock.Mock }

func (m *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Appointment)
	return a, args.Error(1)
}

func (m *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AppointmentRepository) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.Appointment)
	return l, args.Error(1)
}

func (m *AppointmentRepository) Count(ctx context.Context, f repository.AppointmentFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

// ── Inventory ────────────────────────────────────────────────────────────────

type InventoryRepository struct{ mock.Mock }

func (m *InventoryRepository) Create(ctx context.Context, u *entity.InventoryUnit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *InventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryUnit, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.InventoryUnit)
	return u, args.Error(1)
}

func (m *InventoryRepository) UpdateStatus(ctx context.Context, id string, status entity.UnitStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *InventoryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *InventoryRepository) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryUnit, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.InventoryUnit)
	return l, args.Error(1)
}

func (m *InventoryRepository) Count(ctx context.Context, f repository.InventoryFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *InventoryRepository) ListAvailable(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	args := m.Called(ctx, hospitalID)
	l, _ := args.Get(0).([]entity.InventoryUnit)
	return l, args.Error(1)
}

func (m *InventoryRepository) ListAvailableForUpdate(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	args := m.Called(ctx, hospitalID)
	l, _ := args.Get(0).([]entity.InventoryUnit)
	return l, args.Error(1)
}

func (m *InventoryRepository) ReserveUnits(ctx context.Context, requestID string, ids []string) (int64, error) {
	args := m.Called(ctx, requestID, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *InventoryRepository) ReleaseUnits(ctx context.Context, requestID string, ids []string) (int64, error) {
	args := m.Called(ctx, requestID, ids)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

func (m *InventoryRepository) ExpireOverdue(ctx context.Context, hospitalID string, now time.Time) (int64, error) {
	args := m.Called(ctx, hospitalID, now)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// ── Requests ─────────────────────────────────────────────────────────────────

type BloodRequestRepository struct{ mock.Mock }

func (m *BloodRequestRepository) Create(ctx context.Context, r *entity.BloodRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *BloodRequestRepository) GetByID(ctx context.Context, id string) (*entity.BloodRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.BloodRequest)
	return r, args.Error(1)
}

func (m *BloodRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.BloodRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.BloodRequest)
	return r, args.Error(1)
}

func (m *BloodRequestRepository) Update(ctx context.Context, r *entity.BloodRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *BloodRequestRepository) List(ctx context.Context, f repository.RequestFilter) ([]*entity.BloodRequest, error) {
	args := m.Called(ctx, f)
	l, _ := args.Get(0).([]*entity.BloodRequest)
	return l, args.Error(1)
}

func (m *BloodRequestRepository) Count(ctx context.Context, f repository.RequestFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

// ── Reports ──────────────────────────────────────────────────────────────────

type ReportRepository struct{ mock.Mock }

func (m *ReportRepository) HospitalSnapshot(ctx context.Context, hospitalID string, now time.Time) (*repository.HospitalSnapshot, error) {
	args := m.Called(ctx, hospitalID, now)
	s, _ := args.Get(0).(*repository.HospitalSnapshot)
	return s, args.Error(1)
}

func (m *ReportRepository) PlatformSnapshot(ctx context.Context) (*repository.PlatformSnapshot, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*repository.PlatformSnapshot)
	return s, args.Error(1)
}
