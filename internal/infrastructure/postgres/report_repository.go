package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para dashboards.
type ReportRepo struct {
	pool             *pgxpool.Pool
	expiringSoonDays int
}

// NewReportRepository construye el adaptador. expiringSoonDays define la ventana "por vencer".
func NewReportRepository(pool *pgxpool.Pool, expiringSoonDays int) *ReportRepo {
	if expiringSoonDays <= 0 {
		expiringSoonDays = 7
	}
	return &ReportRepo{pool: pool, expiringSoonDays: expiringSoonDays}
}

// HospitalSnapshot ejecuta las consultas del dashboard en un solo round-trip (pgx.Batch).
func (r *ReportRepo) HospitalSnapshot(ctx context.Context, hospitalID string, now time.Time) (*repository.HospitalSnapshot, error) {
	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT blood_type,
		       COALESCE(SUM(quantity_units) FILTER (WHERE status = 'available'), 0),
		       COALESCE(SUM(quantity_units) FILTER (WHERE status = 'reserved'), 0)
		FROM blood_inventory
		WHERE hospital_id = $1 AND status IN ('available', 'reserved')
		GROUP BY blood_type`, hospitalID)
	batch.Queue(`
		SELECT COALESCE(SUM(quantity_units) FILTER (WHERE status = 'available' AND expiry_date BETWEEN $2 AND $3), 0),
		       COALESCE(SUM(quantity_units) FILTER (WHERE status = 'used'), 0)
		FROM blood_inventory WHERE hospital_id = $1`,
		hospitalID, now, now.AddDate(0, 0, r.expiringSoonDays))
	batch.Queue(`
		SELECT COUNT(*) FILTER (WHERE status IN ('scheduled', 'confirmed', 'rescheduled')),
		       COUNT(*) FILTER (WHERE status = 'completed')
		FROM donation_appointments WHERE hospital_id = $1`, hospitalID)
	batch.Queue(`
		SELECT status, urgency, COUNT(*)
		FROM blood_requests WHERE hospital_id = $1
		GROUP BY status, urgency`, hospitalID)

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	snap := &repository.HospitalSnapshot{
		RequestsByStatus:  make(map[entity.RequestStatus]int),
		RequestsByUrgency: make(map[entity.Urgency]int),
	}

	// 1. Stock por grupo
	rows, err := br.Query()
	if err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot stock: %w", err)
	}
	for rows.Next() {
		var bt string
		var s repository.BloodTypeStock
		if err := rows.Scan(&bt, &s.Available, &s.Reserved); err != nil {
			rows.Close()
			return nil, fmt.Errorf("report.HospitalSnapshot scan stock: %w", err)
		}
		s.BloodType = entity.BloodType(bt)
		snap.ByBloodType = append(snap.ByBloodType, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot stock: %w", err)
	}

	// 2. Por vencer + usadas
	if err := br.QueryRow().Scan(&snap.ExpiringSoon, &snap.UsedUnits); err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot vencimientos: %w", err)
	}

	// 3. Citas
	if err := br.QueryRow().Scan(&snap.PendingAppointments, &snap.CompletedDonations); err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot citas: %w", err)
	}

	// 4. Solicitudes
	rows, err = br.Query()
	if err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot solicitudes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status, urgency string
		var n int
		if err := rows.Scan(&status, &urgency, &n); err != nil {
			return nil, fmt.Errorf("report.HospitalSnapshot scan solicitudes: %w", err)
		}
		st := entity.RequestStatus(status)
		snap.RequestsByStatus[st] += n
		if st.Open() {
			snap.RequestsByUrgency[entity.Urgency(urgency)] += n
			snap.PendingRequests += n
			if entity.Urgency(urgency) == entity.UrgencyCritical {
				snap.CriticalPending += n
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report.HospitalSnapshot solicitudes: %w", err)
	}
	return snap, nil
}

// PlatformSnapshot actividad global.
func (r *ReportRepo) PlatformSnapshot(ctx context.Context) (*repository.PlatformSnapshot, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM donation_appointments WHERE status = 'completed'),
	    (SELECT COUNT(*) FROM blood_requests WHERE status IN ('pending', 'assigned')),
	    (SELECT COALESCE(SUM(quantity_units), 0) FROM blood_inventory WHERE status = 'available')`
	var snap repository.PlatformSnapshot
	if err := r.pool.QueryRow(ctx, query).Scan(&snap.CompletedDonations, &snap.OpenRequests, &snap.UnitsAvailable); err != nil {
		return nil, fmt.Errorf("report.PlatformSnapshot: %w", err)
	}
	return &snap, nil
}
