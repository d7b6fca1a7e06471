package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `id, donor_id, hospital_id, appointment_date, status, confirmed_by, confirmed_at, notes, created_at, updated_at`

// AppointmentRepo implementación del puerto AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Acepta pool o tx.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

// Create persiste una cita nueva.
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `INSERT INTO donation_appointments (` + appointmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.DonorID, a.HospitalID, a.AppointmentDate, a.Status,
		nullString(a.ConfirmedBy), a.ConfirmedAt, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM donation_appointments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// Update persiste fecha, estado, confirmación y notas.
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE donation_appointments SET appointment_date = $2, status = $3, confirmed_by = $4,
		       confirmed_at = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.AppointmentDate, a.Status, nullString(a.ConfirmedBy), a.ConfirmedAt, a.Notes, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por hospital, donante y estado; ordena por fecha de la cita.
func (r *AppointmentRepo) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	w := appointmentWhere(f)
	query := `SELECT ` + appointmentColumns + ` FROM donation_appointments` + w.sql() +
		` ORDER BY appointment_date ASC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count total de citas que cumplen el filtro, sin paginar.
func (r *AppointmentRepo) Count(ctx context.Context, f repository.AppointmentFilter) (int, error) {
	w := appointmentWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM donation_appointments`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

func appointmentWhere(f repository.AppointmentFilter) whereBuilder {
	var w whereBuilder
	if f.HospitalID != "" {
		w.add("hospital_id = ?", f.HospitalID)
	}
	if f.DonorID != "" {
		w.add("donor_id = ?", f.DonorID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	return w
}

func scanAppointment(row pgxScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	var status string
	var confirmedBy *string
	if err := row.Scan(
		&a.ID, &a.DonorID, &a.HospitalID, &a.AppointmentDate, &status,
		&confirmedBy, &a.ConfirmedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = entity.AppointmentStatus(status)
	a.ConfirmedBy = derefString(confirmedBy)
	return &a, nil
}
