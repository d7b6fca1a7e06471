package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var _ repository.BloodRequestRepository = (*BloodRequestRepo)(nil)

const requestColumns = `id, recipient_id, hospital_id, blood_type, units_needed, urgency, status, matched_unit_ids,
	doctor_name, doctor_contact, medical_reason, needed_by, assigned_staff_id, notes, created_at, updated_at`

// urgencyOrder critical primero; coincide con entity.Urgency.Rank.
const urgencyOrder = `CASE urgency WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END`

// BloodRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type BloodRequestRepo struct {
	q Querier
}

// NewBloodRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBloodRequestRepository(q Querier) *BloodRequestRepo {
	return &BloodRequestRepo{q: q}
}

// Create persiste una solicitud nueva.
func (r *BloodRequestRepo) Create(ctx context.Context, req *entity.BloodRequest) error {
	query := `INSERT INTO blood_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		req.ID, nullString(req.RecipientID), req.HospitalID, req.BloodType, req.UnitsNeeded, req.Urgency,
		req.Status, textArray(req.MatchedUnitIDs), req.DoctorName, req.DoctorContact, req.MedicalReason,
		nullTime(req.NeededBy), nullString(req.AssignedStaffID), req.Notes, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create blood request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *BloodRequestRepo) GetByID(ctx context.Context, id string) (*entity.BloodRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM blood_requests WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la solicitud y bloquea la fila (SELECT FOR UPDATE).
func (r *BloodRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.BloodRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM blood_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *BloodRequestRepo) getOne(ctx context.Context, query, id string) (*entity.BloodRequest, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blood request: %w", err)
	}
	return req, nil
}

// Update persiste el resultado de la asignación o del cambio manual.
func (r *BloodRequestRepo) Update(ctx context.Context, req *entity.BloodRequest) error {
	query := `
		UPDATE blood_requests SET status = $2, matched_unit_ids = $3, assigned_staff_id = $4,
		       notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		req.ID, req.Status, textArray(req.MatchedUnitIDs), nullString(req.AssignedStaffID), req.Notes, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update blood request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ordena por urgencia y luego por antigüedad.
func (r *BloodRequestRepo) List(ctx context.Context, f repository.RequestFilter) ([]*entity.BloodRequest, error) {
	w := requestWhere(f)
	query := `SELECT ` + requestColumns + ` FROM blood_requests` + w.sql() +
		` ORDER BY ` + urgencyOrder + `, created_at ASC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list blood requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.BloodRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blood request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Count total de solicitudes que cumplen el filtro, sin paginar.
func (r *BloodRequestRepo) Count(ctx context.Context, f repository.RequestFilter) (int, error) {
	w := requestWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM blood_requests`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blood requests: %w", err)
	}
	return n, nil
}

func requestWhere(f repository.RequestFilter) whereBuilder {
	var w whereBuilder
	if f.HospitalID != "" {
		w.add("hospital_id = ?", f.HospitalID)
	}
	if f.RecipientID != "" {
		w.add("recipient_id = ?", f.RecipientID)
	}
	if f.BloodType != "" {
		w.add("blood_type = ?", f.BloodType)
	}
	if f.Urgency != "" {
		w.add("urgency = ?", f.Urgency)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Search != "" {
		w.add("(doctor_name ILIKE ? OR medical_reason ILIKE ?)", "%"+f.Search+"%")
	}
	return w
}

func scanRequest(row pgxScanner) (*entity.BloodRequest, error) {
	var req entity.BloodRequest
	var recipientID, staffID *string
	var bt, urgency, status string
	var neededBy *time.Time
	if err := row.Scan(
		&req.ID, &recipientID, &req.HospitalID, &bt, &req.UnitsNeeded, &urgency, &status, &req.MatchedUnitIDs,
		&req.DoctorName, &req.DoctorContact, &req.MedicalReason, &neededBy, &staffID, &req.Notes,
		&req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	req.RecipientID = derefString(recipientID)
	req.AssignedStaffID = derefString(staffID)
	req.BloodType = entity.BloodType(bt)
	req.Urgency = entity.Urgency(urgency)
	req.Status = entity.RequestStatus(status)
	req.NeededBy = derefTime(neededBy)
	return &req, nil
}
