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

var _ repository.HospitalRepository = (*HospitalRepo)(nil)

const hospitalColumns = `id, name, license_number, address, city, state, postal_code, phone, email, website,
	services, status, admin_user_id, created_at, updated_at`

// HospitalRepo implementación del puerto HospitalRepository sobre PostgreSQL.
type HospitalRepo struct {
	q Querier
}

// NewHospitalRepository construye el adaptador. Acepta pool o tx.
func NewHospitalRepository(q Querier) *HospitalRepo {
	return &HospitalRepo{q: q}
}

// Create persiste un hospital nuevo.
func (r *HospitalRepo) Create(ctx context.Context, h *entity.Hospital) error {
	query := `
		INSERT INTO hospitals (` + hospitalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.Name, h.LicenseNumber, h.Address, h.City, h.State, h.PostalCode,
		h.Phone, h.Email, h.Website, textArray(h.Services), h.Status, nullString(h.AdminUserID),
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert hospital: %w", err)
	}
	return nil
}

// GetByID obtiene un hospital por ID.
func (r *HospitalRepo) GetByID(ctx context.Context, id string) (*entity.Hospital, error) {
	h, err := scanHospital(r.q.QueryRow(ctx, `SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hospital: %w", err)
	}
	return h, nil
}

// Update actualiza los datos de perfil (no el estado).
func (r *HospitalRepo) Update(ctx context.Context, h *entity.Hospital) error {
	query := `
		UPDATE hospitals SET name = $2, license_number = $3, address = $4, city = $5, state = $6,
		       postal_code = $7, phone = $8, email = $9, website = $10, services = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		h.ID, h.Name, h.LicenseNumber, h.Address, h.City, h.State, h.PostalCode,
		h.Phone, h.Email, h.Website, textArray(h.Services), h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update hospital: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de verificación.
func (r *HospitalRepo) UpdateStatus(ctx context.Context, id string, status entity.HospitalStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE hospitals SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update hospital status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista hospitales, opcionalmente filtrados por estado.
func (r *HospitalRepo) List(ctx context.Context, status entity.HospitalStatus, limit, offset int) ([]*entity.Hospital, error) {
	var w whereBuilder
	if status != "" {
		w.add("status = ?", status)
	}
	query := `SELECT ` + hospitalColumns + ` FROM hospitals` + w.sql() + ` ORDER BY name` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// Count hospitales con el estado dado; vacío = todos.
func (r *HospitalRepo) Count(ctx context.Context, status entity.HospitalStatus) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM hospitals WHERE ($1 = '' OR status = $1)`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hospitals: %w", err)
	}
	return n, nil
}

// CountByStatus conteo de hospitales por estado.
func (r *HospitalRepo) CountByStatus(ctx context.Context) (map[entity.HospitalStatus]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM hospitals GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count hospitals: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.HospitalStatus]int)
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan hospital count: %w", err)
		}
		out[entity.HospitalStatus(st)] = n
	}
	return out, rows.Err()
}

func scanHospital(row pgxScanner) (*entity.Hospital, error) {
	var h entity.Hospital
	var status string
	var adminID *string
	if err := row.Scan(
		&h.ID, &h.Name, &h.LicenseNumber, &h.Address, &h.City, &h.State, &h.PostalCode,
		&h.Phone, &h.Email, &h.Website, &h.Services, &status, &adminID, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	h.Status = entity.HospitalStatus(status)
	h.AdminUserID = derefString(adminID)
	return &h, nil
}
