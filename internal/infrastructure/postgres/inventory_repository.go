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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, hospital_id, donor_id, blood_type, quantity_units, batch_number, storage_location,
	collection_date, expiry_date, status, notes, created_at, updated_at`

// InventoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste una unidad de sangre.
func (r *InventoryRepo) Create(ctx context.Context, u *entity.InventoryUnit) error {
	query := `INSERT INTO blood_inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.HospitalID, nullString(u.DonorID), u.BloodType, u.QuantityUnits, u.BatchNumber,
		u.StorageLocation, u.CollectionDate, u.ExpiryDate, u.Status, u.Notes, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create inventory unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryUnit, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM blood_inventory WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory unit: %w", err)
	}
	return u, nil
}

// UpdateStatus cambia el estado de una unidad.
func (r *InventoryRepo) UpdateStatus(ctx context.Context, id string, status entity.UnitStatus) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE blood_inventory
		SET status = $2,
		    reserved_for = CASE WHEN $2 = 'reserved' THEN reserved_for END,
		    updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update inventory status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una unidad.
func (r *InventoryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM blood_inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por hospital, grupo, estado y texto libre; ordena por vencimiento.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryUnit, error) {
	w := inventoryWhere(f)
	query := `SELECT ` + inventoryColumns + ` FROM blood_inventory` + w.sql() +
		` ORDER BY expiry_date ASC, id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count total de unidades que cumplen el filtro, sin paginar.
func (r *InventoryRepo) Count(ctx context.Context, f repository.InventoryFilter) (int, error) {
	w := inventoryWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM blood_inventory`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory: %w", err)
	}
	return n, nil
}

func inventoryWhere(f repository.InventoryFilter) whereBuilder {
	var w whereBuilder
	if f.HospitalID != "" {
		w.add("hospital_id = ?", f.HospitalID)
	}
	if f.BloodType != "" {
		w.add("blood_type = ?", f.BloodType)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Search != "" {
		w.add("(batch_number ILIKE ? OR storage_location ILIKE ? OR notes ILIKE ?)", "%"+f.Search+"%")
	}
	return w
}

// ListAvailable unidades available del hospital en orden FEFO (primero la que vence antes).
func (r *InventoryRepo) ListAvailable(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	return r.listAvailable(ctx, hospitalID, "")
}

// ListAvailableForUpdate igual que ListAvailable pero bloquea las filas hasta el Commit.
func (r *InventoryRepo) ListAvailableForUpdate(ctx context.Context, hospitalID string) ([]entity.InventoryUnit, error) {
	return r.listAvailable(ctx, hospitalID, " FOR UPDATE")
}

func (r *InventoryRepo) listAvailable(ctx context.Context, hospitalID, lock string) ([]entity.InventoryUnit, error) {
	query := `SELECT ` + inventoryColumns + ` FROM blood_inventory
		WHERE hospital_id = $1 AND status = 'available'
		ORDER BY expiry_date ASC, id` + lock
	rows, err := r.q.Query(ctx, query, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("list available units: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryUnit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory unit: %w", err)
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

// ReserveUnits reserva para requestID las unidades que siguen available.
func (r *InventoryRepo) ReserveUnits(ctx context.Context, requestID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE blood_inventory SET status = 'reserved', reserved_for = $2, updated_at = now()
		WHERE id = ANY($1::uuid[]) AND status = 'available'`, ids, requestID)
	if err != nil {
		return 0, fmt.Errorf("reserve inventory units: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ReleaseUnits libera solo lo que sigue reservado para requestID.
func (r *InventoryRepo) ReleaseUnits(ctx context.Context, requestID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE blood_inventory SET status = 'available', reserved_for = NULL, updated_at = now()
		WHERE id = ANY($1::uuid[]) AND status = 'reserved' AND reserved_for = $2`, ids, requestID)
	if err != nil {
		return 0, fmt.Errorf("release inventory units: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ExpireOverdue marca expired lo vencido. hospitalID vacío = todos los hospitales.
func (r *InventoryRepo) ExpireOverdue(ctx context.Context, hospitalID string, now time.Time) (int64, error) {
	query := `
		UPDATE blood_inventory SET status = 'expired', reserved_for = NULL, updated_at = now()
		WHERE status IN ('available', 'reserved') AND expiry_date < $1
		  AND ($2 = '' OR hospital_id::text = $2)`
	tag, err := r.q.Exec(ctx, query, now, hospitalID)
	if err != nil {
		return 0, fmt.Errorf("expire overdue units: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanUnit(row pgxScanner) (*entity.InventoryUnit, error) {
	var u entity.InventoryUnit
	var donorID *string
	var bt, status string
	if err := row.Scan(
		&u.ID, &u.HospitalID, &donorID, &bt, &u.QuantityUnits, &u.BatchNumber, &u.StorageLocation,
		&u.CollectionDate, &u.ExpiryDate, &status, &u.Notes, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.DonorID = derefString(donorID)
	u.BloodType = entity.BloodType(bt)
	u.Status = entity.UnitStatus(status)
	return &u, nil
}
