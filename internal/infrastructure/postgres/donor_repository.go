package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

var (
	_ repository.DonorRepository     = (*DonorRepo)(nil)
	_ repository.RecipientRepository = (*RecipientRepo)(nil)
)

const donorColumns = `id, user_id, blood_type, date_of_birth, weight_kg, is_eligible, last_donation_date,
	medical_conditions, emergency_contact_name, emergency_contact_phone, created_at, updated_at`

const donorListColumns = `d.id, d.user_id, d.blood_type, d.date_of_birth, d.weight_kg, d.is_eligible,
	d.last_donation_date, d.medical_conditions, d.emergency_contact_name, d.emergency_contact_phone,
	d.created_at, d.updated_at, u.full_name, u.email, u.phone`

// DonorRepo implementación del puerto DonorRepository sobre PostgreSQL.
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador. Acepta pool o tx.
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

// Create persiste el perfil de donante (uno por usuario).
func (r *DonorRepo) Create(ctx context.Context, d *entity.Donor) error {
	query := `INSERT INTO donors (` + donorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.UserID, d.BloodType, d.DateOfBirth, decimal.NewFromFloat(d.WeightKg).Round(1), d.IsEligible,
		d.LastDonationDate, textArray(d.MedicalConditions), d.EmergencyContactName, d.EmergencyContactPhone,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

// GetByID obtiene un donante por ID.
func (r *DonorRepo) GetByID(ctx context.Context, id string) (*entity.Donor, error) {
	return r.getOne(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
}

// GetByUserID obtiene el perfil de donante de un usuario.
func (r *DonorRepo) GetByUserID(ctx context.Context, userID string) (*entity.Donor, error) {
	return r.getOne(ctx, `SELECT `+donorColumns+` FROM donors WHERE user_id = $1`, userID)
}

func (r *DonorRepo) getOne(ctx context.Context, query string, arg string) (*entity.Donor, error) {
	d, err := scanDonor(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return d, nil
}

// Update actualiza el perfil completo.
func (r *DonorRepo) Update(ctx context.Context, d *entity.Donor) error {
	query := `
		UPDATE donors SET blood_type = $2, date_of_birth = $3, weight_kg = $4, is_eligible = $5,
		       last_donation_date = $6, medical_conditions = $7, emergency_contact_name = $8,
		       emergency_contact_phone = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.BloodType, d.DateOfBirth, decimal.NewFromFloat(d.WeightKg).Round(1), d.IsEligible,
		d.LastDonationDate, textArray(d.MedicalConditions), d.EmergencyContactName, d.EmergencyContactPhone,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update donor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLastDonation registra la fecha de la última donación completada.
func (r *DonorRepo) UpdateLastDonation(ctx context.Context, donorID string, date time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE donors SET last_donation_date = $2, updated_at = now() WHERE id = $1`, donorID, date)
	if err != nil {
		return fmt.Errorf("update last donation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List donantes con datos de contacto del usuario, ordenados por nombre.
func (r *DonorRepo) List(ctx context.Context, f repository.ProfileFilter) ([]*entity.Donor, error) {
	w := donorWhere(f)
	query := `SELECT ` + donorListColumns + ` FROM donors d JOIN users u ON u.id = d.user_id` + w.sql() +
		` ORDER BY u.full_name, d.id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Donor
	for rows.Next() {
		var c entity.Contact
		d, err := scanDonor(rows, &c.FullName, &c.Email, &c.Phone)
		if err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		d.Contact = c
		list = append(list, d)
	}
	return list, rows.Err()
}

// Count total de donantes que cumplen el filtro.
func (r *DonorRepo) Count(ctx context.Context, f repository.ProfileFilter) (int, error) {
	w := donorWhere(f)
	var n int
	query := `SELECT COUNT(*) FROM donors d JOIN users u ON u.id = d.user_id` + w.sql()
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count donors: %w", err)
	}
	return n, nil
}

func donorWhere(f repository.ProfileFilter) whereBuilder {
	w := profileWhere("d", f)
	if f.EligibleOnly {
		w.add("d.is_eligible = ?", true)
	}
	return w
}

// profileWhere filtros comunes a donors y recipients; alias es el de la tabla del perfil.
func profileWhere(alias string, f repository.ProfileFilter) whereBuilder {
	var w whereBuilder
	if f.BloodType != "" {
		w.add(alias+".blood_type = ?", f.BloodType)
	}
	if f.Search != "" {
		w.add("(u.full_name ILIKE ? OR u.email ILIKE ? OR u.phone ILIKE ?)", "%"+f.Search+"%")
	}
	return w
}

func scanDonor(row pgxScanner, extra ...any) (*entity.Donor, error) {
	var d entity.Donor
	var bt string
	var weight decimal.Decimal
	dest := []any{
		&d.ID, &d.UserID, &bt, &d.DateOfBirth, &weight, &d.IsEligible, &d.LastDonationDate,
		&d.MedicalConditions, &d.EmergencyContactName, &d.EmergencyContactPhone, &d.CreatedAt, &d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	d.BloodType = entity.BloodType(bt)
	d.WeightKg = weight.InexactFloat64()
	return &d, nil
}

// ── Recipients ────────────────────────────────────────────────────────────────

const recipientColumns = `id, user_id, blood_type, date_of_birth, medical_conditions,
	emergency_contact_name, emergency_contact_phone, created_at, updated_at`

const recipientListColumns = `rc.id, rc.user_id, rc.blood_type, rc.date_of_birth, rc.medical_conditions,
	rc.emergency_contact_name, rc.emergency_contact_phone, rc.created_at, rc.updated_at,
	u.full_name, u.email, u.phone`

// RecipientRepo implementación del puerto RecipientRepository sobre PostgreSQL.
type RecipientRepo struct {
	q Querier
}

// NewRecipientRepository construye el adaptador. Acepta pool o tx.
func NewRecipientRepository(q Querier) *RecipientRepo {
	return &RecipientRepo{q: q}
}

// Create persiste el perfil de receptor.
func (r *RecipientRepo) Create(ctx context.Context, rc *entity.Recipient) error {
	query := `INSERT INTO recipients (` + recipientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rc.ID, rc.UserID, rc.BloodType, rc.DateOfBirth, textArray(rc.MedicalConditions),
		rc.EmergencyContactName, rc.EmergencyContactPhone, rc.CreatedAt, rc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipient: %w", err)
	}
	return nil
}

// GetByID obtiene un receptor por ID.
func (r *RecipientRepo) GetByID(ctx context.Context, id string) (*entity.Recipient, error) {
	return r.getOne(ctx, `SELECT `+recipientColumns+` FROM recipients WHERE id = $1`, id)
}

// GetByUserID obtiene el perfil de receptor de un usuario.
func (r *RecipientRepo) GetByUserID(ctx context.Context, userID string) (*entity.Recipient, error) {
	return r.getOne(ctx, `SELECT `+recipientColumns+` FROM recipients WHERE user_id = $1`, userID)
}

func (r *RecipientRepo) getOne(ctx context.Context, query string, arg string) (*entity.Recipient, error) {
	rc, err := scanRecipient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	return rc, nil
}

// List receptores con datos de contacto del usuario, ordenados por nombre.
func (r *RecipientRepo) List(ctx context.Context, f repository.ProfileFilter) ([]*entity.Recipient, error) {
	w := profileWhere("rc", f)
	query := `SELECT ` + recipientListColumns + ` FROM recipients rc JOIN users u ON u.id = rc.user_id` + w.sql() +
		` ORDER BY u.full_name, rc.id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipient
	for rows.Next() {
		var c entity.Contact
		rc, err := scanRecipient(rows, &c.FullName, &c.Email, &c.Phone)
		if err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		rc.Contact = c
		list = append(list, rc)
	}
	return list, rows.Err()
}

// Count total de receptores que cumplen el filtro.
func (r *RecipientRepo) Count(ctx context.Context, f repository.ProfileFilter) (int, error) {
	w := profileWhere("rc", f)
	var n int
	query := `SELECT COUNT(*) FROM recipients rc JOIN users u ON u.id = rc.user_id` + w.sql()
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipients: %w", err)
	}
	return n, nil
}

func scanRecipient(row pgxScanner, extra ...any) (*entity.Recipient, error) {
	var rc entity.Recipient
	var bt string
	dest := []any{
		&rc.ID, &rc.UserID, &bt, &rc.DateOfBirth, &rc.MedicalConditions,
		&rc.EmergencyContactName, &rc.EmergencyContactPhone, &rc.CreatedAt, &rc.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	rc.BloodType = entity.BloodType(bt)
	return &rc, nil
}

// Update actualiza el perfil completo.
func (r *RecipientRepo) Update(ctx context.Context, rc *entity.Recipient) error {
	query := `
		UPDATE recipients SET blood_type = $2, date_of_birth = $3, medical_conditions = $4,
		       emergency_contact_name = $5, emergency_contact_phone = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rc.ID, rc.BloodType, rc.DateOfBirth, textArray(rc.MedicalConditions),
		rc.EmergencyContactName, rc.EmergencyContactPhone, rc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
