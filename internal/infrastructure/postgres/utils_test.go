package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	w.add("hospital_id = ?", "h-1")
	w.add("(batch_number ILIKE ? OR notes ILIKE ?)", "%x%")
	paging := w.page(20, 40)

	assert.Equal(t, " WHERE hospital_id = $1 AND (batch_number ILIKE $2 OR notes ILIKE $2)", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", paging)
	assert.Equal(t, []any{"h-1", "%x%", 20, 40}, w.args)
}

func TestWhereBuilder_SinCondiciones(t *testing.T) {
	var w whereBuilder
	assert.Empty(t, w.sql())
	assert.Empty(t, w.page(0, 0))
	assert.Empty(t, w.args)
}

func TestDonorWhere(t *testing.T) {
	w := donorWhere(repository.ProfileFilter{BloodType: entity.BloodTypeONeg, Search: "pérez", EligibleOnly: true})
	assert.Equal(t,
		" WHERE d.blood_type = $1 AND (u.full_name ILIKE $2 OR u.email ILIKE $2 OR u.phone ILIKE $2) AND d.is_eligible = $3",
		w.sql())
	assert.Equal(t, []any{entity.BloodTypeONeg, "%pérez%", true}, w.args)

	w = profileWhere("rc", repository.ProfileFilter{BloodType: entity.BloodTypeABPos})
	assert.Equal(t, " WHERE rc.blood_type = $1", w.sql())
}

func TestRequestWhere_CompartidoPorListYCount(t *testing.T) {
	w := requestWhere(repository.RequestFilter{HospitalID: "h-1", Status: entity.RequestStatusPending, Limit: 20})
	assert.Equal(t, " WHERE hospital_id = $1 AND status = $2", w.sql())
	assert.Len(t, w.args, 2, "Count no pagina")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullString(""))
	assert.Equal(t, "a", derefString(nullString("a")))
	assert.Equal(t, []string{}, textArray(nil))
}
