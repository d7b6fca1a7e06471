package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla receptor -> donantes esperada, derivada a mano de la tabla donante -> receptores.
// ──────────────────────────────────────────────────────────────────────────────

var expectedDonors = map[entity.BloodType][]entity.BloodType{
	entity.BloodTypeONeg:  {entity.BloodTypeONeg},
	entity.BloodTypeOPos:  {entity.BloodTypeONeg, entity.BloodTypeOPos},
	entity.BloodTypeANeg:  {entity.BloodTypeONeg, entity.BloodTypeANeg},
	entity.BloodTypeAPos:  {entity.BloodTypeONeg, entity.BloodTypeOPos, entity.BloodTypeANeg, entity.BloodTypeAPos},
	entity.BloodTypeBNeg:  {entity.BloodTypeONeg, entity.BloodTypeBNeg},
	entity.BloodTypeBPos:  {entity.BloodTypeONeg, entity.BloodTypeOPos, entity.BloodTypeBNeg, entity.BloodTypeBPos},
	entity.BloodTypeABNeg: {entity.BloodTypeONeg, entity.BloodTypeANeg, entity.BloodTypeBNeg, entity.BloodTypeABNeg},
	entity.BloodTypeABPos: entity.AllBloodTypes,
}

func TestCompatibleDonors_TablaCompleta(t *testing.T) {
	for _, recipient := range entity.AllBloodTypes {
		donors, err := matching.CompatibleDonors(recipient)
		require.NoError(t, err, "grupo %s debe resolverse", recipient)
		assert.NotEmpty(t, donors)
		assert.ElementsMatch(t, expectedDonors[recipient], donors, "donantes para receptor %s", recipient)
	}
}

// O- como receptor solo acepta O-: la tabla no es simétrica.
func TestCompatibleDonors_ONegSoloRecibeONeg(t *testing.T) {
	donors, err := matching.CompatibleDonors(entity.BloodTypeONeg)
	require.NoError(t, err)
	assert.Equal(t, []entity.BloodType{entity.BloodTypeONeg}, donors)
}

func TestCompatibleDonors_GrupoInvalido(t *testing.T) {
	_, err := matching.CompatibleDonors(entity.BloodType("C+"))
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)

	_, err = matching.CompatibleRecipients(entity.BloodType(""))
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}

// El resultado es una copia: modificarlo no altera la tabla interna.
func TestCompatibleDonors_DevuelveCopia(t *testing.T) {
	donors, err := matching.CompatibleDonors(entity.BloodTypeAPos)
	require.NoError(t, err)
	donors[0] = entity.BloodTypeABPos

	again, err := matching.CompatibleDonors(entity.BloodTypeAPos)
	require.NoError(t, err)
	assert.Equal(t, entity.BloodTypeONeg, again[0])
}

func TestCompatibleRecipients_ONegDonanteUniversal(t *testing.T) {
	recipients, err := matching.CompatibleRecipients(entity.BloodTypeONeg)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.AllBloodTypes, recipients)

	recipients, err = matching.CompatibleRecipients(entity.BloodTypeABPos)
	require.NoError(t, err)
	assert.Equal(t, []entity.BloodType{entity.BloodTypeABPos}, recipients)
}

func TestCanDonateTo(t *testing.T) {
	assert.True(t, matching.CanDonateTo(entity.BloodTypeONeg, entity.BloodTypeABPos))
	assert.True(t, matching.CanDonateTo(entity.BloodTypeANeg, entity.BloodTypeABNeg))
	assert.False(t, matching.CanDonateTo(entity.BloodTypeABPos, entity.BloodTypeONeg))
	assert.False(t, matching.CanDonateTo(entity.BloodTypeOPos, entity.BloodTypeONeg))
	assert.False(t, matching.CanDonateTo(entity.BloodTypeAPos, entity.BloodTypeBPos))
}
