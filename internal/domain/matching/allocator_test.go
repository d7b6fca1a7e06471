package matching_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
)

// units construye n unidades disponibles de un grupo con cantidad 1 e IDs prefix-1..n.
func units(prefix string, bt entity.BloodType, n int) []entity.InventoryUnit {
	out := make([]entity.InventoryUnit, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, entity.InventoryUnit{
			ID:            fmt.Sprintf("%s-%d", prefix, i),
			BloodType:     bt,
			QuantityUnits: 1,
			Status:        entity.UnitStatusAvailable,
		})
	}
	return out
}

// Escenario 1: receptor O- con solo unidades AB+ disponibles -> unavailable.
func TestAllocate_ONegSinCompatibles_Unavailable(t *testing.T) {
	snapshot := units("ab", entity.BloodTypeABPos, 4)

	got, err := matching.Allocate(entity.BloodTypeONeg, 2, snapshot)
	require.NoError(t, err)

	assert.Equal(t, matching.OutcomeUnavailable, got.Outcome)
	assert.Equal(t, 0, got.AvailableQuantity)
	assert.Empty(t, got.MatchedUnitIDs)
	assert.NotNil(t, got.MatchedUnitIDs, "la lista vacía se serializa como [] y no como null")
}

// Escenario 2: receptor AB+ acepta todos los grupos -> 7 disponibles >= 3 -> fulfilled.
func TestAllocate_ABPosReceptorUniversal_Fulfilled(t *testing.T) {
	snapshot := append(units("oneg", entity.BloodTypeONeg, 2), units("abpos", entity.BloodTypeABPos, 5)...)

	got, err := matching.Allocate(entity.BloodTypeABPos, 3, snapshot)
	require.NoError(t, err)

	assert.Equal(t, matching.OutcomeFulfilled, got.Outcome)
	assert.Equal(t, 7, got.AvailableQuantity)
	assert.ElementsMatch(t, entity.AllBloodTypes, got.CompatibleTypes)
	assert.Equal(t, []string{"oneg-1", "oneg-2", "abpos-1"}, got.MatchedUnitIDs,
		"fulfilled toma las primeras unitsNeeded unidades en orden del snapshot")
}

// Escenario 3: receptor A+ con 2 A+ y 1 O- -> 3 < 5 -> partially_fulfilled con las 3.
func TestAllocate_APosInsuficiente_Partial(t *testing.T) {
	snapshot := append(units("apos", entity.BloodTypeAPos, 2), units("oneg", entity.BloodTypeONeg, 1)...)

	got, err := matching.Allocate(entity.BloodTypeAPos, 5, snapshot)
	require.NoError(t, err)

	assert.Equal(t, matching.OutcomePartiallyFulfilled, got.Outcome)
	assert.Equal(t, 3, got.AvailableQuantity)
	assert.Equal(t, []string{"apos-1", "apos-2", "oneg-1"}, got.MatchedUnitIDs)
	assert.ElementsMatch(t,
		[]entity.BloodType{entity.BloodTypeONeg, entity.BloodTypeOPos, entity.BloodTypeANeg, entity.BloodTypeAPos},
		got.CompatibleTypes)
}

// Solo participan unidades available; reserved/used/expired/discarded se ignoran.
func TestAllocate_IgnoraUnidadesNoDisponibles(t *testing.T) {
	snapshot := []entity.InventoryUnit{
		{ID: "r", BloodType: entity.BloodTypeONeg, QuantityUnits: 4, Status: entity.UnitStatusReserved},
		{ID: "u", BloodType: entity.BloodTypeONeg, QuantityUnits: 4, Status: entity.UnitStatusUsed},
		{ID: "e", BloodType: entity.BloodTypeONeg, QuantityUnits: 4, Status: entity.UnitStatusExpired},
		{ID: "d", BloodType: entity.BloodTypeONeg, QuantityUnits: 4, Status: entity.UnitStatusDiscarded},
		{ID: "a", BloodType: entity.BloodTypeONeg, QuantityUnits: 1, Status: entity.UnitStatusAvailable},
	}

	got, err := matching.Allocate(entity.BloodTypeONeg, 2, snapshot)
	require.NoError(t, err)

	assert.Equal(t, matching.OutcomePartiallyFulfilled, got.Outcome)
	assert.Equal(t, 1, got.AvailableQuantity)
	assert.Equal(t, []string{"a"}, got.MatchedUnitIDs)
}

// La suma es por QuantityUnits; la selección de fulfilled es por número de registros.
func TestAllocate_SumaPorCantidadSeleccionPorRegistro(t *testing.T) {
	snapshot := []entity.InventoryUnit{
		{ID: "big", BloodType: entity.BloodTypeOPos, QuantityUnits: 10, Status: entity.UnitStatusAvailable},
		{ID: "small", BloodType: entity.BloodTypeOPos, QuantityUnits: 1, Status: entity.UnitStatusAvailable},
	}

	got, err := matching.Allocate(entity.BloodTypeOPos, 3, snapshot)
	require.NoError(t, err)

	assert.Equal(t, matching.OutcomeFulfilled, got.Outcome)
	assert.Equal(t, 11, got.AvailableQuantity)
	assert.Equal(t, []string{"big", "small"}, got.MatchedUnitIDs,
		"con menos registros que unitsNeeded se devuelven todos los registros filtrados")
}

func TestAllocate_SnapshotVacio_Unavailable(t *testing.T) {
	got, err := matching.Allocate(entity.BloodTypeBPos, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, matching.OutcomeUnavailable, got.Outcome)
	assert.Empty(t, got.MatchedUnitIDs)
}

func TestAllocate_GrupoInvalido(t *testing.T) {
	_, err := matching.Allocate(entity.BloodType("Z"), 1, units("o", entity.BloodTypeONeg, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidBloodType)
}

// Idempotencia: mismo snapshot, misma decisión; el snapshot no se modifica.
func TestAllocate_Idempotente(t *testing.T) {
	snapshot := append(units("bneg", entity.BloodTypeBNeg, 3), units("bpos", entity.BloodTypeBPos, 3)...)
	before := append([]entity.InventoryUnit(nil), snapshot...)

	first, err := matching.Allocate(entity.BloodTypeBPos, 4, snapshot)
	require.NoError(t, err)
	second, err := matching.Allocate(entity.BloodTypeBPos, 4, snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, snapshot)
}

// Propiedad: para cada receptor y cantidad, el resultado respeta la política de clasificación.
func TestAllocate_PoliticaDeClasificacion(t *testing.T) {
	var snapshot []entity.InventoryUnit
	for _, bt := range entity.AllBloodTypes {
		snapshot = append(snapshot, units(string(bt), bt, 2)...)
	}

	for _, recipient := range entity.AllBloodTypes {
		donors, err := matching.CompatibleDonors(recipient)
		require.NoError(t, err)
		total := 2 * len(donors)

		for _, need := range []int{1, total, total + 1} {
			got, err := matching.Allocate(recipient, need, snapshot)
			require.NoError(t, err)
			assert.Equal(t, total, got.AvailableQuantity)
			if total >= need {
				assert.Equal(t, matching.OutcomeFulfilled, got.Outcome, "%s need=%d", recipient, need)
				assert.Len(t, got.MatchedUnitIDs, need)
			} else {
				assert.Equal(t, matching.OutcomePartiallyFulfilled, got.Outcome, "%s need=%d", recipient, need)
				assert.Len(t, got.MatchedUnitIDs, total)
			}
		}
	}
}

func TestOutcome_RequestStatus(t *testing.T) {
	assert.Equal(t, entity.RequestStatusFulfilled, matching.OutcomeFulfilled.RequestStatus())
	assert.Equal(t, entity.RequestStatusPartiallyFulfilled, matching.OutcomePartiallyFulfilled.RequestStatus())
	assert.Equal(t, entity.RequestStatusUnavailable, matching.OutcomeUnavailable.RequestStatus())
}
