package matching

import (
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// Outcome resultado de un intento de asignación.
type Outcome string

const (
	OutcomeFulfilled          Outcome = "fulfilled"
	OutcomePartiallyFulfilled Outcome = "partially_fulfilled"
	OutcomeUnavailable        Outcome = "unavailable"
)

// RequestStatus estado de solicitud equivalente al resultado.
func (o Outcome) RequestStatus() entity.RequestStatus {
	switch o {
	case OutcomeFulfilled:
		return entity.RequestStatusFulfilled
	case OutcomePartiallyFulfilled:
		return entity.RequestStatusPartiallyFulfilled
	default:
		return entity.RequestStatusUnavailable
	}
}

// Allocation decisión del asignador. No modifica ni la solicitud ni el inventario:
// el caller aplica la transición de estado.
type Allocation struct {
	Outcome           Outcome
	CompatibleTypes   []entity.BloodType
	AvailableQuantity int
	MatchedUnitIDs    []string
}

// Allocate decide cómo atender una solicitud con el snapshot de inventario recibido.
//
//  1. grupos donantes compatibles con bloodType
//  2. unidades con status available y grupo compatible, en el orden del snapshot
//  3. suma de QuantityUnits
//  4. 0 -> unavailable; suma >= unitsNeeded -> fulfilled con las primeras unitsNeeded
//     unidades; resto -> partially_fulfilled con todas las unidades filtradas.
//
// Cero coincidencias no es un error. Solo falla con domain.ErrInvalidBloodType.
func Allocate(bloodType entity.BloodType, unitsNeeded int, snapshot []entity.InventoryUnit) (Allocation, error) {
	compatible, err := CompatibleDonors(bloodType)
	if err != nil {
		return Allocation{}, err
	}
	accepted := make(map[entity.BloodType]struct{}, len(compatible))
	for _, t := range compatible {
		accepted[t] = struct{}{}
	}

	matching := make([]string, 0, len(snapshot))
	available := 0
	for i := range snapshot {
		u := &snapshot[i]
		if !u.IsAvailable() {
			continue
		}
		if _, ok := accepted[u.BloodType]; !ok {
			continue
		}
		matching = append(matching, u.ID)
		available += u.QuantityUnits
	}

	out := Allocation{
		CompatibleTypes:   compatible,
		AvailableQuantity: available,
	}
	switch {
	case available == 0:
		out.Outcome = OutcomeUnavailable
		out.MatchedUnitIDs = []string{}
	case available >= unitsNeeded:
		out.Outcome = OutcomeFulfilled
		n := unitsNeeded
		if n < 0 {
			n = 0
		}
		if n > len(matching) {
			n = len(matching)
		}
		out.MatchedUnitIDs = matching[:n:n]
	default:
		out.Outcome = OutcomePartiallyFulfilled
		out.MatchedUnitIDs = matching
	}
	return out, nil
}
