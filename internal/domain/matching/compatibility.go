// Package matching contiene las reglas de compatibilidad transfusional y el
// asignador de inventario para solicitudes de sangre (servicios de dominio puros).
package matching

import (
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// donorTable donante -> receptores a los que puede transfundir.
// Tabla fija; no se asume simetría.
var donorTable = map[entity.BloodType][]entity.BloodType{
	entity.BloodTypeONeg: {
		entity.BloodTypeONeg, entity.BloodTypeOPos, entity.BloodTypeANeg, entity.BloodTypeAPos,
		entity.BloodTypeBNeg, entity.BloodTypeBPos, entity.BloodTypeABNeg, entity.BloodTypeABPos,
	},
	entity.BloodTypeOPos:  {entity.BloodTypeOPos, entity.BloodTypeAPos, entity.BloodTypeBPos, entity.BloodTypeABPos},
	entity.BloodTypeANeg:  {entity.BloodTypeANeg, entity.BloodTypeAPos, entity.BloodTypeABNeg, entity.BloodTypeABPos},
	entity.BloodTypeAPos:  {entity.BloodTypeAPos, entity.BloodTypeABPos},
	entity.BloodTypeBNeg:  {entity.BloodTypeBNeg, entity.BloodTypeBPos, entity.BloodTypeABNeg, entity.BloodTypeABPos},
	entity.BloodTypeBPos:  {entity.BloodTypeBPos, entity.BloodTypeABPos},
	entity.BloodTypeABNeg: {entity.BloodTypeABNeg, entity.BloodTypeABPos},
	entity.BloodTypeABPos: {entity.BloodTypeABPos},
}

// recipientTable inversa de donorTable: receptor -> donantes elegibles.
// Se construye una sola vez y se recorre en el orden de AllBloodTypes para que sea determinista.
var recipientTable = invert()

func invert() map[entity.BloodType][]entity.BloodType {
	out := make(map[entity.BloodType][]entity.BloodType, len(entity.AllBloodTypes))
	for _, donor := range entity.AllBloodTypes {
		for _, recipient := range donorTable[donor] {
			out[recipient] = append(out[recipient], donor)
		}
	}
	return out
}

// CompatibleDonors devuelve los grupos donantes cuyas unidades pueden transfundirse al receptor.
// Retorna domain.ErrInvalidBloodType si el grupo no pertenece al conjunto cerrado.
func CompatibleDonors(recipient entity.BloodType) ([]entity.BloodType, error) {
	if !recipient.Valid() {
		return nil, domain.ErrInvalidBloodType
	}
	donors := recipientTable[recipient]
	out := make([]entity.BloodType, len(donors))
	copy(out, donors)
	return out, nil
}

// CompatibleRecipients dirección directa de la tabla: a quién puede donar el grupo.
func CompatibleRecipients(donor entity.BloodType) ([]entity.BloodType, error) {
	if !donor.Valid() {
		return nil, domain.ErrInvalidBloodType
	}
	recipients := donorTable[donor]
	out := make([]entity.BloodType, len(recipients))
	copy(out, recipients)
	return out, nil
}

// CanDonateTo true si una unidad del grupo donor puede transfundirse a recipient.
func CanDonateTo(donor, recipient entity.BloodType) bool {
	for _, r := range donorTable[donor] {
		if r == recipient {
			return true
		}
	}
	return false
}
