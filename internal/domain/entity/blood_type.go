package entity

import (
	"strings"

	"github.com/jhoicas/bloodbank-api/internal/domain"
)

// BloodType grupo sanguíneo ABO + Rh. Conjunto cerrado de 8 valores.
type BloodType string

const (
	BloodTypeONeg  BloodType = "O-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeAPos  BloodType = "A+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeABPos BloodType = "AB+"
)

// AllBloodTypes en el orden usado por reportes y tablas de compatibilidad.
var AllBloodTypes = []BloodType{
	BloodTypeONeg, BloodTypeOPos,
	BloodTypeANeg, BloodTypeAPos,
	BloodTypeBNeg, BloodTypeBPos,
	BloodTypeABNeg, BloodTypeABPos,
}

// Valid indica si el valor pertenece al conjunto cerrado.
func (b BloodType) Valid() bool {
	switch b {
	case BloodTypeONeg, BloodTypeOPos, BloodTypeANeg, BloodTypeAPos,
		BloodTypeBNeg, BloodTypeBPos, BloodTypeABNeg, BloodTypeABPos:
		return true
	}
	return false
}

func (b BloodType) String() string { return string(b) }

// ParseBloodType normaliza espacios y mayúsculas ("ab+" -> "AB+").
// En query strings el "+" llega como espacio; se acepta también el sufijo "pos"/"neg".
func ParseBloodType(s string) (BloodType, error) {
	v := strings.ToUpper(strings.TrimLeft(s, " \t"))
	t := strings.TrimSpace(v)
	if strings.HasSuffix(v, " ") && (t == "A" || t == "B" || t == "AB" || t == "O") {
		t += "+"
	}
	v = t
	switch {
	case strings.HasSuffix(v, "POS"):
		v = strings.TrimSpace(strings.TrimSuffix(v, "POS")) + "+"
	case strings.HasSuffix(v, "NEG"):
		v = strings.TrimSpace(strings.TrimSuffix(v, "NEG")) + "-"
	}
	bt := BloodType(v)
	if !bt.Valid() {
		return "", domain.ErrInvalidBloodType
	}
	return bt, nil
}
