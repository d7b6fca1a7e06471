package requests

import (
	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
)

// Compatibility resuelve la tabla de un grupo en ambas direcciones.
func Compatibility(raw string) (*dto.CompatibilityResponse, error) {
	bt, err := entity.ParseBloodType(raw)
	if err != nil {
		return nil, err
	}
	donors, err := matching.CompatibleDonors(bt)
	if err != nil {
		return nil, err
	}
	recipients, err := matching.CompatibleRecipients(bt)
	if err != nil {
		return nil, err
	}
	return &dto.CompatibilityResponse{
		BloodType:      bt.String(),
		CanReceiveFrom: typeStrings(donors),
		CanDonateTo:    typeStrings(recipients),
	}, nil
}

// CompatibilityTable tabla completa, en el orden de entity.AllBloodTypes.
func CompatibilityTable() []dto.CompatibilityResponse {
	out := make([]dto.CompatibilityResponse, 0, len(entity.AllBloodTypes))
	for _, bt := range entity.AllBloodTypes {
		c, err := Compatibility(bt.String())
		if err != nil {
			continue
		}
		out = append(out, *c)
	}
	return out
}

func typeStrings(list []entity.BloodType) []string {
	out := make([]string, len(list))
	for i, bt := range list {
		out[i] = bt.String()
	}
	return out
}
