package entity

import "time"

// DonationIntervalDays intervalo mínimo entre donaciones de sangre total (8 semanas).
const DonationIntervalDays = 56

// Donor perfil de donante asociado a un User.
type Donor struct {
	ID                    string
	UserID                string
	BloodType             BloodType
	DateOfBirth           time.Time
	WeightKg              float64
	IsEligible            bool
	LastDonationDate      *time.Time
	MedicalConditions     []string
	EmergencyContactName  string
	EmergencyContactPhone string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Contact Contact // del User; solo se rellena en listados
}

// Contact datos del User dueño del perfil.
type Contact struct {
	FullName string
	Email    string
	Phone    string
}

// NextEligibleDate fecha a partir de la cual puede volver a donar.
// Sin donaciones previas es elegible desde ya (se devuelve now truncado al día).
func (d *Donor) NextEligibleDate(now time.Time) time.Time {
	if d.LastDonationDate == nil {
		return now.Truncate(24 * time.Hour)
	}
	return d.LastDonationDate.AddDate(0, 0, DonationIntervalDays)
}

// CanDonateAt combina la marca médica IsEligible con el intervalo entre donaciones.
func (d *Donor) CanDonateAt(t time.Time) bool {
	if !d.IsEligible {
		return false
	}
	return !t.Before(d.NextEligibleDate(t))
}

// Recipient perfil de receptor asociado a un User.
type Recipient struct {
	ID                    string
	UserID                string
	BloodType             BloodType
	DateOfBirth           time.Time
	MedicalConditions     []string
	EmergencyContactName  string
	EmergencyContactPhone string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Contact Contact
}
