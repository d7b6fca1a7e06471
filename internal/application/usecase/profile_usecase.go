package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/domain"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

const (
	dateLayout     = "2006-01-02"
	minDonorAge    = 18
	maxDonorAge    = 65
	minDonorWeight = 50.0 // kg
)

// ProfileUseCase perfiles de donante y receptor del usuario autenticado.
type ProfileUseCase struct {
	donorRepo     repository.DonorRepository
	recipientRepo repository.RecipientRepository
	now           func() time.Time
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(donorRepo repository.DonorRepository, recipientRepo repository.RecipientRepository) *ProfileUseCase {
	return &ProfileUseCase{donorRepo: donorRepo, recipientRepo: recipientRepo, now: time.Now}
}

// UpsertDonor crea o actualiza el perfil de donante. La elegibilidad médica básica
// (18 a 65 años, al menos 50 kg) se recalcula en cada cambio.
func (uc *ProfileUseCase) UpsertDonor(ctx context.Context, userID string, in dto.DonorProfileRequest) (*dto.DonorResponse, error) {
	bt, err := entity.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, err
	}
	dob, err := time.Parse(dateLayout, in.DateOfBirth)
	if err != nil || in.WeightKg <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	if !dob.Before(now) {
		return nil, domain.ErrInvalidInput
	}

	d, err := uc.donorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	creating := d == nil
	if creating {
		d = &entity.Donor{ID: uuid.New().String(), UserID: userID, CreatedAt: now}
	}
	d.BloodType = bt
	d.DateOfBirth = dob
	d.WeightKg = in.WeightKg
	d.MedicalConditions = nonNil(in.MedicalConditions)
	d.EmergencyContactName = in.EmergencyContactName
	d.EmergencyContactPhone = in.EmergencyContactPhone
	age := ageAt(dob, now)
	d.IsEligible = age >= minDonorAge && age <= maxDonorAge && in.WeightKg >= minDonorWeight
	d.UpdatedAt = now

	if creating {
		err = uc.donorRepo.Create(ctx, d)
	} else {
		err = uc.donorRepo.Update(ctx, d)
	}
	if err != nil {
		return nil, err
	}
	return uc.toDonorResponse(d), nil
}

// GetDonor perfil de donante del usuario.
func (uc *ProfileUseCase) GetDonor(ctx context.Context, userID string) (*dto.DonorResponse, error) {
	d, err := uc.donorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toDonorResponse(d), nil
}

// GetDonorByID perfil de donante por ID (personal de hospital).
func (uc *ProfileUseCase) GetDonorByID(ctx context.Context, id string) (*dto.DonorResponse, error) {
	d, err := uc.donorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toDonorResponse(d), nil
}

// UpsertRecipient crea o actualiza el perfil de receptor.
func (uc *ProfileUseCase) UpsertRecipient(ctx context.Context, userID string, in dto.RecipientProfileRequest) (*dto.RecipientResponse, error) {
	bt, err := entity.ParseBloodType(in.BloodType)
	if err != nil {
		return nil, err
	}
	dob, err := time.Parse(dateLayout, in.DateOfBirth)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	r, err := uc.recipientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	creating := r == nil
	if creating {
		r = &entity.Recipient{ID: uuid.New().String(), UserID: userID, CreatedAt: now}
	}
	r.BloodType = bt
	r.DateOfBirth = dob
	r.MedicalConditions = nonNil(in.MedicalConditions)
	r.EmergencyContactName = in.EmergencyContactName
	r.EmergencyContactPhone = in.EmergencyContactPhone
	r.UpdatedAt = now
	if creating {
		err = uc.recipientRepo.Create(ctx, r)
	} else {
		err = uc.recipientRepo.Update(ctx, r)
	}
	if err != nil {
		return nil, err
	}
	return toRecipientResponse(r), nil
}

// GetRecipient perfil de receptor del usuario.
func (uc *ProfileUseCase) GetRecipient(ctx context.Context, userID string) (*dto.RecipientResponse, error) {
	r, err := uc.recipientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRecipientResponse(r), nil
}

// ListDonors búsqueda de donantes para el personal de hospital.
func (uc *ProfileUseCase) ListDonors(ctx context.Context, q dto.DonorListQuery) (*dto.DonorListResponse, error) {
	q.DefaultPage()
	f, err := profileFilter(q.PageRequest, q.BloodType, q.Search)
	if err != nil {
		return nil, err
	}
	f.EligibleOnly = q.EligibleOnly
	list, err := uc.donorRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DonorResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *uc.toDonorResponse(d))
	}
	page, err := q.PageRequest.Response(len(items), func() (int, error) { return uc.donorRepo.Count(ctx, f) })
	if err != nil {
		return nil, err
	}
	return &dto.DonorListResponse{Items: items, Page: page}, nil
}

// ListRecipients búsqueda de receptores para el personal de hospital.
func (uc *ProfileUseCase) ListRecipients(ctx context.Context, q dto.RecipientListQuery) (*dto.RecipientListResponse, error) {
	q.DefaultPage()
	f, err := profileFilter(q.PageRequest, q.BloodType, q.Search)
	if err != nil {
		return nil, err
	}
	list, err := uc.recipientRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipientResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecipientResponse(r))
	}
	page, err := q.PageRequest.Response(len(items), func() (int, error) { return uc.recipientRepo.Count(ctx, f) })
	if err != nil {
		return nil, err
	}
	return &dto.RecipientListResponse{Items: items, Page: page}, nil
}

func profileFilter(page dto.PageRequest, bloodType, search string) (repository.ProfileFilter, error) {
	f := repository.ProfileFilter{Search: textnorm.Fold(search), Limit: page.Limit, Offset: page.Offset}
	if bloodType != "" {
		bt, err := entity.ParseBloodType(bloodType)
		if err != nil {
			return f, err
		}
		f.BloodType = bt
	}
	return f, nil
}

func (uc *ProfileUseCase) toDonorResponse(d *entity.Donor) *dto.DonorResponse {
	now := uc.now()
	targets, _ := matching.CompatibleRecipients(d.BloodType)
	return &dto.DonorResponse{
		ID:                    d.ID,
		UserID:                d.UserID,
		BloodType:             d.BloodType.String(),
		DateOfBirth:           d.DateOfBirth.Format(dateLayout),
		WeightKg:              d.WeightKg,
		IsEligible:            d.IsEligible,
		LastDonationDate:      d.LastDonationDate,
		NextEligibleDate:      d.NextEligibleDate(now),
		CanDonateNow:          d.CanDonateAt(now),
		MedicalConditions:     nonNil(d.MedicalConditions),
		EmergencyContactName:  d.EmergencyContactName,
		EmergencyContactPhone: d.EmergencyContactPhone,
		CanDonateTo:           bloodTypeStrings(targets),
		FullName:              d.Contact.FullName,
		Email:                 d.Contact.Email,
		Phone:                 d.Contact.Phone,
	}
}

func toRecipientResponse(r *entity.Recipient) *dto.RecipientResponse {
	sources, _ := matching.CompatibleDonors(r.BloodType)
	return &dto.RecipientResponse{
		ID:                    r.ID,
		UserID:                r.UserID,
		BloodType:             r.BloodType.String(),
		DateOfBirth:           r.DateOfBirth.Format(dateLayout),
		MedicalConditions:     nonNil(r.MedicalConditions),
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		CanReceiveFrom:        bloodTypeStrings(sources),
		FullName:              r.Contact.FullName,
		Email:                 r.Contact.Email,
		Phone:                 r.Contact.Phone,
	}
}

// ageAt edad en años cumplidos a la fecha t.
func ageAt(dob, t time.Time) int {
	age := t.Year() - dob.Year()
	if t.Month() < dob.Month() || (t.Month() == dob.Month() && t.Day() < dob.Day()) {
		age--
	}
	return age
}

func bloodTypeStrings(types []entity.BloodType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
