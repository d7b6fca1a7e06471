package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bloodbank-api/internal/application/auth"
	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/inventory"
	"github.com/jhoicas/bloodbank-api/internal/application/reports"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository"
	"github.com/jhoicas/bloodbank-api/internal/domain/repository/mocks"
	apphttp "github.com/jhoicas/bloodbank-api/internal/interfaces/http"
)

// txStub ejecuta fn sobre los mismos mocks.
type txStub struct {
	requests  *mocks.BloodRequestRepository
	inventory *mocks.InventoryRepository
}

func (s txStub) Run(_ context.Context, fn func(repository.BloodRequestRepository, repository.InventoryRepository) error) error {
	return fn(s.requests, s.inventory)
}

type pdfStub struct{}

func (pdfStub) GenerateInventoryReport(context.Context, reports.InventoryReportData) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type apiFixture struct {
	app        *fiber.App
	users      *mocks.UserRepository
	hospitals  *mocks.HospitalRepository
	inventory  *mocks.InventoryRepository
	requests   *mocks.BloodRequestRepository
	donors     *mocks.DonorRepository
	recipients *mocks.RecipientRepository
}

func newAPI() *apiFixture {
	f := &apiFixture{
		users:      &mocks.UserRepository{},
		hospitals:  &mocks.HospitalRepository{},
		inventory:  &mocks.InventoryRepository{},
		requests:   &mocks.BloodRequestRepository{},
		donors:     &mocks.DonorRepository{},
		recipients: &mocks.RecipientRepository{},
	}
	donors, recipients := f.donors, f.recipients

	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(f.users, f.hospitals, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		HospitalUC:    usecase.NewHospitalUseCase(f.hospitals, f.users),
		UserUC:        usecase.NewUserUseCase(f.users),
		ProfileUC:     usecase.NewProfileUseCase(donors, recipients),
		AppointmentUC: usecase.NewAppointmentUseCase(&mocks.AppointmentRepository{}, donors, f.hospitals, f.inventory),
		InventoryUC:   inventory.NewInventoryUseCase(f.inventory, donors, 7, nil, nil),
		RequestUC: requests.NewRequestUseCase(f.requests, f.inventory, recipients, f.hospitals,
			txStub{requests: f.requests, inventory: f.inventory}, nil, requests.Config{ReserveUnits: true}, nil),
		ReportUC:      reports.NewPDFUseCase(f.hospitals, f.inventory, pdfStub{}, 7),
		HospitalCheck: usecase.NewHospitalAccessService(f.hospitals),
		JWTSecret:     testJWTSecret,
	})
	return f
}

func (f *apiFixture) hospitalStatus(status entity.HospitalStatus) {
	f.hospitals.On("GetByID", mock.Anything, testHospitalID).
		Return(&entity.Hospital{ID: testHospitalID, Name: "Central", Status: status}, nil)
}

func (f *apiFixture) do(t *testing.T, method, path, auth, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCompatibility_Publico(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/blood-types/compatibility?blood_type=AB-", "", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CompatibilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "AB-", out.BloodType)
	assert.ElementsMatch(t, []string{"O-", "A-", "B-", "AB-"}, out.CanReceiveFrom)
}

func TestCompatibility_TablaCompleta(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/blood-types/compatibility", "", "")
	defer resp.Body.Close()

	var out []dto.CompatibilityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 8)
}

func TestCompatibility_GrupoInvalido(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/blood-types/compatibility?blood_type=C", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INVALID_BLOOD_TYPE", out.Code)
}

func TestRegister_PasswordCorto(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@b.co","password":"123","full_name":"Ana","role":"donor"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatch_HospitalVerificado(t *testing.T) {
	f := newAPI()
	f.hospitalStatus(entity.HospitalStatusVerified)
	f.requests.On("GetByIDForUpdate", mock.Anything, "r-1").Return(&entity.BloodRequest{
		ID: "r-1", HospitalID: testHospitalID, BloodType: entity.BloodTypeBNeg, UnitsNeeded: 2,
		Urgency: entity.UrgencyCritical, Status: entity.RequestStatusPending,
	}, nil)
	f.inventory.On("ListAvailableForUpdate", mock.Anything, testHospitalID).Return([]entity.InventoryUnit{
		{ID: "u-1", BloodType: entity.BloodTypeONeg, QuantityUnits: 1, Status: entity.UnitStatusAvailable},
		{ID: "u-2", BloodType: entity.BloodTypeBPos, QuantityUnits: 4, Status: entity.UnitStatusAvailable},
	}, nil)
	f.requests.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.inventory.On("ReserveUnits", mock.Anything, mock.Anything, []string{"u-1"}).Return(int64(1), nil)

	resp := f.do(t, http.MethodPost, "/api/requests/r-1/match", tokenForRole(t, "hospital_staff"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.AllocationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "partially_fulfilled", out.Outcome, "B- solo recibe de O- y B-")
	assert.Equal(t, 1, out.AvailableQuantity)
	assert.Equal(t, []string{"u-1"}, out.MatchedUnitIDs)
}

func TestMatch_HospitalPendiente(t *testing.T) {
	f := newAPI()
	f.hospitalStatus(entity.HospitalStatusPending)

	resp := f.do(t, http.MethodPost, "/api/requests/r-1/match", tokenForRole(t, "hospital_admin"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "HOSPITAL_NOT_VERIFIED", out.Code)
	f.requests.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestMatch_SolicitudInexistente(t *testing.T) {
	f := newAPI()
	f.hospitalStatus(entity.HospitalStatusVerified)
	f.requests.On("GetByIDForUpdate", mock.Anything, "r-x").Return(nil, nil)

	resp := f.do(t, http.MethodPost, "/api/requests/r-x/match", tokenForRole(t, "hospital_staff"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventory_DonanteNoAccede(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/inventory", tokenFor(t, "donor", ""), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInventory_StaffSinHospital(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/inventory/summary", tokenFor(t, "hospital_staff", ""), "")
	defer resp.Body.Close()

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "HOSPITAL_REQUIRED", out.Code)
}

func TestDonors_ListadoParaPersonal(t *testing.T) {
	f := newAPI()
	f.hospitalStatus(entity.HospitalStatusVerified)
	f.donors.On("List", mock.Anything, repository.ProfileFilter{
		BloodType: entity.BloodTypeAPos, Search: "ana", Limit: 20,
	}).Return([]*entity.Donor{{ID: "d-1", BloodType: entity.BloodTypeAPos, Contact: entity.Contact{FullName: "Ana"}}}, nil)

	resp := f.do(t, http.MethodGet, "/api/donors?blood_type=A%2B&search=ANA", tokenForRole(t, "hospital_staff"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.DonorListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Ana", out.Items[0].FullName)
	assert.Equal(t, 1, out.Page.Total)
}

func TestRecipients_ListadoNoParaReceptores(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/recipients", tokenFor(t, "recipient", ""), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReportInventory_DevuelvePDF(t *testing.T) {
	f := newAPI()
	f.hospitalStatus(entity.HospitalStatusVerified)
	f.inventory.On("List", mock.Anything, mock.Anything).Return([]*entity.InventoryUnit{}, nil)

	resp := f.do(t, http.MethodGet, "/api/reports/inventory", tokenForRole(t, "hospital_admin"), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_")
}

func TestPlatformDashboard_SoloSuperAdmin(t *testing.T) {
	f := newAPI()
	resp := f.do(t, http.MethodGet, "/api/dashboard/platform", tokenForRole(t, "hospital_admin"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
