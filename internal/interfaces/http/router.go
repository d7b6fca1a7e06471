package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/bloodbank-api/internal/application/analytics"
	"github.com/jhoicas/bloodbank-api/internal/application/auth"
	"github.com/jhoicas/bloodbank-api/internal/application/inventory"
	"github.com/jhoicas/bloodbank-api/internal/application/reports"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	HospitalUC    *usecase.HospitalUseCase
	UserUC        *usecase.UserUseCase
	ProfileUC     *usecase.ProfileUseCase
	AppointmentUC *usecase.AppointmentUseCase
	InventoryUC   *inventory.InventoryUseCase
	RequestUC     *requests.RequestUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *reports.PDFUseCase
	HospitalCheck *usecase.HospitalAccessService
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staff := RequireRole(entity.RoleHospitalAdmin, entity.RoleHospitalStaff)
	verified := RequireVerifiedHospital(deps.HospitalCheck)

	requestHandler := NewRequestHandler(deps.RequestUC)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Compatibilidad (público)
	api.Get("/blood-types/compatibility", requestHandler.Compatibility)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Hospitals
	hospitalHandler := NewHospitalHandler(deps.HospitalUC, deps.UserUC)
	hospitals := protected.Group("/hospitals")
	hospitals.Get("/", hospitalHandler.List)
	hospitals.Post("/", RequireRole(entity.RoleHospitalAdmin), hospitalHandler.Create)
	hospitals.Get("/:id", hospitalHandler.GetByID)
	hospitals.Put("/:id", RequireRole(entity.RoleHospitalAdmin, entity.RoleSuperAdmin), hospitalHandler.Update)
	hospitals.Patch("/:id/status", RequireRole(entity.RoleSuperAdmin), hospitalHandler.UpdateStatus)

	// Personal del hospital (solo su administrador)
	staffGroup := protected.Group("/staff", RequireRole(entity.RoleHospitalAdmin), verified)
	staffGroup.Post("/", hospitalHandler.CreateStaff)
	staffGroup.Get("/", hospitalHandler.ListStaff)
	staffGroup.Patch("/:id/status", hospitalHandler.SetStaffStatus)

	// Perfiles
	profileHandler := NewProfileHandler(deps.ProfileUC)
	donors := protected.Group("/donors")
	donors.Get("/", staff, verified, profileHandler.ListDonors)
	donors.Get("/me", RequireRole(entity.RoleDonor), profileHandler.GetDonor)
	donors.Put("/me", RequireRole(entity.RoleDonor), profileHandler.PutDonor)
	donors.Get("/:id", staff, profileHandler.GetDonorByID)
	recipients := protected.Group("/recipients")
	recipients.Get("/", staff, verified, profileHandler.ListRecipients)
	recipients.Get("/me", RequireRole(entity.RoleRecipient), profileHandler.GetRecipient)
	recipients.Put("/me", RequireRole(entity.RoleRecipient), profileHandler.PutRecipient)

	// Citas de donación
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments := protected.Group("/appointments")
	appointments.Post("/", RequireRole(entity.RoleDonor), appointmentHandler.Schedule)
	appointments.Get("/", RequireRole(entity.RoleDonor, entity.RoleHospitalAdmin, entity.RoleHospitalStaff), appointmentHandler.List)
	appointments.Patch("/:id/confirm", staff, verified, appointmentHandler.Confirm)
	appointments.Patch("/:id/complete", staff, verified, appointmentHandler.Complete)
	appointments.Patch("/:id/cancel", appointmentHandler.Cancel)
	appointments.Patch("/:id/reschedule", appointmentHandler.Reschedule)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := protected.Group("/inventory", staff, verified)
	inv.Post("/", inventoryHandler.AddUnit)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/summary", inventoryHandler.Summary)
	inv.Post("/expire", inventoryHandler.ExpireOverdue)
	inv.Get("/:id", inventoryHandler.Get)
	inv.Patch("/:id/status", inventoryHandler.UpdateStatus)
	inv.Delete("/:id", inventoryHandler.Delete)

	// Solicitudes de sangre
	reqs := protected.Group("/requests")
	reqs.Post("/", RequireRole(entity.RoleRecipient, entity.RoleHospitalAdmin, entity.RoleHospitalStaff), requestHandler.Create)
	reqs.Get("/", requestHandler.List)
	reqs.Get("/:id", requestHandler.Get)
	reqs.Get("/:id/availability", staff, verified, requestHandler.Preview)
	reqs.Post("/:id/match", staff, verified, requestHandler.Match)
	reqs.Patch("/:id/status", staff, verified, requestHandler.UpdateStatus)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/hospital", staff, verified, dashboardHandler.Hospital)
	protected.Get("/dashboard/platform", RequireRole(entity.RoleSuperAdmin), dashboardHandler.Platform)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/inventory", staff, verified, reportHandler.InventoryPDF)
}
