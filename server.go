package main

import (
	"time"

	"health_record_ms/config"
	"health_record_ms/controller"
	"health_record_ms/dtos/request"
	"health_record_ms/middleware"
	"health_record_ms/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	Logger *zap.Logger
	Guards *middleware.Guards

	DB           *gorm.DB
	Medicines    repository.IMedicineRepository
	Doctors      repository.IDoctorRepository
	Appointments repository.IAppointmentRepository
	Contacts     repository.IContactRepository
	Documents    repository.IDocumentRepository

	AuthController        controller.IAuthController
	MedicineController    controller.IMedicineController
	DoctorController      controller.IDoctorController
	AppointmentController controller.IAppointmentController
	ContactController     controller.IContactController
	DocumentController    controller.IDocumentController
}

// NOTE: Server Constructor
func NewServer(
	logger *zap.Logger,
	guards *middleware.Guards,
	db *gorm.DB,
	medicines repository.IMedicineRepository,
	doctors repository.IDoctorRepository,
	appointments repository.IAppointmentRepository,
	contacts repository.IContactRepository,
	documents repository.IDocumentRepository,
	authController controller.IAuthController,
	medicineController controller.IMedicineController,
	doctorController controller.IDoctorController,
	appointmentController controller.IAppointmentController,
	contactController controller.IContactController,
	documentController controller.IDocumentController,
) *Server {
	return &Server{
		Logger:                logger,
		Guards:                guards,
		DB:                    db,
		Medicines:             medicines,
		Doctors:               doctors,
		Appointments:          appointments,
		Contacts:              contacts,
		Documents:             documents,
		AuthController:        authController,
		MedicineController:    medicineController,
		DoctorController:      doctorController,
		AppointmentController: appointmentController,
		ContactController:     contactController,
		DocumentController:    documentController,
	}
}

// NOTE: Start Fiber Server
func (s *Server) Start() *fiber.App {
	// NOTE: Initialize Fiber Server
	app := fiber.New()

	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggingMiddleware(s.Logger))

	// NOTE: Define API paths (context path and grouping by version)
	contextPath := app.Group(config.Conf.Application.Server.ContextPath)
	apiVersion := contextPath.Group(config.Conf.Application.Server.ApiVersion)

	s.configureAuthGroup(apiVersion)
	s.configureRecordGroups(apiVersion)

	return app
}

func (s *Server) configureAuthGroup(router fiber.Router) {
	authGroup := router.Group("/auth")
	authGroup.Use(middleware.RouteRateLimiter(20, time.Minute))

	passkeyGroup := authGroup.Group("/passkey")
	passkeyGroup.Post("/register/start", middleware.ValidateBody[request.StartPasskeyRegistration](), s.AuthController.RegisterStart)
	passkeyGroup.Post("/register/finish", s.AuthController.RegisterFinish)
	passkeyGroup.Post("/login/start", middleware.ValidateBody[request.StartPasskeyLogin](), s.AuthController.LoginStart)
	passkeyGroup.Post("/login/finish/:credentialId", s.AuthController.LoginFinish)

	authGroup.Post("/admin/login", s.AuthController.AdminLogin)
	authGroup.Post("/logout", s.AuthController.Logout)
	authGroup.Get("/me", s.Guards.RequirePrincipal(), s.AuthController.Me)
	authGroup.Delete("/passkey/:credentialId", s.Guards.RequireAuth(), s.AuthController.RevokeCredential)
}

func (s *Server) configureRecordGroups(router fiber.Router) {
	users := router.Group("/users/:userId", s.Guards.RequireAdminOrUser("userId"))

	users.Get("/medicines", s.MedicineController.List)
	users.Post("/medicines", middleware.ValidateBody[request.MedicineUpsert](), s.MedicineController.Create)
	users.Get("/doctors", s.DoctorController.List)
	users.Post("/doctors", middleware.ValidateBody[request.DoctorUpsert](), s.DoctorController.Create)
	users.Get("/appointments", s.AppointmentController.List)
	users.Post("/appointments", middleware.ValidateBody[request.AppointmentUpsert](), s.AppointmentController.Create)
	users.Get("/contacts", s.ContactController.List)
	users.Post("/contacts", middleware.ValidateBody[request.ContactUpsert](), s.ContactController.Create)
	users.Get("/documents", s.DocumentController.List)
	users.Post("/documents", middleware.ValidateBody[request.DocumentCreate](), s.DocumentController.CreateUpload)

	medicines := router.Group("/medicines/:id", s.Guards.RequireAdminOrOwnership(middleware.MedicineOwner(s.DB, s.Medicines, "id")))
	medicines.Get("/", s.MedicineController.Get)
	medicines.Put("/", middleware.ValidateBody[request.MedicineUpsert](), s.MedicineController.Update)
	medicines.Delete("/", s.MedicineController.Delete)

	doctors := router.Group("/doctors/:id", s.Guards.RequireAdminOrOwnership(middleware.DoctorOwner(s.DB, s.Doctors, "id")))
	doctors.Get("/", s.DoctorController.Get)
	doctors.Put("/", middleware.ValidateBody[request.DoctorUpsert](), s.DoctorController.Update)
	doctors.Delete("/", s.DoctorController.Delete)

	appointments := router.Group("/appointments/:id", s.Guards.RequireAdminOrOwnership(middleware.AppointmentOwner(s.DB, s.Appointments, "id")))
	appointments.Get("/", s.AppointmentController.Get)
	appointments.Put("/", middleware.ValidateBody[request.AppointmentUpsert](), s.AppointmentController.Update)
	appointments.Delete("/", s.AppointmentController.Delete)

	contacts := router.Group("/contacts/:id", s.Guards.RequireAdminOrOwnership(middleware.ContactOwner(s.DB, s.Contacts, "id")))
	contacts.Get("/", s.ContactController.Get)
	contacts.Put("/", middleware.ValidateBody[request.ContactUpsert](), s.ContactController.Update)
	contacts.Delete("/", s.ContactController.Delete)

	// NOTE: Share links carry their own signed token, no session required
	router.Get("/documents/shared/:token", s.DocumentController.DownloadShared)

	documents := router.Group("/documents/:id", s.Guards.RequireAdminOrOwnership(middleware.DocumentOwner(s.DB, s.Documents, "id")))
	documents.Get("/", s.DocumentController.Get)
	documents.Get("/download", s.DocumentController.Download)
	documents.Post("/transcribe", s.DocumentController.Transcribe)
	documents.Delete("/", s.DocumentController.Delete)
}
