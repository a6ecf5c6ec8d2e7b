package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health_record_ms/config"
	"health_record_ms/controller"
	"health_record_ms/middleware"
	"health_record_ms/repository"
	"health_record_ms/services"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	//DB
	dbConnection *gorm.DB

	//Redis Client
	redisClient *redis.Client

	//WebAuthn Conf
	webAuthn *webauthn.WebAuthn

	//Logger
	logger *zap.Logger

	// Repository
	userRepository        repository.IUserRepository
	medicineRepository    repository.IMedicineRepository
	doctorRepository      repository.IDoctorRepository
	appointmentRepository repository.IAppointmentRepository
	contactRepository     repository.IContactRepository
	documentRepository    repository.IDocumentRepository
	reminderRepository    repository.IReminderRepository

	// Service
	cacheService         services.ICacheService
	passkeyService       services.IPasskeyService
	sessionService       services.ISessionService
	medicineService      services.IMedicineService
	doctorService        services.IDoctorService
	appointmentService   services.IAppointmentService
	contactService       services.IContactService
	storageService       services.IStorageService
	transcriptionService services.ITranscriptionService
	documentService      services.IDocumentService
	eventPublisher       services.IEventPublisher
	reminderService      *services.ReminderService
	notifierService      *services.NotifierService

	// Middleware
	guards *middleware.Guards

	// Controller
	authController        controller.IAuthController
	medicineController    controller.IMedicineController
	doctorController      controller.IDoctorController
	appointmentController controller.IAppointmentController
	contactController     controller.IContactController
	documentController    controller.IDocumentController

	stopWorkers chan struct{}
}

// NOTE: Service Start
func (s *service) Start() {
	log.Info("Opening database connection...")
	s.dbConnection = config.OpenDatabaseConnection(config.Conf.Application.Datasource.PrimaryURL)
	config.Migrate(config.Conf.Application.Datasource.PrimaryURL)

	log.Info("Opening redis connection...")
	s.redisClient = config.ConnectToRedis(config.Conf.Application.Redis.Host)

	log.Info("WebAuthn config")
	s.webAuthn = config.InitWebAuthn()

	s.logger = config.InitLogger()
	middleware.InitValidator()

	// NOTE: Dependency Injections
	s.DependencyInjection()

	// NOTE: Background workers for reminder scanning and SMS delivery
	s.stopWorkers = make(chan struct{})
	go s.reminderService.Run(s.stopWorkers)
	go s.notifierService.ConsumeReminderEvents(s.stopWorkers)

	// NOTE: Start Fiber server...
	app := NewServer(
		s.logger,
		s.guards,
		s.dbConnection,
		s.medicineRepository,
		s.doctorRepository,
		s.appointmentRepository,
		s.contactRepository,
		s.documentRepository,
		s.authController,
		s.medicineController,
		s.doctorController,
		s.appointmentController,
		s.contactController,
		s.documentController,
	).Start()

	log.Info("Server starting..")
	// NOTE: Server start with goroutine
	go func() {
		if err := app.Listen(config.Conf.Application.Server.Port); err != nil {
			log.Fatal("Server failed to start")
		}
	}()
	// NOTE: Keep OS signals for graceful shutdown
	s.gracefulShutdown(app)
}

// NOTE: Depency Injection Operation
func (s *service) DependencyInjection() {
	// NOTE: Repositories Injections
	s.userRepository = repository.NewUserRepository()
	s.medicineRepository = repository.NewMedicineRepository()
	s.doctorRepository = repository.NewDoctorRepository()
	s.appointmentRepository = repository.NewAppointmentRepository()
	s.contactRepository = repository.NewContactRepository()
	s.documentRepository = repository.NewDocumentRepository()
	s.reminderRepository = repository.NewReminderRepository()

	// NOTE: Services Injections
	s.cacheService = services.NewCacheService(s.redisClient)
	s.passkeyService = services.NewPasskeyService(s.webAuthn, s.dbConnection, s.userRepository, s.cacheService)
	s.sessionService = services.NewSessionService(s.dbConnection, s.userRepository, s.cacheService)
	s.medicineService = services.NewMedicineService(s.dbConnection, s.medicineRepository)
	s.doctorService = services.NewDoctorService(s.dbConnection, s.doctorRepository)
	s.appointmentService = services.NewAppointmentService(s.dbConnection, s.appointmentRepository, s.doctorRepository)
	s.contactService = services.NewContactService(s.dbConnection, s.contactRepository)
	s.storageService = services.NewStorageService(config.Conf.Application.Storage)
	s.transcriptionService = services.NewTranscriptionService(config.Conf.Application.Speech)
	s.documentService = services.NewDocumentService(s.dbConnection, s.documentRepository, s.storageService, s.transcriptionService)
	s.eventPublisher = services.NewKafkaPublisher()
	s.reminderService = services.NewReminderService(s.dbConnection, s.reminderRepository, s.medicineRepository, s.appointmentRepository, s.userRepository, s.eventPublisher)
	s.notifierService = services.NewNotifierService()

	// NOTE: Middleware Injections
	s.guards = middleware.NewGuards(s.sessionService)

	// NOTE: Controllers Injections
	s.authController = controller.NewAuthController(s.passkeyService, s.sessionService)
	s.medicineController = controller.NewMedicineController(s.medicineService)
	s.doctorController = controller.NewDoctorController(s.doctorService)
	s.appointmentController = controller.NewAppointmentController(s.appointmentService)
	s.contactController = controller.NewContactController(s.contactService)
	s.documentController = controller.NewDocumentController(s.documentService)
}

// NOTE: Graceful shutdown operation
func (s *service) gracefulShutdown(app *fiber.App) {

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// NOTE:Server Shutdown when keep signal
	<-sigChan
	log.Info("Shutting down server...")
	close(s.stopWorkers)

	// NOTE: Creating context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// NOTE: Shutdown Fiber server
	if err := app.Shutdown(); err != nil {
		log.Error("error while shutting down app", err)
	}

	// NOTE: Shutdown Database connection
	done := make(chan bool)
	go func() {
		config.CloseDatabaseConnection(s.dbConnection)
		done <- true
	}()

	select {
	case <-ctx.Done():
		log.Error("timeout while shutting down database", ctx.Err())
	case <-done:
		log.Info("database is gracefully shutdown", ctx.Err())
	}
}
