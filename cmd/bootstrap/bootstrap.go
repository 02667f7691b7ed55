package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hospital-management/config"
	deliveryHttp "go-hospital-management/internal/delivery/http"
	"go-hospital-management/internal/delivery/http/handler"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/delivery/http/view"
	"go-hospital-management/internal/infrastructure/cache"
	"go-hospital-management/internal/infrastructure/database"
	"go-hospital-management/internal/infrastructure/session"
	"go-hospital-management/internal/repository"
	"go-hospital-management/internal/service"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/jwt"
	"go-hospital-management/pkg/metrics"
	"go-hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

const metricsNamespace = "hospital"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	logOutput io.Closer
}

// Load reads the configuration, sets up logging and opens the database.
// It is all the migrate and seed commands need.
func Load() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{Config: cfg}
	app.Log, app.logOutput = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	db, err := database.NewConnection(cfg.DB, app.Log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	return app, nil
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app, err := Load()
	if err != nil {
		return nil, err
	}
	cfg := app.Config

	if cfg.Session.Secret == config.DefaultSecretKey {
		if cfg.IsProduction() {
			app.Log.Warn("SECRET_KEY is the built-in development key; set a real secret in production")
		} else {
			app.Log.Debug("Using the built-in development SECRET_KEY")
		}
	}

	if err := app.Migrate(); err != nil {
		app.Close()
		return nil, err
	}

	if cfg.App.SeedOnStart {
		if err := app.Seed(context.Background()); err != nil {
			app.Close()
			return nil, err
		}
	}

	var store session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, app.Log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Redis connected successfully")
		store = session.NewRedisStore(redisClient)
	default:
		store = session.NewMemoryStore(10 * time.Minute)
	}

	server, err := initializeServer(cfg, app.Log, app.DB, store)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger builds the JSON logrus logger, writing to LOG_FILE with rotation when set.
func setupLogger(cfg config.LogConfig) (*logrus.Logger, io.Closer) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		return log, nil
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	return log, rotating
}

// Migrate creates or updates the schema.
func (app *App) Migrate() error {
	if err := database.Migrate(app.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	app.Log.Info("Database migrated successfully")
	return nil
}

// Seed inserts the demo accounts and visits. Running it twice changes nothing.
func (app *App) Seed(ctx context.Context) error {
	seeder := service.NewSeedService(
		app.DB,
		app.Log,
		repository.NewUserRepository(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewAppointmentRepository(),
		repository.NewMedicalRecordRepository(),
	)
	if err := seeder.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// NewHandler wires every layer on top of db and returns the HTTP handler.
func NewHandler(cfg *config.Config, log *logrus.Logger, db *gorm.DB, store session.Store, m *metrics.Metrics, now func() time.Time) (http.Handler, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, m, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo, doctorRepo, appointmentRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, userRepo, patientRepo, appointmentRepo, medicalRecordRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, patientRepo, doctorRepo, appointmentRepo, medicalRecordRepo, auditService, now)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, doctorRepo, patientRepo, appointmentRepo, medicalRecordRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, doctorRepo, patientRepo, appointmentRepo, now)

	// Initialize sessions and views
	sessions := session.NewManager(store, jwtService, cfg.Session.Secure, log)
	renderer, err := view.NewRenderer(sessions, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:          handler.NewAuthHandler(authUsecase, sessions, customValidator, renderer, m, log),
		Dashboard:     handler.NewDashboardHandler(dashboardUsecase, renderer),
		Doctor:        handler.NewDoctorHandler(doctorUsecase, customValidator, renderer),
		Patient:       handler.NewPatientHandler(patientUsecase, customValidator, renderer),
		Appointment:   handler.NewAppointmentHandler(appointmentUsecase, doctorUsecase, renderer),
		MedicalRecord: handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator, renderer),
		AuditLog:      handler.NewAuditLogHandler(auditLogUsecase, renderer),
		Health:        handler.NewHealthHandler(db, log),
	}

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessions, log)
	authMiddleware := middleware.NewAuthMiddleware(renderer)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.Login, renderer)

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, sessionMiddleware, authMiddleware, loginLimiter, renderer, m, log)
	return router.Setup(), nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, store session.Store) (*http.Server, error) {
	httpHandler, err := NewHandler(cfg, log, db, store, metrics.New(metricsNamespace), time.Now)
	if err != nil {
		return nil, err
	}

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:         serverAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Log.Info("Server shutdown complete")

	// Close connections
	app.Close()
}

// Close closes all connections (database, redis, log file)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if app.logOutput != nil {
		app.logOutput.Close()
	}
}
