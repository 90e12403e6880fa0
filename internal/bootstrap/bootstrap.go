package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/madarij/center/internal/app/controllers"
	appMigrations "github.com/madarij/center/internal/app/migrations"
	appRepos "github.com/madarij/center/internal/app/repositories"
	appRoutes "github.com/madarij/center/internal/app/routes"
	appServices "github.com/madarij/center/internal/app/services"
	"github.com/madarij/center/internal/config"
	"github.com/madarij/center/internal/db"
	"github.com/madarij/center/internal/jobs"
	appMiddleware "github.com/madarij/center/internal/middleware"
	pkgAuth "github.com/madarij/center/internal/pkg/auth"
	"github.com/madarij/center/internal/pkg/helpers"
	"github.com/madarij/center/internal/pkg/logger"
	"github.com/madarij/center/internal/pkg/mailer"
	"github.com/madarij/center/internal/pkg/websocket"
	"github.com/madarij/center/internal/scheduler"
	"github.com/madarij/center/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	Tx         *db.TxManager
	JWTService *pkgAuth.JWTService
	Mailer     mailer.Mailer
	Hub        *websocket.Hub

	StaffService         *appServices.StaffService
	StaffDirectory       *appServices.StaffDirectoryService
	NotificationService  *appServices.NotificationService
	OnboardingService    *appServices.OnboardingService
	HalqaService         *appServices.HalqaService
	CommunicationService *appServices.CommunicationService
	ReminderService      *appServices.ReminderService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Scheduler      *scheduler.Scheduler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds defaults.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(dbPool)
	stores := seed.Stores{
		Users:       repos.UserRepository,
		Assignments: repos.StaffAssignmentRepository,
		Classrooms:  repos.ClassroomRepository,
	}
	seedCfg := seed.Config{DirectorEmail: cfg.Seed.DirectorEmail, DirectorPassword: cfg.Seed.DirectorPassword}
	if err := seed.CreateDefaultData(ctx, stores, seedCfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, controllers and jobs.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Tx = db.NewTxManager(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Mailer = mailer.New(mailer.Config{
		SendGridAPIKey: cfg.Mail.SendGridAPIKey,
		FromName:       cfg.Mail.FromName,
		FromEmail:      cfg.Mail.FromEmail,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)

	hour, minute, err := helpers.ParseClock(cfg.Interview.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid interview start time: %w", err)
	}
	loc := cfg.InterviewLocation()
	slots := appServices.SlotPolicy{
		Weekdays: cfg.InterviewWeekdays(),
		Hour:     hour,
		Minute:   minute,
		Label:    cfg.Interview.SlotLabel,
		Location: loc,
	}

	repos := deps.Repos
	deps.StaffService = appServices.NewStaffService(repos.UserRepository, deps.JWTService, lgr)
	deps.StaffDirectory = appServices.NewStaffDirectoryService(repos.StaffAssignmentRepository, repos.UserRepository, lgr)
	deps.NotificationService = appServices.NewNotificationService(repos.NotificationRepository, repos.UserRepository, deps.Mailer, lgr)
	dispatcher := appServices.Dispatchers{deps.NotificationService, deps.Hub}
	deps.OnboardingService = appServices.NewOnboardingService(
		deps.Tx,
		repos.StudentRepository,
		repos.GuardianRepository,
		repos.InterviewRepository,
		repos.NotificationRepository,
		repos.HalqaRepository,
		deps.StaffDirectory,
		dispatcher,
		slots,
		lgr,
	)
	deps.HalqaService = appServices.NewHalqaService(repos.HalqaRepository, repos.ClassroomRepository, repos.UserRepository, lgr)
	deps.CommunicationService = appServices.NewCommunicationService(repos.CommunicationRepository, repos.StudentRepository, lgr)
	deps.ReminderService = appServices.NewReminderService(deps.Tx, repos.InterviewRepository, repos.NotificationRepository, dispatcher, loc, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.UserRepository, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(deps.StaffService, lgr),
		Users:         appControllers.NewUserController(deps.StaffService, deps.StaffDirectory),
		Onboarding:    appControllers.NewOnboardingController(deps.OnboardingService, lgr),
		Notifications: appControllers.NewNotificationController(deps.NotificationService),
		Halqat:        appControllers.NewHalqaController(deps.HalqaService),
		Communication: appControllers.NewCommunicationController(deps.CommunicationService),
		Live:          websocket.NewHandler(deps.Hub, lgr),
	}

	if cfg.Scheduler.Enabled {
		runner := jobs.NewRunner(deps.ReminderService, lgr)
		deps.Scheduler = scheduler.New(loc, lgr)
		if err := deps.Scheduler.Register("SendInterviewReminders", cfg.Scheduler.ReminderCron, runner.SendInterviewReminders); err != nil {
			return nil, fmt.Errorf("failed to register reminder job: %w", err)
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
