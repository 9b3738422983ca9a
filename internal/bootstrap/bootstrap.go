package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eren/shelfmate/docs" // Import generated swagger docs
	appControllers "github.com/eren/shelfmate/internal/app/controllers"
	appMigrations "github.com/eren/shelfmate/internal/app/migrations"
	appRepos "github.com/eren/shelfmate/internal/app/repositories"
	"github.com/eren/shelfmate/internal/app/repositories/memstore"
	appRoutes "github.com/eren/shelfmate/internal/app/routes"
	appServices "github.com/eren/shelfmate/internal/app/services"
	"github.com/eren/shelfmate/internal/config"
	"github.com/eren/shelfmate/internal/db"
	appMiddleware "github.com/eren/shelfmate/internal/middleware"
	pkgAuth "github.com/eren/shelfmate/internal/pkg/auth"
	"github.com/eren/shelfmate/internal/pkg/email"
	"github.com/eren/shelfmate/internal/pkg/helpers"
	"github.com/eren/shelfmate/internal/pkg/logger"
	"github.com/eren/shelfmate/internal/pkg/validation"
	"github.com/eren/shelfmate/internal/scheduler"
	"github.com/eren/shelfmate/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Stores            *appRepos.Stores
	BookService       *appServices.BookService
	StudentService    *appServices.StudentService
	IssueService      *appServices.IssueService
	ReminderService   *appServices.ReminderService
	AuthService       *appServices.AuthService
	AuthController    *appControllers.AuthController
	BookController    *appControllers.BookController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	JWTService        *pkgAuth.JWTService
	Notifier          email.Notifier
	Scheduler         *scheduler.ReminderScheduler
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStores builds the configured store backend. For the postgres driver it
// connects, runs migrations and seeds default data; the memory driver only
// seeds. The returned closer is a no-op for the memory driver.
func SetupStores(cfg *config.Config, lgr zerolog.Logger) (*appRepos.Stores, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Info().Msg("Using in-memory store backend")
		stores := memstore.New().Stores()
		if err := seed.CreateDefaultData(context.Background(), stores, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
		return stores, func() {}, nil

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := migrator.MigrateAll(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		stores := appRepos.NewPostgresStores(database.Pool)
		if err := seed.CreateDefaultData(context.Background(), stores, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
		return stores, database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// BuildDependencies initializes application stores, services, and controllers.
func BuildDependencies(cfg *config.Config, stores *appRepos.Stores, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Stores: stores}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Notifier = email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	// Services
	deps.BookService = appServices.NewBookService(stores.Books, stores.Issues)
	deps.StudentService = appServices.NewStudentService(stores.Students, stores.Issues)
	deps.IssueService = appServices.NewIssueService(deps.BookService, deps.StudentService, stores.Issues)
	deps.ReminderService = appServices.NewReminderService(stores.Issues, deps.Notifier, lgr)
	deps.AuthService = appServices.NewAuthService(stores.Librarians, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.BookController = appControllers.NewBookController(deps.BookService, deps.IssueService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.IssueService)

	if cfg.Reminder.Enabled {
		deps.Scheduler = scheduler.NewReminderScheduler(
			deps.ReminderService,
			cfg.Reminder.HorizonDays,
			cfg.Reminder.Hour,
			lgr,
		)
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.RegisterBindingValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.BookController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	return router
}
