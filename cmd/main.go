package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"taskplane-backend/internal/cache"
	"taskplane-backend/internal/config"
	"taskplane-backend/internal/features/analytics"
	"taskplane-backend/internal/features/attachments"
	"taskplane-backend/internal/features/audit_logs"
	"taskplane-backend/internal/features/projects"
	"taskplane-backend/internal/features/system"
	"taskplane-backend/internal/features/tasks"
	users_controllers "taskplane-backend/internal/features/users/controllers"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	users_repositories "taskplane-backend/internal/features/users/repositories"
	users_services "taskplane-backend/internal/features/users/services"
	workspaces_controllers "taskplane-backend/internal/features/workspaces/controllers"
	workspaces_middleware "taskplane-backend/internal/features/workspaces/middleware"
	workspaces_repositories "taskplane-backend/internal/features/workspaces/repositories"
	workspaces_services "taskplane-backend/internal/features/workspaces/services"
	"taskplane-backend/internal/metrics"
	"taskplane-backend/internal/storage"
	"taskplane-backend/internal/util/logger"
	_ "taskplane-backend/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title Taskplane Backend API
// @version 1.0
// @description Multi-tenant task management API

// @host localhost:4000
// @BasePath /api
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()
	cfg := config.GetEnv()

	runMigrations(log, cfg.DatabaseDsn)

	db, err := storage.Connect(cfg.DatabaseDsn)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	go generateSwaggerDocs(log, cfg)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4"},
		),
	))

	enableCors(ginApp, cfg)

	app := buildApplication(log, cfg, db)

	ginApp.Use(app.metrics.GinMiddleware())
	app.registerRoutes(ginApp)

	if err := app.tokenCleanup.Start(); err != nil {
		log.Error("Failed to schedule token cleanup", "error", err)
		os.Exit(1)
	}
	defer app.tokenCleanup.Stop()

	startServerWithGracefulShutdown(log, cfg, ginApp)
}

// application holds the wired object graph. Everything is constructed
// explicitly here, dependencies first.
type application struct {
	metrics      *metrics.Metrics
	tokenCleanup *users_services.TokenCleanupService

	authenticate         gin.HandlerFunc
	optionalAuthenticate gin.HandlerFunc
	workspaceScope       gin.HandlerFunc

	authController       *users_controllers.AuthController
	workspaceController  *workspaces_controllers.WorkspaceController
	auditLogController   *audit_logs.AuditLogController
	projectController    *projects.ProjectController
	taskController       *tasks.TaskController
	analyticsController  *analytics.AnalyticsController
	attachmentController *attachments.AttachmentController
	healthController     *system.HealthController
}

func buildApplication(
	log *slog.Logger,
	cfg config.EnvVariables,
	db *gorm.DB,
) *application {
	appCache := cache.NewMemory()
	appMetrics := metrics.New()

	userRepository := users_repositories.NewUserRepository(db)
	refreshTokenRepository := users_repositories.NewRefreshTokenRepository(db)
	workspaceRepository := workspaces_repositories.NewWorkspaceRepository(db)
	membershipRepository := workspaces_repositories.NewMembershipRepository(db)
	auditLogRepository := audit_logs.NewAuditLogRepository(db)
	projectRepository := projects.NewProjectRepository(db)
	taskRepository := tasks.NewTaskRepository(db)
	attachmentRepository := attachments.NewAttachmentRepository(db)

	auditLogService := audit_logs.NewAuditLogService(auditLogRepository)

	tokenService := users_services.NewTokenService(
		refreshTokenRepository,
		userRepository,
		appCache,
		cfg.JwtAccessSecret,
		cfg.JwtRefreshSecret,
		cfg.AccessTokenLifetime(),
		cfg.RefreshTokenLifetime(),
	)
	userService := users_services.NewUserService(
		userRepository,
		tokenService,
		appCache,
		auditLogService,
		cfg.BcryptCost,
	)
	oauthService := users_services.NewOAuthService(
		userService,
		cfg.GitHubClientID,
		cfg.GitHubClientSecret,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
	)
	tokenCleanupService := users_services.NewTokenCleanupService(tokenService)

	contextService := workspaces_services.NewContextService(
		workspaceRepository,
		membershipRepository,
		appCache,
		cfg.WorkspaceCacheTTL(),
	)
	workspaceService := workspaces_services.NewWorkspaceService(
		workspaceRepository,
		membershipRepository,
		userRepository,
		contextService,
		auditLogService,
	)

	projectService := projects.NewProjectService(projectRepository, auditLogService)
	taskService := tasks.NewTaskService(taskRepository, projectService, auditLogService)
	analyticsService := analytics.NewAnalyticsService(
		taskRepository,
		projectRepository,
		membershipRepository,
	)

	app := &application{
		metrics:      appMetrics,
		tokenCleanup: tokenCleanupService,

		authenticate:         users_middleware.AuthMiddleware(tokenService, userService),
		optionalAuthenticate: users_middleware.OptionalAuthMiddleware(tokenService, userService),
		workspaceScope:       workspaces_middleware.WorkspaceMiddleware(contextService),

		authController: users_controllers.NewAuthController(
			userService, tokenService, oauthService,
		),
		workspaceController: workspaces_controllers.NewWorkspaceController(workspaceService),
		auditLogController:  audit_logs.NewAuditLogController(auditLogService),
		projectController:   projects.NewProjectController(projectService),
		taskController:      tasks.NewTaskController(taskService),
		analyticsController: analytics.NewAnalyticsController(analyticsService),
		healthController:    system.NewHealthController(system.NewHealthService()),
	}

	if cfg.MinioEndpoint != "" {
		blobStorage, err := attachments.NewMinioBlobStorage(&cfg)
		if err != nil {
			log.Error("Failed to create attachment storage", "error", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := blobStorage.EnsureBucket(ctx); err != nil {
			log.Error("Failed to prepare attachment bucket", "error", err)
			os.Exit(1)
		}

		attachmentService := attachments.NewAttachmentService(
			attachmentRepository,
			blobStorage,
			taskService,
			auditLogService,
		)
		app.attachmentController = attachments.NewAttachmentController(attachmentService)
	} else {
		log.Warn("MINIO_ENDPOINT not set, attachment routes disabled")
	}

	return app
}

func (app *application) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	api.GET("/metrics", app.metrics.ExpositionHandler())

	app.healthController.RegisterRoutes(api)
	app.authController.RegisterRoutes(api, app.authenticate, app.optionalAuthenticate)
	app.workspaceController.RegisterRoutes(api, app.authenticate, app.workspaceScope)
	app.auditLogController.RegisterRoutes(api, app.authenticate, app.workspaceScope)
	app.projectController.RegisterRoutes(api, app.authenticate, app.workspaceScope)
	app.taskController.RegisterRoutes(api, app.authenticate, app.workspaceScope)
	app.analyticsController.RegisterRoutes(api, app.authenticate, app.workspaceScope)

	if app.attachmentController != nil {
		app.attachmentController.RegisterRoutes(api, app.authenticate, app.workspaceScope)
	}
}

func startServerWithGracefulShutdown(
	log *slog.Logger,
	cfg config.EnvVariables,
	app *gin.Engine,
) {
	host := ""
	if cfg.EnvMode == config.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":" + cfg.HTTPPort,
		Handler: app,
	}

	go func() {
		log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	log.Info("Taskplane is running!", "http", "http://localhost:"+cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// In-flight requests get 10 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger, cfg config.EnvVariables) {
	if cfg.EnvMode == config.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func runMigrations(log *slog.Logger, databaseDsn string) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+databaseDsn,
	)
	cmd.Dir = "./migrations"

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine, cfg config.EnvVariables) {
	if cfg.EnvMode == config.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
				"x-workspace-slug",
			},
			AllowCredentials: true,
		}))
	}
}
