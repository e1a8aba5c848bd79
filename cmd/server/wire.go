package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go.uber.org/zap"

	"studio-ops.backend/internal/config"
	"studio-ops.backend/internal/domain/gateways"
	"studio-ops.backend/internal/infrastructure/agent"
	"studio-ops.backend/internal/infrastructure/datasources/postgres"
	chat "studio-ops.backend/internal/infrastructure/discord"
	"studio-ops.backend/internal/infrastructure/jobs"
	"studio-ops.backend/internal/infrastructure/queue"
	"studio-ops.backend/internal/infrastructure/repositories"
	"studio-ops.backend/internal/infrastructure/storage"
	"studio-ops.backend/internal/interfaces/discord"
	"studio-ops.backend/internal/interfaces/http/handlers"
	"studio-ops.backend/internal/interfaces/http/middleware"
	"studio-ops.backend/internal/usecases"
	"studio-ops.backend/pkg/jwt"
	"studio-ops.backend/pkg/logger"
	"studio-ops.backend/pkg/redis"
)

const limiterTTL = 10 * time.Minute

var openAnalytics = postgres.NewConnection

// container is the wired object graph shared by the subcommands
type container struct {
	registrar      *discord.Registrar
	router         *discord.Router
	reminderWorker *jobs.ReminderWorker
	routes         routeDeps
	analytics      *sql.DB
}

func (c *container) Close() {
	if c.analytics != nil {
		_ = c.analytics.Close()
	}
}

func newFileStorage(cfg config.StorageConfig) gateways.FileStorage {
	if cfg.Driver == "supabase" && cfg.SupabaseURL != "" {
		return storage.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	}
	return storage.NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
}

// wire builds repositories, usecases and both interfaces over the opened resources.
func wire(a *app) *container {
	cfg := a.cfg
	ctx := context.Background()

	// Repositories
	uow := repositories.NewUnitOfWork(a.db)
	userRepo := repositories.NewUserRepository(a.db)
	teamRepo := repositories.NewTeamRepository(a.db)
	projectRepo := repositories.NewProjectRepository(a.db)
	attachmentRepo := repositories.NewProjectAttachmentRepository(a.db)
	taskRepo := repositories.NewTaskRepository(a.db)
	offeringRepo := repositories.NewOfferingRepository(a.db)
	payrollRepo := repositories.NewPayrollRepository(a.db)
	statRepo := repositories.NewStatisticRepository(a.db)

	// Gateways
	gateway := chat.NewGateway(a.session, chat.NewFileOpener(http.DefaultClient, cfg.Storage.LocalDir))
	reminderQueue := queue.NewRedisReminderQueue(redis.GetClient(), "")
	assistant := agent.NewClient(cfg.Agent.URL, cfg.Agent.APIKey, cfg.Agent.Timeout)

	var analytics *sql.DB
	if cfg.Analytics.URL != "" {
		db, err := openAnalytics(config.DatabaseConfig{DSN: cfg.Analytics.URL})
		if err != nil {
			logger.Warn(ctx, "Analytics database not available, execute_query is disabled", zap.Error(err))
		} else {
			analytics = db
		}
	}
	runner := postgres.NewQueryRunner(analytics, cfg.Analytics.QueryTimeout)

	// Usecases
	admin := usecases.NewAdminPolicy(cfg.Discord.AdminUserID)
	loc := cfg.Studio.Location()

	offeringUsecase := usecases.NewOfferingUsecase(uow, offeringRepo, projectRepo, teamRepo, taskRepo, attachmentRepo, gateway, reminderQueue, admin, usecases.ReminderSettings{
		OfferingOffsets: cfg.Worker.OfferingReminderOffset,
		DeadlineOffsets: cfg.Worker.DeadlineReminderOffset,
		Location:        loc,
	})
	projectUsecase := usecases.NewProjectUsecase(uow, projectRepo, taskRepo, attachmentRepo, teamRepo, offeringUsecase)
	taskUsecase := usecases.NewTaskUsecase(uow, taskRepo, projectRepo, offeringUsecase)
	payrollUsecase := usecases.NewPayrollUsecase(uow, payrollRepo, projectRepo, teamRepo, offeringUsecase)
	teamUsecase := usecases.NewTeamUsecase(teamRepo)
	statisticUsecase := usecases.NewStatisticUsecase(statRepo, teamRepo, loc, cfg.Studio.StatisticCacheTTL)
	attachmentUsecase := usecases.NewProjectAttachmentUsecase(attachmentRepo, projectRepo)
	uploadUsecase := usecases.NewUploadUsecase(newFileStorage(cfg.Storage))
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, cfg.Auth.GoogleVerifySecret)
	queryUsecase := usecases.NewQueryUsecase(assistant, runner)
	botUsecase := usecases.NewBotUsecase(offeringRepo, teamRepo, projectUsecase, statisticUsecase, admin, cfg.Discord.GuildID)
	reminderUsecase := usecases.NewReminderUsecase(offeringRepo, projectRepo, gateway, admin)

	// Discord interface
	registrar := discord.NewRegistrar(a.session, cfg.Discord.ApplicationID, cfg.Discord.GuildID)
	router := discord.NewRouter()
	discord.NewHandlers(botUsecase, offeringUsecase, queryUsecase, gateway).Register(router)

	return &container{
		registrar:      registrar,
		router:         router,
		reminderWorker: jobs.NewReminderWorker(reminderQueue, reminderUsecase, cfg.Worker.PollInterval, cfg.Worker.BatchSize),
		analytics:      analytics,
		routes: routeDeps{
			authHandler:              handlers.NewAuthHandler(authUsecase),
			teamHandler:              handlers.NewTeamHandler(teamUsecase),
			projectHandler:           handlers.NewProjectHandler(projectUsecase),
			projectAttachmentHandler: handlers.NewProjectAttachmentHandler(attachmentUsecase),
			taskHandler:              handlers.NewTaskHandler(taskUsecase),
			offeringHandler:          handlers.NewOfferingHandler(offeringUsecase),
			payrollHandler:           handlers.NewPayrollHandler(payrollUsecase),
			statisticHandler:         handlers.NewStatisticHandler(statisticUsecase),
			uploadHandler:            handlers.NewUploadHandler(uploadUsecase),
			discordHandler:           handlers.NewDiscordHandler(registrar, cfg.Discord.BotSecret),
			authMiddleware:           middleware.AuthMiddleware(jwtService),
			authRateLimit:            middleware.NewRateLimiter(cfg.Auth.RatePerSecond, cfg.Auth.RateBurst, limiterTTL).Middleware(),
		},
	}
}
