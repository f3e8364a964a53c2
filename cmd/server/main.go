// Command server runs the work platform API: account registration,
// project and curriculum management, the application lifecycle, and the
// mutual review system.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/config"
	"github.com/worklink-hub/worklink-platform/internal/application/command"
	"github.com/worklink-hub/worklink-platform/internal/application/eventhandler"
	"github.com/worklink-hub/worklink-platform/internal/application/query"
	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/messaging"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/persistence/postgres"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/persistence/redis"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/scheduler"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/scheduler/jobs"
	"github.com/worklink-hub/worklink-platform/internal/infrastructure/service"
	httpapi "github.com/worklink-hub/worklink-platform/internal/interface/http"
	"github.com/worklink-hub/worklink-platform/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		println("failed to load config:", err.Error())
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Pretty)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Database ──────────────────────────────────────────────────────────

	pgCfg := cfg.Database.Postgres()

	if cfg.Database.MigrateOnStart {
		migrator, err := postgres.NewMigrator(pgCfg)
		if err != nil {
			return err
		}
		if err := migrator.Up(); err != nil {
			return err
		}
		log.Info().Msg("database migrations applied")
	}

	conn, err := postgres.NewConnection(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	companyRepo := postgres.NewCompanyRepository(conn)
	studentRepo := postgres.NewStudentRepository(conn)
	skillCatalog := postgres.NewSkillCatalogRepository(conn)
	projectRepo := postgres.NewProjectRepository(conn)
	moduleRepo := postgres.NewModuleRepository(conn)
	applicationRepo := postgres.NewApplicationRepository(conn)
	progressRepo := postgres.NewProgressRepository(conn)
	reviewRepo := postgres.NewReviewRepository(conn)
	uow := postgres.NewUnitOfWork(conn)

	// ── Rating cache (optional) ───────────────────────────────────────────

	var ratingCache *redis.RatingCache
	if cfg.Redis.Enabled {
		cache, err := redis.NewCache(cfg.Redis.Cache())
		if err != nil {
			return err
		}
		defer cache.Close()
		ratingCache = redis.NewRatingCache(cache)
		log.Info().Msg("rating cache enabled")
	}

	// ── Event bus and services ────────────────────────────────────────────

	busCfg := messaging.DefaultInMemoryEventBusConfig()
	busCfg.AsyncMode = cfg.EventBus.AsyncMode
	busCfg.WorkerPoolSize = cfg.EventBus.WorkerPoolSize
	busCfg.Logger = log
	bus := messaging.NewInMemoryEventBus(busCfg)
	defer bus.Close()

	idGen := service.NewUUIDGenerator()
	hasher := service.NewBcryptHasher()
	sender := service.NewResilientSender(service.NewLogSender(log), log)

	subscribeHandlers(bus, reviewRepo, companyRepo, studentRepo, sender, idGen, ratingCache, log)

	// ── Application layer ─────────────────────────────────────────────────

	commands := httpapi.Commands{
		RegisterCompany:     command.NewRegisterCompanyHandler(companyRepo, hasher, idGen),
		RegisterStudent:     command.NewRegisterStudentHandler(studentRepo, skillCatalog, hasher, idGen),
		CreateProject:       command.NewCreateProjectHandler(projectRepo, companyRepo, skillCatalog, idGen),
		SetProjectStatus:    command.NewSetProjectStatusHandler(projectRepo),
		DeleteProject:       command.NewDeleteProjectHandler(uow),
		AddModule:           command.NewAddModuleHandler(uow, idGen),
		DeleteModule:        command.NewDeleteModuleHandler(uow),
		ReorderModules:      command.NewReorderModulesHandler(uow),
		Apply:               command.NewApplyHandler(uow, idGen, bus),
		ReviewApplication:   command.NewReviewApplicationHandler(uow, bus),
		WithdrawApplication: command.NewWithdrawApplicationHandler(uow, bus),
		UpdateProgress:      command.NewUpdateProgressHandler(uow, idGen, bus),
		CompleteApplication: command.NewCompleteApplicationHandler(uow),
		RecordPayment:       command.NewRecordPaymentHandler(uow, bus),
		SubmitReview:        command.NewSubmitReviewHandler(uow, idGen, bus),
		ModerateReview:      command.NewModerateReviewHandler(uow, idGen, bus),
		RespondToReview:     command.NewRespondToReviewHandler(uow, bus),
	}

	var statsCache query.StatisticsCache
	if ratingCache != nil {
		statsCache = ratingCache
	}
	queries := httpapi.Queries{
		GetProject:              query.NewGetProjectHandler(projectRepo, moduleRepo),
		GetApplication:          query.NewGetApplicationHandler(applicationRepo, progressRepo, projectRepo, moduleRepo),
		ListStudentApplications: query.NewListStudentApplicationsHandler(applicationRepo, projectRepo),
		ListProjectApplications: query.NewListProjectApplicationsHandler(applicationRepo, projectRepo),
		ListReviews:             query.NewListReviewsHandler(reviewRepo, statsCache),
	}

	// ── HTTP server ───────────────────────────────────────────────────────

	srvCfg := httpapi.DefaultServerConfig()
	srvCfg.Addr = cfg.Server.Address
	srvCfg.ReadTimeout = cfg.Server.ReadTimeout
	srvCfg.WriteTimeout = cfg.Server.WriteTimeout
	srvCfg.IdleTimeout = cfg.Server.IdleTimeout
	srvCfg.RequestTimeout = cfg.Server.RequestTimeout
	srvCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	srvCfg.AllowedOrigins = cfg.CORS.AllowedOrigins

	server := httpapi.NewServer(srvCfg, httpapi.NewHandler(commands, queries, log), log)

	sched := scheduler.New(log)
	sched.Register(jobs.NewCloseExpiredProjects(projectRepo, log), 10*time.Minute)
	sched.Start(ctx)
	defer sched.Stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	log.Info().Msg("server stopped")
	return nil
}

// subscribeHandlers wires the notification fan-out and cache invalidation
// subscribers onto the event bus.
func subscribeHandlers(
	bus *messaging.InMemoryEventBus,
	reviewRepo *postgres.ReviewRepository,
	companyRepo *postgres.CompanyRepository,
	studentRepo *postgres.StudentRepository,
	sender notification.Sender,
	idGen eventhandler.IDGenerator,
	ratingCache *redis.RatingCache,
	log zerolog.Logger,
) {
	var invalidator eventhandler.RatingInvalidator
	if ratingCache != nil {
		invalidator = ratingCache
	}

	onSubmitted := eventhandler.NewOnApplicationSubmittedHandler(sender, idGen, log)
	_ = bus.Subscribe(onSubmitted.EventType(), onSubmitted.Handle)

	onDecided := eventhandler.NewOnApplicationDecidedHandler(sender, idGen, log)
	for _, t := range onDecided.EventTypes() {
		_ = bus.Subscribe(t, onDecided.Handle)
	}

	onCurriculum := eventhandler.NewOnCurriculumCompletedHandler(sender, idGen, log)
	_ = bus.Subscribe(onCurriculum.EventType(), onCurriculum.Handle)

	onPayment := eventhandler.NewOnPaymentRecordedHandler(sender, idGen, log)
	_ = bus.Subscribe(onPayment.EventType(), onPayment.Handle)

	onReview := eventhandler.NewOnReviewSubmittedHandler(reviewRepo, companyRepo, studentRepo, sender, idGen, invalidator, log)
	_ = bus.Subscribe(onReview.EventType(), onReview.Handle)

	onModerated := eventhandler.NewOnReviewModeratedHandler(reviewRepo, sender, idGen, invalidator, log)
	for _, t := range onModerated.EventTypes() {
		_ = bus.Subscribe(t, onModerated.Handle)
	}

	onResponse := eventhandler.NewOnReviewResponseHandler(sender, idGen, log)
	_ = bus.Subscribe(onResponse.EventType(), onResponse.Handle)
}
