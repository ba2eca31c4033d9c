package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/school-service/internal/api/http"
	"github.com/spec-kit/school-service/internal/api/http/handlers"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/config"
	"github.com/spec-kit/school-service/internal/events"
	"github.com/spec-kit/school-service/internal/observability"
	"github.com/spec-kit/school-service/internal/persistence"
	"github.com/spec-kit/school-service/internal/repository"
	"github.com/spec-kit/school-service/internal/service"
	"github.com/spec-kit/school-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	medicalRepo := repository.NewMedicalRecordRepository(pool)
	revocationRepo := repository.NewRevocationRepository(redis.Client, cfg.Auth.TokenTTL())

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), cfg.Auth.Leeway())
	sessionService := service.NewSessionService(userRepo, revocationRepo, tokenMgr, logger)
	authMiddleware := auth.NewMiddleware(sessionService)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	studentService := service.NewStudentService(studentRepo, medicalRepo, dispatcher)
	courseService := service.NewCourseService(courseRepo)
	classService := service.NewClassService(service.ClassDependencies{
		ClassRepo:   classRepo,
		CourseRepo:  courseRepo,
		StudentRepo: studentRepo,
		UserRepo:    userRepo,
	}, dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(sessionService),
		Users:          handlers.NewUsersHandler(userService),
		Students:       handlers.NewStudentsHandler(studentService),
		Courses:        handlers.NewCoursesHandler(courseService),
		Classes:        handlers.NewClassesHandler(classService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
