package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jmoiron/sqlx"

	"github.com/bidbotteam/bidbot-backend/internal/ai"
	"github.com/bidbotteam/bidbot-backend/internal/config"
	"github.com/bidbotteam/bidbot-backend/internal/db"
	"github.com/bidbotteam/bidbot-backend/internal/goroutine"
	httpHandlers "github.com/bidbotteam/bidbot-backend/internal/http/handlers"
	httpRouter "github.com/bidbotteam/bidbot-backend/internal/http/router"
	"github.com/bidbotteam/bidbot-backend/internal/logger"
	"github.com/bidbotteam/bidbot-backend/internal/repository"
	"github.com/bidbotteam/bidbot-backend/internal/service"
	"github.com/bidbotteam/bidbot-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown. Он же обрывает фоновый
	// пайплайн между работами.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret)
	bus := EventBus.New()

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	upworkAccountRepo := repository.NewUpworkAccountRepository(dbConn)
	jobRepo := repository.NewJobRepository(dbConn)
	suggestionRepo := repository.NewSuggestionRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)
	ticketRepo := repository.NewTicketRepository(dbConn)
	faqRepo := repository.NewFAQRepository(dbConn)
	templateRepo := repository.NewTemplateRepository(dbConn)
	connectsRepo := repository.NewConnectsRepository(dbConn)

	// Сервисы.
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
	estimator := service.NewEstimator(cfg.Pipeline)
	pipeline := service.NewJobPipeline(jobRepo, upworkAccountRepo, suggestionRepo, aiClient, estimator, bus)

	jobService := service.NewJobService(jobRepo, suggestionRepo, userRepo, upworkAccountRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, upworkAccountRepo)
	accountService := service.NewAccountService(userRepo, upworkAccountRepo, connectsRepo, userRepo)
	taskService := service.NewTaskService(taskRepo, userRepo, userRepo)
	supportService := service.NewSupportService(ticketRepo, faqRepo, userRepo)
	templateService := service.NewTemplateService(templateRepo)

	cleaner, err := service.NewJobCleaner(jobRepo, cfg.JobRetentionDays)
	if err != nil {
		log.Fatalf("main: не удалось запустить чистильщик объявлений: %v", err)
	}
	defer cleaner.Stop()

	// Вебсокеты: хаб и трансляция событий пайплайна.
	hub := ws.NewHub()
	goroutine.SafeGo(hub.Run)
	if _, err := ws.NewNotifier(hub, userRepo, bus); err != nil {
		log.Fatalf("main: не удалось подписать нотификатор на шину: %v", err)
	}

	// HTTP хэндлеры.
	jobHandler := httpHandlers.NewJobHandler(ctx, jobService, pipeline)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	accountHandler := httpHandlers.NewAccountHandler(accountService)
	kanbanHandler := httpHandlers.NewKanbanHandler(taskService)
	supportHandler := httpHandlers.NewSupportHandler(supportService)
	templateHandler := httpHandlers.NewTemplateHandler(templateService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		jobHandler,
		notificationHandler,
		accountHandler,
		kanbanHandler,
		supportHandler,
		templateHandler,
		wsHandler,
		healthHandler,
		tokenManager,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
