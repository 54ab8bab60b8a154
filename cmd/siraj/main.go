// Package main - точка входа интерактивного терминала Siraj Hub.
//
// Учёт посещаемости учебного центра: учебные сессии по субботам и
// средам, пять ежедневных молитв, месячная статистика и умные
// рекомендации наставнику.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: снапшот-хранилища, Gemini API, шина событий
// - Interface: терминальные виды
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Application layer
	"github.com/athar-center/siraj-hub/internal/application/command"
	"github.com/athar-center/siraj-hub/internal/application/insight"
	"github.com/athar-center/siraj-hub/internal/application/query"

	// Domain layer
	"github.com/athar-center/siraj-hub/internal/domain/center"

	// Infrastructure layer
	"github.com/athar-center/siraj-hub/internal/infrastructure/external/gemini"
	"github.com/athar-center/siraj-hub/internal/infrastructure/messaging"
	"github.com/athar-center/siraj-hub/internal/infrastructure/persistence/file"
	"github.com/athar-center/siraj-hub/internal/infrastructure/persistence/postgres"
	rediststore "github.com/athar-center/siraj-hub/internal/infrastructure/persistence/redis"

	// Interface layer
	"github.com/athar-center/siraj-hub/internal/interface/cli"

	// Packages
	"github.com/athar-center/siraj-hub/config"
	"github.com/athar-center/siraj-hub/pkg/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// Журнал уходит в stderr, терминал занимает stdout.
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	})
	log.Info("starting Siraj Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("storage", string(cfg.Storage.Backend)),
		logger.String("version", cfg.App.Version))

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ХРАНИЛИЩЕ СНАПШОТОВ
	// ─────────────────────────────────────────────────────────────────────────
	repo, closeRepo, err := buildSnapshotStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer closeRepo()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ВОССТАНОВЛЕНИЕ СОСТОЯНИЯ ЦЕНТРА
	// ─────────────────────────────────────────────────────────────────────────
	snap, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	hub := center.Restore(snap)
	log.Info("state restored",
		logger.StudentCount(len(snap.Students)),
		logger.RecordCount(len(snap.Records)))

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ШИНА СОБЫТИЙ, АУДИТ И УВЕДОМЛЕНИЯ
	// Синхронный режим: уведомление должно появиться до перерисовки вида.
	// ─────────────────────────────────────────────────────────────────────────
	busConfig := messaging.DefaultInMemoryEventBusConfig()
	busConfig.AsyncMode = false
	busConfig.Logger = log.With(logger.Component("event-bus"))
	bus := messaging.NewInMemoryEventBus(busConfig)
	defer bus.Close()

	if err := messaging.NewAuditSubscriber(log.With(logger.Component("audit"))).Attach(bus); err != nil {
		return fmt.Errorf("failed to attach audit subscriber: %w", err)
	}

	notices := cli.NewNoticeSink(cli.DefaultNoticeTTL)
	if err := notices.Attach(bus); err != nil {
		return fmt.Errorf("failed to attach notice sink: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. КЛИЕНТ GEMINI
	// ─────────────────────────────────────────────────────────────────────────
	geminiConfig := gemini.DefaultClientConfig(cfg.Gemini.APIKey)
	geminiConfig.BaseURL = cfg.Gemini.BaseURL
	geminiConfig.Model = cfg.Gemini.Model
	geminiConfig.Timeout = cfg.Gemini.RequestTimeout
	geminiConfig.Logger = log.With(logger.Component("gemini"))
	geminiClient := gemini.NewClient(geminiConfig)

	generator := insight.NewGenerator(geminiClient, log.With(logger.Component("insight")))

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ОБРАБОТЧИКИ ПРИЛОЖЕНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	secrets := command.Secrets{
		LoginPassphrase:  cfg.Session.LoginPassphrase,
		UnlockPassphrase: cfg.Session.UnlockPassphrase,
	}
	handlers := cli.Handlers{
		Session:     command.NewSessionHandler(secrets, bus, log),
		AddStudent:  command.NewAddStudentHandler(hub, repo, bus, log),
		SetStatus:   command.NewSetStatusHandler(hub, repo, bus, log),
		MarkAll:     command.NewMarkAllHandler(hub, repo, bus, log),
		SaveProfile: command.NewSaveProfileHandler(hub, repo, bus, log),
		Sheet:       query.NewGetSheetHandler(hub),
		Monthly:     query.NewGetMonthlyReportHandler(hub),
		History:     query.NewGetStudentHistoryHandler(hub),
		Insight:     generator,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК ТЕРМИНАЛА
	// ─────────────────────────────────────────────────────────────────────────
	app := cli.NewApp(hub, handlers, notices, os.Stdin, os.Stdout, log.With(logger.Component("cli")))
	runErr := app.Run(ctx)

	// Final flush keeps the snapshot current even if the last command
	// failed to persist.
	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := repo.Save(flushCtx, hub.Snapshot()); err != nil {
		log.Error("final snapshot flush failed", logger.Err(err))
	}

	log.Info("siraj hub stopped")
	return runErr
}

// buildSnapshotStore создаёт хранилище по выбранному бэкенду.
func buildSnapshotStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (center.SnapshotRepository, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		store, err := rediststore.NewStore(ctx, rediststore.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, log.With(logger.Component("redis-store")))
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.StoragePostgres:
		store, err := postgres.NewStore(ctx, postgres.Config{
			Host:           cfg.Database.Host,
			Port:           cfg.Database.Port,
			Database:       cfg.Database.Name,
			User:           cfg.Database.User,
			Password:       cfg.Database.Password,
			SSLMode:        cfg.Database.SSLMode,
			MaxConns:       int32(cfg.Database.MaxConns),
			MinConns:       int32(cfg.Database.MinConns),
			ConnectTimeout: cfg.Database.ConnectTimeout,
		}, log.With(logger.Component("postgres-store")))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		store := file.NewStore(cfg.Storage.FilePath, log.With(logger.Component("file-store")))
		return store, func() {}, nil
	}
}
