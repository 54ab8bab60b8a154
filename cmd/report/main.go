// Package main - разовая печать месячного отчёта Siraj Hub.
//
// Читает снапшот из настроенного хранилища, печатает лидерборд месяца
// и, по запросу, умную рекомендацию Gemini. Подходит для cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/athar-center/siraj-hub/internal/application/insight"
	"github.com/athar-center/siraj-hub/internal/application/query"
	"github.com/athar-center/siraj-hub/internal/domain/access"
	"github.com/athar-center/siraj-hub/internal/domain/center"
	"github.com/athar-center/siraj-hub/internal/infrastructure/external/gemini"
	"github.com/athar-center/siraj-hub/internal/infrastructure/persistence/file"
	"github.com/athar-center/siraj-hub/internal/infrastructure/persistence/postgres"
	rediststore "github.com/athar-center/siraj-hub/internal/infrastructure/persistence/redis"
	"github.com/athar-center/siraj-hub/internal/interface/cli"

	"github.com/athar-center/siraj-hub/config"
	"github.com/athar-center/siraj-hub/pkg/logger"
	"github.com/athar-center/siraj-hub/pkg/timeutil"
)

func main() {
	month := flag.Int("month", 0, "season month 1-7 (default: current)")
	withInsight := flag.Bool("insight", false, "append the Gemini recommendation")
	flag.Parse()

	if err := run(context.Background(), *month, *withInsight); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, month int, withInsight bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	})

	repo, closeRepo, err := openSnapshotStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer closeRepo()

	snap, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	hub := center.Restore(snap)

	seasonMonth := access.SeasonMonth(month)
	if !seasonMonth.IsValid() {
		seasonMonth = access.InitialViewMonth(timeutil.Now())
	}
	dto, err := query.NewGetMonthlyReportHandler(hub).Handle(ctx, query.GetMonthlyReportQuery{
		Month: int(seasonMonth),
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	presenter := cli.NewPresenter()
	fmt.Print(presenter.FormatMonthly(dto))

	if withInsight {
		geminiConfig := gemini.DefaultClientConfig(cfg.Gemini.APIKey)
		geminiConfig.BaseURL = cfg.Gemini.BaseURL
		geminiConfig.Model = cfg.Gemini.Model
		geminiConfig.Timeout = cfg.Gemini.RequestTimeout
		geminiConfig.Logger = log.With(logger.Component("gemini"))

		generator := insight.NewGenerator(gemini.NewClient(geminiConfig), log.With(logger.Component("insight")))
		records := hub.RecordsForMonth(int(seasonMonth))

		insightCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		result := generator.Generate(insightCtx, hub.Students(), records)
		fmt.Println()
		fmt.Println(result.Text)
	}

	return nil
}

// openSnapshotStore открывает хранилище по выбранному бэкенду.
func openSnapshotStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (center.SnapshotRepository, func(), error) {
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
