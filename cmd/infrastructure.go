package cmd

import (
	"context"
	"fmt"
	"log/slog"

	eventkafka "forwarding/internal/adapters/out/kafka"
	"forwarding/internal/adapters/out/memory"
	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/adapters/out/postgres/reportreader"
	"forwarding/internal/core/ports"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store is the persistence the use cases run on.
type Store struct {
	UoWFactory ports.UnitOfWorkFactory
	Reader     ports.ReportReader
	Close      func() error
}

// OpenStore connects to Postgres and migrates the schema, or falls back to
// the in-memory store when no database is configured.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (Store, error) {
	if !cfg.UsesDatabase() {
		logger.WarnContext(ctx, "DB_HOST is empty, using the in-memory store")
		store := memory.NewStore()
		return Store{
			UoWFactory: store,
			Reader:     memory.NewReportReader(store),
			Close:      func() error { return nil },
		}, nil
	}

	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return Store{}, fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Store{}, fmt.Errorf("get sql.DB: %w", err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return Store{}, fmt.Errorf("ping postgres: %w", err)
	}
	if err = postgres.Migrate(db.WithContext(ctx)); err != nil {
		_ = sqlDB.Close()
		return Store{}, fmt.Errorf("migrate schema: %w", err)
	}

	logger.InfoContext(ctx, "Connected to postgres", "host", cfg.DBHost, "database", cfg.DBName)
	return Store{
		UoWFactory: postgres.NewGormUnitOfWorkFactory(db),
		Reader:     reportreader.NewGormReportReader(db),
		Close:      sqlDB.Close,
	}, nil
}

// EventSink is where committed domain events go.
type EventSink struct {
	Publisher ports.EventPublisher
	Close     func() error
}

// OpenEventSink publishes to Kafka when brokers are configured and to the
// log otherwise.
func OpenEventSink(ctx context.Context, cfg Config, logger *slog.Logger) EventSink {
	if !cfg.UsesKafka() {
		logger.WarnContext(ctx, "KAFKA_BROKERS is empty, domain events are only logged")
		return EventSink{Publisher: eventkafka.NewLogPublisher(logger), Close: func() error { return nil }}
	}

	publisher := eventkafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderChangedTopic, logger)
	return EventSink{Publisher: publisher, Close: publisher.Close}
}
