package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"

	"privacyguard/internal/audit"
	auditconsumer "privacyguard/internal/audit/consumer"
	auditmem "privacyguard/internal/audit/store/memory"
	auditpg "privacyguard/internal/audit/store/postgres"
	"privacyguard/internal/engine"
	enginemetrics "privacyguard/internal/engine/metrics"
	"privacyguard/internal/jwtauth"
	"privacyguard/internal/migrate"
	"privacyguard/internal/platform/config"
	"privacyguard/internal/platform/kafka/consumer"
	"privacyguard/internal/platform/kafka/producer"
	"privacyguard/internal/platform/metrics"
	"privacyguard/internal/platform/redis"
	"privacyguard/internal/storage"
	"privacyguard/internal/storage/postgres"
	"privacyguard/internal/storage/retention"
	httptransport "privacyguard/internal/transport/http"
)

const (
	jwtIssuer   = "privacyguard"
	jwtAudience = "privacyguard-api"

	auditConsumerGroup = "privacyguard-audit"
	auditPartitions    = 3
)

// app is the composed dependency graph plus everything that must be released
// on the way down.
type app struct {
	router  http.Handler
	closers []func()
}

// close releases resources in reverse construction order so consumers stop
// before the stores and clients they write to.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// buildApp assembles storage, messaging, the engine, and the HTTP surface.
// Postgres, Redis, and Kafka are each optional: absent configuration degrades
// to in-memory stores, no retention cache, and no audit fan-out.
func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	a := &app{}
	var checks []func(context.Context) error

	// Storage. With a DSN configured both the record store and the audit
	// store live in Postgres; otherwise everything stays in memory.
	var recordStore storage.RecordStore
	var auditStore audit.Store
	var materializerStore auditconsumer.EventStore

	if cfg.PostgresDSN != "" {
		if err := migrate.Up(ctx, cfg.PostgresDSN); err != nil {
			a.close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		db, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.onClose(db.Close)
		recordStore = postgres.NewRecordStore(db)
		checks = append(checks, func(ctx context.Context) error {
			_, err := db.Pool.Exec(ctx, "SELECT 1")
			return err
		})

		sqlDB, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open audit store: %w", err)
		}
		a.onClose(func() { _ = sqlDB.Close() })
		pgAudit := auditpg.New(sqlDB)
		auditStore = pgAudit
		materializerStore = pgAudit
	} else {
		log.Warn("no postgres DSN configured, using in-memory stores")
		recordStore = storage.NewInMemoryRecordStore()
		auditStore = auditmem.NewInMemoryStore()
	}

	// Redis backs the retention cache. Without it records still persist;
	// only the TTL-driven expiry view is lost.
	var retentionCache httptransport.RetentionCache
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		a.onClose(func() { _ = rdb.Close() })
		retentionCache = retention.NewCache(rdb.Client)
		checks = append(checks, rdb.Health)
	}

	// Kafka fans audit events out to category topics and, when Postgres is
	// present, a materializer consumer writes them back into the audit
	// store. AppendWithID makes the direct and consumed paths idempotent.
	publisherOpts := []audit.Option{}
	if cfg.Kafka.Buffer > 0 {
		publisherOpts = append(publisherOpts, audit.WithAsyncBuffer(cfg.Kafka.Buffer))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		prod, err := producer.New(cfg.Kafka.Brokers, log)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		a.onClose(prod.Close)
		checks = append(checks, prod.Health)

		topics := audit.Topics(cfg.Kafka.TopicPrefix)
		if err := prod.EnsureTopics(ctx, auditPartitions, topics...); err != nil {
			a.close()
			return nil, fmt.Errorf("ensure audit topics: %w", err)
		}
		publisherOpts = append(publisherOpts, audit.WithSink(audit.NewKafkaSink(prod, cfg.Kafka.TopicPrefix, log)))

		if materializerStore != nil {
			if err := a.startMaterializer(ctx, cfg, materializerStore, log); err != nil {
				a.close()
				return nil, err
			}
		}
	}

	publisher := audit.NewPublisher(auditStore, publisherOpts...)
	a.onClose(publisher.Close)

	// Engine and authentication.
	eng, err := engine.New(engine.Config{
		AutoEncrypt:   cfg.AutoEncrypt,
		StrictConsent: cfg.StrictConsent,
		Environment:   cfg.Environment,
		EncryptionKey: cfg.EncryptionKey,
	}, engine.WithLogger(log), engine.WithMetrics(enginemetrics.New()))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	validator := jwtauth.NewServiceAdapter(jwtauth.NewService(cfg.JWTSigningKey, jwtIssuer, jwtAudience))

	a.router = httptransport.NewRouter(httptransport.RouterDeps{
		Logger:       log,
		Metrics:      metrics.New(),
		JWTValidator: validator,
		Process:      httptransport.NewProcessHandler(eng, recordStore, retentionCache, publisher, cfg.StrictConsent, log),
		Deletion:     httptransport.NewDeletionHandler(eng, recordStore, retentionCache, publisher, log),
		Consent:      httptransport.NewConsentHandler(recordStore, publisher, log),
		Audit:        httptransport.NewAuditHandler(publisher, log),
		Health:       healthOf(checks),
	})
	return a, nil
}

// startMaterializer runs the audit consumer group that turns Kafka topics
// back into audit store rows. Compliance events block commits on store
// failure; operations events are best-effort.
func (a *app) startMaterializer(ctx context.Context, cfg config.Server, store auditconsumer.EventStore, log *slog.Logger) error {
	router := auditconsumer.NewRouter(log, auditconsumer.NewOpsHandler(store, log))
	router.Register(
		audit.TopicFor(cfg.Kafka.TopicPrefix, audit.CategoryCompliance),
		auditconsumer.NewComplianceHandler(store, log),
	)

	cons, err := consumer.New(cfg.Kafka.Brokers, auditConsumerGroup, audit.Topics(cfg.Kafka.TopicPrefix), router, log)
	if err != nil {
		return fmt.Errorf("create audit consumer: %w", err)
	}
	a.onClose(cons.Close)

	go func() {
		if err := cons.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("audit consumer stopped", "error", err)
		}
	}()
	return nil
}

func healthOf(checks []func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
