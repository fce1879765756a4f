// Package engine orchestrates a full protection pass over a record: law
// resolution, per-law obligations, classification, auto-encryption, and
// warning computation. Each call works on its own clone of the input record
// and shares no mutable state with other calls, so callers may run Process
// concurrently without locking.
package engine

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"privacyguard/internal/classify"
	"privacyguard/internal/consent"
	"privacyguard/internal/engine/metrics"
	"privacyguard/internal/fieldcrypt"
	"privacyguard/internal/obligation"
	"privacyguard/pkg/domain"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/record"
)

// Engine is the protection orchestrator. Construct with New; the zero value
// is not usable.
type Engine struct {
	cfg     Config
	crypto  *fieldcrypt.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New resolves the master secret per cfg and assembles an engine. Key
// resolution is the only construction-time side effect and the only point
// where the process environment is consulted.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:    cfg,
		tracer: otel.Tracer("privacyguard/engine"),
	}
	for _, opt := range opts {
		opt(e)
	}

	masterKey, err := fieldcrypt.ResolveMasterKey(cfg.EncryptionKey, cfg.Environment, os.Getenv, e.logger)
	if err != nil {
		return nil, err
	}
	crypto, err := fieldcrypt.New(masterKey, fieldcrypt.WithLogger(e.logger))
	if err != nil {
		return nil, err
	}
	e.crypto = crypto
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Process runs one protection pass and returns the protected record with its
// compliance evidence. The input record is never mutated. The sequence is
// fixed: resolve laws, apply each law's obligations in order, classify,
// auto-encrypt flagged fields, compute warnings.
func (e *Engine) Process(ctx context.Context, rec *record.Record, pctx domain.ProcessingContext) (*ProcessingResult, error) {
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "record cannot be nil")
	}

	ctx, span := e.tracer.Start(ctx, "engine.Process")
	defer span.End()
	start := time.Now()

	working := rec.Clone()

	laws := obligation.ResolveLaws(pctx)
	span.SetAttributes(attribute.Int("laws.count", len(laws)))

	var actions []domain.ActionTag
	for _, law := range laws {
		lawActions, err := obligation.ApplyLaw(working, law, pctx)
		if err != nil {
			span.RecordError(err)
			e.metrics.IncrementProcess("error")
			if e.logger != nil {
				e.logger.ErrorContext(ctx, "law application failed",
					"law", law.String(),
					"error", err,
				)
			}
			return nil, err
		}
		actions = append(actions, lawActions...)
		e.metrics.IncrementLawApplied(law.String())
	}

	classifications := classify.ClassifyRecord(working)

	// Warnings read the pre-encryption snapshot so credential checks still
	// see plaintext.
	warnings := computeWarnings(working, classifications)

	if e.cfg.AutoEncrypt {
		encRes := e.crypto.AutoEncrypt(ctx, working, classifications)
		e.metrics.AddFieldsEncrypted(len(encRes.EncryptedFields), len(encRes.FailedFields))
		for _, field := range encRes.FailedFields {
			warnings = append(warnings, Warning{
				Severity: SeverityHigh,
				Code:     WarnEncryptionDegraded,
				Message:  "field could not be encrypted and remains plaintext",
				Field:    field,
			})
		}
	}

	for _, w := range warnings {
		e.metrics.IncrementWarning(w.Code)
	}

	elapsed := time.Since(start)
	result := &ProcessingResult{
		Data: working,
		Compliance: ComplianceMetadata{
			ProcessedAt:      start.UTC(),
			ApplicableLaws:   laws,
			Actions:          actions,
			DataRights:       dataRightsUnion(laws),
			Classifications:  classifications,
			ProcessingTimeMs: uint64(elapsed.Milliseconds()),
		},
		Warnings: warnings,
	}

	e.metrics.IncrementProcess("ok")
	e.metrics.ObserveProcessLatency(elapsed)
	if e.logger != nil {
		e.logger.InfoContext(ctx, "record processed",
			"laws", len(laws),
			"actions", len(actions),
			"warnings", len(warnings),
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	return result, nil
}

// ClassifyRecord classifies without mutating or protecting anything.
func (e *Engine) ClassifyRecord(ctx context.Context, rec *record.Record) ([]classify.Classification, error) {
	if rec == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "record cannot be nil")
	}
	_, span := e.tracer.Start(ctx, "engine.ClassifyRecord")
	defer span.End()

	return classify.ClassifyRecord(rec), nil
}

// HandleDeletion returns the law-specific deletion checklist for a subject.
// Storage collaborators execute the plan; the engine deletes nothing.
func (e *Engine) HandleDeletion(ctx context.Context, userID string, law domain.LawCode) (obligation.DeletionPlan, error) {
	ctx, span := e.tracer.Start(ctx, "engine.HandleDeletion")
	defer span.End()
	span.SetAttributes(attribute.String("law", law.String()))

	plan, err := obligation.PlanDeletion(userID, law)
	if err != nil {
		span.RecordError(err)
		return obligation.DeletionPlan{}, err
	}
	if e.logger != nil {
		e.logger.InfoContext(ctx, "deletion plan issued",
			"law", law.String(),
			"actions", len(plan.Actions),
			"estimated_days", plan.EstimatedCompletionDays,
		)
	}
	return plan, nil
}

// HasValidConsent reports whether the record covers the given processing
// type. Used by transport middleware when strict consent is enabled.
func (e *Engine) HasValidConsent(rec *record.Record, processingType domain.ConsentType) bool {
	return consent.HasValidConsent(rec, processingType)
}

// Crypto exposes the field-level encryption engine for collaborators that
// decrypt on read paths.
func (e *Engine) Crypto() *fieldcrypt.Engine {
	return e.crypto
}

func dataRightsUnion(laws []domain.LawCode) []domain.RightTag {
	seen := make(map[domain.RightTag]struct{})
	var rights []domain.RightTag
	for _, law := range laws {
		for _, right := range domain.RightsFor(law) {
			if _, ok := seen[right]; ok {
				continue
			}
			seen[right] = struct{}{}
			rights = append(rights, right)
		}
	}
	return rights
}
