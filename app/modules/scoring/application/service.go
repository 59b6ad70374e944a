// Package scoringservice exposes the scoring module's operations: scoreboard
// computation, score edits, invalidation resolution, and scorecard export.
package scoringservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	catalogservice "github.com/fairway-labs/looper/app/modules/catalog/application"
	"github.com/fairway-labs/looper/app/modules/scoring/engine"
	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared/attr"
	"github.com/fairway-labs/looper/app/shared/observability"
	"github.com/fairway-labs/looper/app/shared/results"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ScoringService implements the Service interface.
type ScoringService struct {
	repo    scoringdb.Repository
	logger  *slog.Logger
	metrics observability.ScoringMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	repo scoringdb.Repository,
	logger *slog.Logger,
	metrics observability.ScoringMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ScoringService {
	return &ScoringService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery. This standardizes observability across all service methods.
func withTelemetry[S any, F any](
	s *ScoringService,
	ctx context.Context,
	operationName string,
	gameID sharedtypes.GameID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", string(gameID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, gameID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.GameID("game_id", string(gameID)),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.GameID("game_id", string(gameID)),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, gameID)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", string(gameID)),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, gameID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GameID("game_id", string(gameID)),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			attr.String("operation", operationName),
			attr.GameID("game_id", string(gameID)),
			attr.ExtractCorrelationID(ctx),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName, gameID)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoringService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

// loadGame fetches a game snapshot and restores its compiled rule trees.
func (s *ScoringService) loadGame(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*sharedtypes.Game, error) {
	dbStart := time.Now()
	game, err := s.repo.GetGame(ctx, db, gameID)
	s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
	if err != nil {
		return nil, err
	}
	if err := catalogservice.CompileGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

// compute derives pops and runs the pure scoring pass over a snapshot.
func (s *ScoringService) compute(ctx context.Context, game *sharedtypes.Game) *sharedtypes.ComputedResults {
	engine.ApplyPops(game)
	computed := engine.Score(game)

	scored := 0
	for _, hole := range computed.Holes {
		if hole.ScoresEntered > 0 {
			scored++
		}
	}
	s.metrics.RecordHolesScored(ctx, game.ID, scored)
	return computed
}
