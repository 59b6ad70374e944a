// Package catalogservice owns the rule catalog: loading spec files,
// compiling their expressions, and serving published specs to other modules.
package catalogservice

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	catalogdb "github.com/fairway-labs/looper/app/modules/catalog/infrastructure/repositories"
	"github.com/fairway-labs/looper/app/shared/attr"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// CatalogService implements the Service interface.
type CatalogService struct {
	repo   catalogdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo catalogdb.Repository, logger *slog.Logger, tracer trace.Tracer) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
		tracer: tracer,
	}
}

// GetSpec returns the latest published version of a spec with its
// expressions compiled.
func (s *CatalogService) GetSpec(ctx context.Context, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error) {
	ctx, span := s.tracer.Start(ctx, "GetSpec", trace.WithAttributes(
		attribute.String("spec_key", string(key)),
	))
	defer span.End()

	spec, err := s.repo.GetSpec(ctx, nil, key)
	if err != nil {
		return nil, fmt.Errorf("GetSpec: %w", err)
	}
	if err := CompileSpec(spec); err != nil {
		// A stored spec that no longer compiles is corrupt catalog data.
		s.logger.ErrorContext(ctx, "Stored spec failed to compile",
			attr.String("spec_key", string(key)),
			attr.Error(err),
		)
		return nil, fmt.Errorf("GetSpec: %w", err)
	}
	return spec, nil
}

// SyncDir loads a catalog directory and publishes every spec it contains.
// Used at startup and by the validate-catalog command's --publish mode.
func (s *CatalogService) SyncDir(ctx context.Context, dir string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "SyncDir", trace.WithAttributes(
		attribute.String("catalog_dir", dir),
	))
	defer span.End()

	specs, err := LoadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("SyncDir: %w", err)
	}
	for _, spec := range specs {
		if err := s.repo.UpsertSpec(ctx, nil, spec); err != nil {
			return 0, fmt.Errorf("SyncDir: %w", err)
		}
		s.logger.InfoContext(ctx, "Published spec",
			attr.String("spec_key", string(spec.Key)),
			attr.Int("version", spec.Version),
		)
	}
	return len(specs), nil
}
