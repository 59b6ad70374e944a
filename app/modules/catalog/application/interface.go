package catalogservice

import (
	"context"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// Service is the catalog module's operation surface.
type Service interface {
	// GetSpec returns the latest published version of a spec, compiled.
	GetSpec(ctx context.Context, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error)

	// SyncDir publishes every spec in a catalog directory and returns the
	// number published.
	SyncDir(ctx context.Context, dir string) (int, error)
}
