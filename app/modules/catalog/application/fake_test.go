package catalogservice

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// fakeRepo is a programmable catalogdb.Repository for service tests.
type fakeRepo struct {
	getSpecFn    func(ctx context.Context, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error)
	upsertSpecFn func(ctx context.Context, spec *sharedtypes.GameSpec) error
	upserted     []*sharedtypes.GameSpec
}

func (f *fakeRepo) GetSpec(ctx context.Context, _ bun.IDB, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error) {
	return f.getSpecFn(ctx, key)
}

func (f *fakeRepo) ListSpecs(context.Context, bun.IDB) ([]*sharedtypes.GameSpec, error) {
	return f.upserted, nil
}

func (f *fakeRepo) UpsertSpec(ctx context.Context, _ bun.IDB, spec *sharedtypes.GameSpec) error {
	if f.upsertSpecFn != nil {
		if err := f.upsertSpecFn(ctx, spec); err != nil {
			return err
		}
	}
	f.upserted = append(f.upserted, spec)
	return nil
}
