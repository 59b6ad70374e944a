package catalogservice

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	catalogdb "github.com/fairway-labs/looper/app/modules/catalog/infrastructure/repositories"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func newTestService(repo *fakeRepo) *CatalogService {
	return NewCatalogService(repo, slog.Default(), noop.NewTracerProvider().Tracer("test"))
}

func TestGetSpecCompilesStoredSpec(t *testing.T) {
	stored := &sharedtypes.GameSpec{
		Key: "five_points",
		Options: []*sharedtypes.Option{{
			Name:  "birdie",
			Type:  sharedtypes.OptionTypeJunk,
			Logic: `{'parOrBetter': [{'var': 'score'}, 1]}`,
		}},
	}
	repo := &fakeRepo{getSpecFn: func(context.Context, sharedtypes.SpecKey) (*sharedtypes.GameSpec, error) {
		return stored, nil
	}}

	spec, err := newTestService(repo).GetSpec(context.Background(), "five_points")
	require.NoError(t, err)
	assert.NotNil(t, spec.Options[0].CompiledLogic)
}

func TestGetSpecNotFound(t *testing.T) {
	repo := &fakeRepo{getSpecFn: func(context.Context, sharedtypes.SpecKey) (*sharedtypes.GameSpec, error) {
		return nil, catalogdb.ErrSpecNotFound
	}}

	_, err := newTestService(repo).GetSpec(context.Background(), "nope")
	require.ErrorIs(t, err, catalogdb.ErrSpecNotFound)
}

func TestSyncDirPublishesEverySpec(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "a.yaml", "key: alpha\nname: Alpha\nversion: 1\ntype: points\n")
	writeSpec(t, dir, "b.yaml", "key: beta\nname: Beta\nversion: 2\ntype: match\n")

	repo := &fakeRepo{}
	n, err := newTestService(repo).SyncDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.upserted, 2)
	assert.Equal(t, sharedtypes.SpecKey("alpha"), repo.upserted[0].Key)
}
