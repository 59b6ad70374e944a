// Package catalogdb persists the rule catalog: published game specs and
// their options.
package catalogdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ErrSpecNotFound signals a missing spec key.
var ErrSpecNotFound = errors.New("game spec not found")

// Repository is the persistence boundary of the catalog module.
type Repository interface {
	GetSpec(ctx context.Context, db bun.IDB, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error)
	ListSpecs(ctx context.Context, db bun.IDB) ([]*sharedtypes.GameSpec, error)
	UpsertSpec(ctx context.Context, db bun.IDB, spec *sharedtypes.GameSpec) error
}

// CatalogDBImpl implements Repository on bun.
type CatalogDBImpl struct {
	DB *bun.DB
}

func (r *CatalogDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

// GetSpec returns the highest published version of a spec.
func (r *CatalogDBImpl) GetSpec(ctx context.Context, db bun.IDB, key sharedtypes.SpecKey) (*sharedtypes.GameSpec, error) {
	var record SpecRecord
	err := r.conn(db).NewSelect().
		Model(&record).
		Where("key = ?", string(key)).
		Order("version DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpecNotFound
		}
		return nil, fmt.Errorf("failed to fetch spec %s: %w", key, err)
	}
	return record.Doc, nil
}

// ListSpecs returns the latest version of every published spec.
func (r *CatalogDBImpl) ListSpecs(ctx context.Context, db bun.IDB) ([]*sharedtypes.GameSpec, error) {
	var records []SpecRecord
	err := r.conn(db).NewSelect().
		Model(&records).
		DistinctOn("key").
		Order("key", "version DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specs: %w", err)
	}
	specs := make([]*sharedtypes.GameSpec, 0, len(records))
	for _, record := range records {
		specs = append(specs, record.Doc)
	}
	return specs, nil
}

// UpsertSpec writes a spec at its declared version.
func (r *CatalogDBImpl) UpsertSpec(ctx context.Context, db bun.IDB, spec *sharedtypes.GameSpec) error {
	record := SpecRecord{
		Key:       string(spec.Key),
		Version:   spec.Version,
		Name:      spec.Name,
		Doc:       spec,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.conn(db).NewInsert().
		Model(&record).
		On("CONFLICT (key, version) DO UPDATE").
		Set("name = EXCLUDED.name, doc = EXCLUDED.doc").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert spec %s v%d: %w", spec.Key, spec.Version, err)
	}
	return nil
}
