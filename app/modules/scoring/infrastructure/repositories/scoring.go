// Package scoringdb persists game snapshots and the score-edit journal.
package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// ScoringDBImpl implements Repository on bun.
type ScoringDBImpl struct {
	DB *bun.DB
}

func (r *ScoringDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *ScoringDBImpl) GetGame(ctx context.Context, db bun.IDB, id sharedtypes.GameID) (*sharedtypes.Game, error) {
	var record GameRecord
	err := r.conn(db).NewSelect().
		Model(&record).
		Where("id = ?", string(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to fetch game %s: %w", id, err)
	}
	return record.Snapshot, nil
}

func (r *ScoringDBImpl) SaveGame(ctx context.Context, db bun.IDB, game *sharedtypes.Game) error {
	record := GameRecord{
		ID:        string(game.ID),
		Name:      game.Name,
		Snapshot:  game,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.conn(db).NewInsert().
		Model(&record).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name, snapshot = EXCLUDED.snapshot, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}
	return nil
}

func (r *ScoringDBImpl) RecordEdit(ctx context.Context, db bun.IDB, edit *ScoreEdit) error {
	if edit.ID == uuid.Nil {
		edit.ID = uuid.New()
	}
	if edit.CreatedAt.IsZero() {
		edit.CreatedAt = time.Now().UTC()
	}
	_, err := r.conn(db).NewInsert().
		Model(edit).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record score edit for game %s: %w", edit.GameID, err)
	}
	return nil
}

func (r *ScoringDBImpl) GetEdit(ctx context.Context, db bun.IDB, id uuid.UUID) (*ScoreEdit, error) {
	var edit ScoreEdit
	err := r.conn(db).NewSelect().
		Model(&edit).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEditNotFound
		}
		return nil, fmt.Errorf("failed to fetch score edit %s: %w", id, err)
	}
	return &edit, nil
}

func (r *ScoringDBImpl) MarkEditResolved(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.conn(db).NewUpdate().
		Model((*ScoreEdit)(nil)).
		Set("resolved = TRUE").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve score edit %s: %w", id, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrEditNotFound
	}
	return nil
}
