package scoringdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// Repository is the persistence boundary of the scoring module. All methods
// accept a bun.IDB so the service layer can run them inside a transaction;
// nil means the repository's own connection.
type Repository interface {
	GetGame(ctx context.Context, db bun.IDB, id sharedtypes.GameID) (*sharedtypes.Game, error)
	SaveGame(ctx context.Context, db bun.IDB, game *sharedtypes.Game) error

	RecordEdit(ctx context.Context, db bun.IDB, edit *ScoreEdit) error
	GetEdit(ctx context.Context, db bun.IDB, id uuid.UUID) (*ScoreEdit, error)
	MarkEditResolved(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
