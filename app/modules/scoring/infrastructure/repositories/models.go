package scoringdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// GameRecord persists a game aggregate snapshot. The snapshot is stored as a
// jsonb document because scoring always rederives results from the whole
// aggregate; there is no per-column query surface.
type GameRecord struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID        string           `bun:"id,pk"`
	Name      string           `bun:"name"`
	Snapshot  *sharedtypes.Game `bun:"snapshot,type:jsonb,notnull"`
	UpdatedAt time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ScoreEdit journals one applied gross-score change so an invalidation
// resolution can undo it exactly.
type ScoreEdit struct {
	bun.BaseModel `bun:"table:score_edits,alias:se"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	GameID    string    `bun:"game_id,notnull"`
	Player    string    `bun:"player,notnull"`
	Hole      int       `bun:"hole,notnull"`
	PrevGross float64   `bun:"prev_gross,notnull"`
	NewGross  float64   `bun:"new_gross,notnull"`
	Resolved  bool      `bun:"resolved,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
