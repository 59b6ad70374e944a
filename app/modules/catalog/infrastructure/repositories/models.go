package catalogdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// SpecRecord persists a published game spec. Specs are immutable per version;
// publishing a change bumps the version.
type SpecRecord struct {
	bun.BaseModel `bun:"table:game_specs,alias:gs"`

	Key       string               `bun:"key,pk"`
	Version   int                  `bun:"version,pk"`
	Name      string               `bun:"name,notnull"`
	Doc       *sharedtypes.GameSpec `bun:"doc,type:jsonb,notnull"`
	CreatedAt time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
