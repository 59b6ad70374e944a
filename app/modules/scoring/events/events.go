// Package scoringevents defines the subjects and payloads the scoring module
// exchanges over the event bus.
package scoringevents

import (
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// StreamName is the JetStream stream carrying all scoring subjects.
const StreamName = "scoring"

// Subjects consumed and published by the scoring module.
const (
	ScoreboardRequested   = "scoring.scoreboard.requested"
	ScoreEditRequested    = "scoring.score.edit.requested"
	InvalidationResolved  = "scoring.invalidation.resolution.requested"
	ScorecardExportNeeded = "scoring.scorecard.export.requested"

	ScoreboardRecomputed  = "scoring.scoreboard.recomputed"
	ScoreEditFailed       = "scoring.score.edit.failed"
	InvalidationsDetected = "scoring.score.invalidations.detected"
	ScorecardExported     = "scoring.scorecard.exported"
)

// StreamSubjects lists every subject the stream must cover.
var StreamSubjects = []string{
	ScoreboardRequested,
	ScoreEditRequested,
	InvalidationResolved,
	ScorecardExportNeeded,
	ScoreboardRecomputed,
	ScoreEditFailed,
	InvalidationsDetected,
	ScorecardExported,
}

// ScoreboardRequestedPayload asks for a fresh scoreboard computation.
type ScoreboardRequestedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
}

// ScoreboardRecomputedPayload carries a freshly computed scoreboard.
type ScoreboardRecomputedPayload struct {
	GameID  sharedtypes.GameID            `json:"game_id"`
	Results *sharedtypes.ComputedResults  `json:"results"`
}

// ScoreboardFailedPayload reports a scoreboard computation that could not run.
type ScoreboardFailedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Error  string             `json:"error"`
}

// ScoreEditRequestedPayload asks for a gross score change.
type ScoreEditRequestedPayload struct {
	GameID sharedtypes.GameID   `json:"game_id"`
	Player sharedtypes.PlayerID `json:"player"`
	Hole   int                  `json:"hole"`
	Gross  float64              `json:"gross"`
}

// ScoreEditAppliedPayload reports an applied edit with the recomputed
// scoreboard and any recorded decisions the edit invalidated. EditID is only
// set when invalidations were detected; it keys the undo journal entry.
type ScoreEditAppliedPayload struct {
	GameID       sharedtypes.GameID              `json:"game_id"`
	Player       sharedtypes.PlayerID            `json:"player"`
	Hole         int                             `json:"hole"`
	EditID       string                          `json:"edit_id,omitempty"`
	Results      *sharedtypes.ComputedResults    `json:"results"`
	Invalidation *sharedtypes.InvalidationResult `json:"invalidation,omitempty"`
}

// ScoreEditFailedPayload reports an edit that could not be applied.
type ScoreEditFailedPayload struct {
	GameID sharedtypes.GameID   `json:"game_id"`
	Player sharedtypes.PlayerID `json:"player"`
	Hole   int                  `json:"hole"`
	Error  string               `json:"error"`
}

// InvalidationResolutionPayload carries the user's choice for invalidated
// decisions: keep them, remove them, or undo the edit that broke them.
type InvalidationResolutionPayload struct {
	GameID sharedtypes.GameID             `json:"game_id"`
	EditID string                         `json:"edit_id"`
	Choice sharedtypes.InvalidationChoice `json:"choice"`
	Items  []sharedtypes.InvalidatedItem  `json:"items,omitempty"`
}

// InvalidationResolvedPayload reports the applied resolution and the
// scoreboard after it.
type InvalidationResolvedPayload struct {
	GameID  sharedtypes.GameID             `json:"game_id"`
	Choice  sharedtypes.InvalidationChoice `json:"choice"`
	Results *sharedtypes.ComputedResults   `json:"results"`
}

// InvalidationResolutionFailedPayload reports a resolution that could not be
// applied.
type InvalidationResolutionFailedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
	EditID string             `json:"edit_id"`
	Error  string             `json:"error"`
}

// ScorecardExportRequestedPayload asks for a rendered scorecard.
type ScorecardExportRequestedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
}

// ScorecardExportedPayload carries the rendered scorecard workbook and the
// running-total chart.
type ScorecardExportedPayload struct {
	GameID   sharedtypes.GameID `json:"game_id"`
	Filename string             `json:"filename"`
	Workbook []byte             `json:"workbook"`
	ChartPNG []byte             `json:"chart_png,omitempty"`
}

// ScorecardExportFailedPayload reports an export that could not be rendered.
type ScorecardExportFailedPayload struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Error  string             `json:"error"`
}
