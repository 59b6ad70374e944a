package sharedtypes

// InvalidationKind discriminates InvalidatedItem variants.
type InvalidationKind string

const (
	InvalidationMultiplier InvalidationKind = "multiplier"
	InvalidationTeeFlip    InvalidationKind = "tee_flip"
)

// InvalidatedItem is a recorded user decision whose precondition no longer
// holds after a score edit. The engine only reports these; removal is always
// an explicit user choice.
type InvalidatedItem struct {
	Kind    InvalidationKind `json:"kind"`
	HoleNum int              `json:"hole_num"`
	TeamID  TeamID           `json:"team_id,omitempty"`
	Name    string           `json:"name,omitempty"`
	Disp    string           `json:"disp,omitempty"`
	Reason  string           `json:"reason"`
}

// ScoreImpact is the projected effect on one team's total of removing the
// invalidated multipliers.
type ScoreImpact struct {
	TeamID         TeamID  `json:"team_id"`
	CurrentTotal   float64 `json:"current_total"`
	ProjectedTotal float64 `json:"projected_total"`
}

// InvalidationResult is the full outcome of an invalidation check.
type InvalidationResult struct {
	Items            []InvalidatedItem `json:"items"`
	ScoreImpact      []ScoreImpact     `json:"score_impact"`
	HasInvalidations bool              `json:"has_invalidations"`
}

// InvalidationChoice is the user's resolution of an invalidated item.
type InvalidationChoice string

const (
	ChoiceKeep     InvalidationChoice = "keep"
	ChoiceRemove   InvalidationChoice = "remove"
	ChoiceUndoEdit InvalidationChoice = "undo_edit"
)
