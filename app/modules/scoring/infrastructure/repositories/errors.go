package scoringdb

import "errors"

// Sentinel errors for the repository layer. These signal database state; the
// service layer decides whether one is a domain failure.
var (
	ErrGameNotFound = errors.New("game not found")
	ErrEditNotFound = errors.New("score edit not found")
)
