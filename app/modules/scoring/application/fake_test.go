package scoringservice

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdb "github.com/fairway-labs/looper/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// fakeRepo is a programmable scoringdb.Repository for service tests.
type fakeRepo struct {
	games map[sharedtypes.GameID]*sharedtypes.Game
	edits map[uuid.UUID]*scoringdb.ScoreEdit

	getGameErr  error
	saveGameErr error
	savedGames  []*sharedtypes.Game
}

func newFakeRepo(games ...*sharedtypes.Game) *fakeRepo {
	repo := &fakeRepo{
		games: make(map[sharedtypes.GameID]*sharedtypes.Game),
		edits: make(map[uuid.UUID]*scoringdb.ScoreEdit),
	}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (f *fakeRepo) GetGame(_ context.Context, _ bun.IDB, id sharedtypes.GameID) (*sharedtypes.Game, error) {
	if f.getGameErr != nil {
		return nil, f.getGameErr
	}
	game, ok := f.games[id]
	if !ok {
		return nil, scoringdb.ErrGameNotFound
	}
	return game, nil
}

func (f *fakeRepo) SaveGame(_ context.Context, _ bun.IDB, game *sharedtypes.Game) error {
	if f.saveGameErr != nil {
		return f.saveGameErr
	}
	f.games[game.ID] = game
	f.savedGames = append(f.savedGames, game)
	return nil
}

func (f *fakeRepo) RecordEdit(_ context.Context, _ bun.IDB, edit *scoringdb.ScoreEdit) error {
	if edit.ID == uuid.Nil {
		edit.ID = uuid.New()
	}
	f.edits[edit.ID] = edit
	return nil
}

func (f *fakeRepo) GetEdit(_ context.Context, _ bun.IDB, id uuid.UUID) (*scoringdb.ScoreEdit, error) {
	edit, ok := f.edits[id]
	if !ok {
		return nil, scoringdb.ErrEditNotFound
	}
	return edit, nil
}

func (f *fakeRepo) MarkEditResolved(_ context.Context, _ bun.IDB, id uuid.UUID) error {
	edit, ok := f.edits[id]
	if !ok {
		return scoringdb.ErrEditNotFound
	}
	edit.Resolved = true
	return nil
}
