package scorecard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

func renderFixture() (*sharedtypes.Game, *sharedtypes.ComputedResults) {
	tee := &sharedtypes.Tee{Name: "white", Slope: 113, Holes: []*sharedtypes.TeeHole{
		{Number: 1, Par: 4, Allocation: 1},
		{Number: 2, Par: 3, Allocation: 2},
	}}
	game := &sharedtypes.Game{
		ID:   "g-render",
		Name: "Saturday Game",
		Holes: []*sharedtypes.GameHole{
			{Hole: 1, Teams: []*sharedtypes.GameTeam{
				{Team: "1", Players: []sharedtypes.PlayerID{"p1"}},
				{Team: "2", Players: []sharedtypes.PlayerID{"p2"}},
			}},
			{Hole: 2, Teams: []*sharedtypes.GameTeam{
				{Team: "1", Players: []sharedtypes.PlayerID{"p1"}},
				{Team: "2", Players: []sharedtypes.PlayerID{"p2"}},
			}},
		},
		Players: []*sharedtypes.Player{
			{ID: "p1", Name: "Ann"},
			{ID: "p2", Name: "Bo"},
		},
		Rounds: []*sharedtypes.Round{
			{Player: "p1", Tee: tee, Scores: []*sharedtypes.Score{{Hole: 1, Gross: 4}, {Hole: 2, Gross: 3}}},
			{Player: "p2", Tee: tee, Scores: []*sharedtypes.Score{{Hole: 1, Gross: 5}, {Hole: 2, Gross: 3}}},
		},
	}

	computed := &sharedtypes.ComputedResults{
		Holes: []*sharedtypes.HoleScoringResult{
			{Hole: 1, ScoresEntered: 2, Teams: []*sharedtypes.TeamScore{
				{Team: "1", Players: []*sharedtypes.PlayerHoleScore{{Player: "p1"}}, Points: 1, RunningTotal: 1},
				{Team: "2", Players: []*sharedtypes.PlayerHoleScore{{Player: "p2"}}, Points: 0, RunningTotal: 0},
			}},
			{Hole: 2, ScoresEntered: 2, Teams: []*sharedtypes.TeamScore{
				{Team: "1", Players: []*sharedtypes.PlayerHoleScore{{Player: "p1"}}, Points: 0, RunningTotal: 1},
				{Team: "2", Players: []*sharedtypes.PlayerHoleScore{{Player: "p2"}}, Points: 2, RunningTotal: 2},
			}},
		},
		Players: []*sharedtypes.PlayerSummary{
			{Player: "p1", Gross: 7, GrossToPar: 0, HolesScored: 2},
			{Player: "p2", Gross: 8, GrossToPar: 1, HolesScored: 2},
		},
	}
	return game, computed
}

func TestRenderScorecardWorkbook(t *testing.T) {
	game, computed := renderFixture()

	data, err := Render(game, computed)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Saturday Game", title)

	hole1, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1", hole1)

	par2, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "3", par2)

	ann, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Ann", ann)

	annTotal, err := f.GetCellValue(sheetName, "D4")
	require.NoError(t, err)
	assert.Equal(t, "7", annTotal)

	team2Total, err := f.GetCellValue(sheetName, "D7")
	require.NoError(t, err)
	assert.Equal(t, "+2", team2Total)
}

func TestRunningTotalChart(t *testing.T) {
	_, computed := renderFixture()

	png, err := RunningTotalChart(computed)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic header
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRunningTotalChartEmptyResults(t *testing.T) {
	png, err := RunningTotalChart(&sharedtypes.ComputedResults{})
	require.NoError(t, err)
	assert.Nil(t, png)
}
