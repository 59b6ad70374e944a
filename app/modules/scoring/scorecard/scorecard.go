// Package scorecard renders computed results into shareable artifacts: an
// XLSX workbook and a running-total chart.
package scorecard

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fairway-labs/looper/app/modules/scoring/engine"
	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

const sheetName = "Scorecard"

// Render builds an XLSX scorecard for a game: hole and par rows, one gross
// row per player, and one points row per team with its running total.
func Render(game *sharedtypes.Game, computed *sharedtypes.ComputedResults) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorecard sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	holes := game.HoleNumbers()
	lastCol := len(holes) + 2

	setCell(f, 1, 1, game.Name)
	setCell(f, 2, 1, "Hole")
	setCell(f, 2, lastCol, "Total")
	for i, hole := range holes {
		setCell(f, 2, i+2, hole)
	}

	row := 3
	if tee := firstTee(game); tee != nil {
		setCell(f, row, 1, "Par")
		totalPar := 0
		for i, hole := range holes {
			for _, th := range tee.Holes {
				if th.Number == hole {
					setCell(f, row, i+2, th.Par)
					totalPar += th.Par
					break
				}
			}
		}
		setCell(f, row, lastCol, totalPar)
		row++
	}

	for _, player := range game.Players {
		setCell(f, row, 1, player.Name)
		round := game.RoundForPlayer(player.ID)
		total := 0.0
		for i, hole := range holes {
			gross := grossFor(round, hole)
			if gross > 0 {
				setCell(f, row, i+2, gross)
				total += gross
			}
		}
		if total > 0 {
			setCell(f, row, lastCol, total)
		}
		if summary := summaryFor(computed, player.ID); summary != nil && summary.HolesScored > 0 {
			setCell(f, row, lastCol+1, engine.FormatToPar(summary.GrossToPar))
		}
		row++
	}

	for _, id := range teamOrder(computed) {
		setCell(f, row, 1, "Team "+string(id))
		var lastRunning float64
		for i, hole := range holes {
			holeResult := computed.HoleResult(hole)
			if holeResult == nil {
				continue
			}
			team := holeResult.TeamFor(id)
			if team == nil || holeResult.ScoresEntered < len(team.Players) {
				continue
			}
			setCell(f, row, i+2, engine.FormatPoints(team.Points))
			lastRunning = team.RunningTotal
		}
		setCell(f, row, lastCol, engine.FormatPoints(lastRunning))
		row++
	}

	if computed.MatchOver {
		setCell(f, row+1, 1, fmt.Sprintf("Team %s wins %s", computed.Winner, computed.MatchResult))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write scorecard workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, row, col int, value any) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = f.SetCellValue(sheetName, cell, value)
}

func firstTee(game *sharedtypes.Game) *sharedtypes.Tee {
	for _, round := range game.Rounds {
		if round != nil && round.Tee != nil {
			return round.Tee
		}
	}
	return nil
}

func grossFor(round *sharedtypes.Round, hole int) float64 {
	if round == nil {
		return 0
	}
	for _, s := range round.Scores {
		if s != nil && s.Hole == hole {
			return s.Gross
		}
	}
	return 0
}

func summaryFor(computed *sharedtypes.ComputedResults, id sharedtypes.PlayerID) *sharedtypes.PlayerSummary {
	for _, p := range computed.Players {
		if p.Player == id {
			return p
		}
	}
	return nil
}

// teamOrder returns team IDs in the order they appear on the last hole that
// has any teams.
func teamOrder(computed *sharedtypes.ComputedResults) []sharedtypes.TeamID {
	for i := len(computed.Holes) - 1; i >= 0; i-- {
		if len(computed.Holes[i].Teams) > 0 {
			out := make([]sharedtypes.TeamID, 0, len(computed.Holes[i].Teams))
			for _, t := range computed.Holes[i].Teams {
				out = append(out, t.Team)
			}
			return out
		}
	}
	return nil
}
