package scorecard

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	sharedtypes "github.com/fairway-labs/looper/app/shared/types"
)

// RunningTotalChart renders a PNG line chart of each team's running total
// over the fully scored holes. Returns nil bytes when no hole is scored yet.
func RunningTotalChart(computed *sharedtypes.ComputedResults) ([]byte, error) {
	series := make(map[sharedtypes.TeamID]*chart.ContinuousSeries)
	var order []sharedtypes.TeamID

	for _, hole := range computed.Holes {
		for _, team := range hole.Teams {
			if hole.ScoresEntered < len(team.Players) || len(team.Players) == 0 {
				continue
			}
			s, ok := series[team.Team]
			if !ok {
				s = &chart.ContinuousSeries{Name: "Team " + string(team.Team)}
				series[team.Team] = s
				order = append(order, team.Team)
			}
			s.XValues = append(s.XValues, float64(hole.Hole))
			s.YValues = append(s.YValues, team.RunningTotal)
		}
	}

	if len(order) == 0 {
		return nil, nil
	}

	graph := chart.Chart{
		Title:  "Running total",
		Width:  800,
		Height: 400,
		XAxis:  chart.XAxis{Name: "Hole"},
	}
	for _, id := range order {
		// a single point cannot draw a line segment; pad with itself
		s := series[id]
		if len(s.XValues) == 1 {
			s.XValues = append(s.XValues, s.XValues[0])
			s.YValues = append(s.YValues, s.YValues[0])
		}
		graph.Series = append(graph.Series, s)
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render running total chart: %w", err)
	}
	return buf.Bytes(), nil
}
