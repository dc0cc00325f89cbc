package projection

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/carteiralab/carteira/internal/models"
)

// RenderChart renders the schedule as a PNG line chart: the compounding
// balance against the contributed-only baseline.
func RenderChart(schedule *models.ProjectionSchedule) ([]byte, error) {
	if len(schedule.Periods) < 2 {
		return nil, fmt.Errorf("%w: schedule too short to chart: %d periods", models.ErrInvalidInput, len(schedule.Periods))
	}

	months := make([]float64, len(schedule.Periods))
	balances := make([]float64, len(schedule.Periods))
	contributed := make([]float64, len(schedule.Periods))
	for i, period := range schedule.Periods {
		months[i] = float64(period.Month)
		balances[i] = period.ClosingBalance
		contributed[i] = period.CumulativeContributed
	}

	graph := chart.Chart{
		Title:  "Compound growth projection",
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Month",
		},
		YAxis: chart.YAxis{
			Name: "Balance",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "With reinvestment",
				XValues: months,
				YValues: balances,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("d4af37"),
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Contributions only",
				XValues: months,
				YValues: contributed,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("ff4b4b"),
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render projection chart: %w", err)
	}
	return buf.Bytes(), nil
}
