package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/cashmatch/internal/models"
)

// LedgerChart renders a PNG line chart of the cash ledger.
// Three series: Bond Cash In (blue), Required Outflow (red dashed) and
// Surplus End (green).
func (s *Service) LedgerChart(result *models.OptimizationResult) ([]byte, error) {
	points := result.Ledger
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 ledger periods, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	inY := make([]float64, len(points))
	outY := make([]float64, len(points))
	surplusY := make([]float64, len(points))

	for i, p := range points {
		xValues[i] = p.Date.Time()
		inY[i] = p.BondCashIn
		outY[i] = p.RequiredOutflow
		surplusY[i] = p.SurplusEnd
	}

	inSeries := chart.TimeSeries{
		Name: "Bond Cash In",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: inY,
	}

	outSeries := chart.TimeSeries{
		Name: "Required Outflow",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("dc2626"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: outY,
	}

	surplusSeries := chart.TimeSeries{
		Name: "Surplus End",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: surplusY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Cash Flow & Surplus (reinvest %.2f%%)", result.ReinvestmentRateAnnual),
		Width:  s.cfg.ChartWidth,
		Height: s.cfg.ChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.1fmm", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			inSeries,
			outSeries,
			surplusSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		s.logger.Warn().Err(err).Str("run_id", result.RunID).Msg("Ledger chart render failed")
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
