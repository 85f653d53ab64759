package chart

import (
	"fmt"
	"time"

	"StockBoard/internal/format"
	"StockBoard/internal/model"
)

const (
	lineColor       = "lime"
	backgroundColor = "#0a0931"
	guideColor      = "#fff"
)

// BuildFigure lays out series as a Plotly figure for ticker/rng.
func BuildFigure(ticker string, rng model.Range, s model.Series, loc *time.Location, revision uint64) *model.Figure {
	y := make([]float64, len(s.Value))
	copy(y, s.Value)

	return &model.Figure{
		Ticker:   ticker,
		Range:    rng,
		Revision: revision,
		Data: []model.Trace{{
			X:             format.FormatDates(s.TimeStamp, loc),
			Y:             y,
			Mode:          "lines+markers",
			Type:          "scatter",
			Marker:        model.Marker{Color: lineColor, Size: 6},
			Line:          model.Line{Color: lineColor, Width: 2},
			HoverTemplate: fmt.Sprintf("%s: $%%{y:.2f}<extra></extra>", ticker),
		}},
		Layout: model.Layout{
			PaperBGColor: backgroundColor,
			PlotBGColor:  backgroundColor,
			Margin:       model.Margin{L: 20, R: 20, T: 20, B: 40},
			XAxis:        model.Axis{ShowGrid: false, Visible: false},
			YAxis:        model.Axis{ShowGrid: false, Visible: false},
			Shapes:       []model.Shape{},
		},
		Config: model.PlotConfig{DisplayModeBar: false},
	}
}

// GuideLine is the full-height vertical line drawn at a hovered x.
func GuideLine(x string) model.Shape {
	return model.Shape{
		Type: "line",
		X0:   x,
		X1:   x,
		Y0:   0,
		Y1:   1,
		XRef: "x",
		YRef: "paper",
		Line: model.Line{Color: guideColor, Width: 1},
	}
}
