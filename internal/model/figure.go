package model

// Figure is a Plotly data/layout/config triple ready to be handed to
// Plotly.newPlot on the page.
type Figure struct {
	Ticker   string     `json:"ticker"`
	Range    Range      `json:"range"`
	Revision uint64     `json:"revision"`
	Data     []Trace    `json:"data"`
	Layout   Layout     `json:"layout"`
	Config   PlotConfig `json:"config"`
}

// Trace is a single scatter series.
type Trace struct {
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Mode          string    `json:"mode"`
	Marker        Marker    `json:"marker"`
	Line          Line      `json:"line"`
	HoverTemplate string    `json:"hovertemplate"`
	Type          string    `json:"type"`
}

type Marker struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

type Layout struct {
	PaperBGColor string  `json:"paper_bgcolor"`
	PlotBGColor  string  `json:"plot_bgcolor"`
	Margin       Margin  `json:"margin"`
	XAxis        Axis    `json:"xaxis"`
	YAxis        Axis    `json:"yaxis"`
	Shapes       []Shape `json:"shapes"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Axis struct {
	ShowGrid bool `json:"showgrid"`
	Visible  bool `json:"visible"`
}

// Shape is a layout annotation; the widget only draws vertical guide lines.
type Shape struct {
	Type string  `json:"type"`
	X0   string  `json:"x0"`
	X1   string  `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	Line Line    `json:"line"`
}

type PlotConfig struct {
	DisplayModeBar bool `json:"displayModeBar"`
}

// Hover is the pointer state over the chart.
type Hover struct {
	X     string `json:"x"`
	Label string `json:"label"`
}

// WithShapes returns a copy of f whose layout carries shapes. The trace data
// is shared and must be treated as read-only.
func (f *Figure) WithShapes(shapes []Shape) *Figure {
	c := *f
	if shapes == nil {
		shapes = []Shape{}
	}
	c.Layout.Shapes = shapes
	return &c
}

// HasX reports whether x is one of the plotted x values.
func (f *Figure) HasX(x string) bool {
	for _, tr := range f.Data {
		for _, v := range tr.X {
			if v == x {
				return true
			}
		}
	}
	return false
}
