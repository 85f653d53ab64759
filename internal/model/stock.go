package model

// Range is the requested time window code for a historical series.
type Range string

const (
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range1y  Range = "1y"
	Range5y  Range = "5y"
)

// DefaultRange is rendered whenever a ticker is selected.
const DefaultRange = Range1mo

// Ranges lists the supported ranges in button order.
var Ranges = []Range{Range1mo, Range3mo, Range1y, Range5y}

// Valid reports whether r is one of the supported range codes.
func (r Range) Valid() bool {
	for _, v := range Ranges {
		if v == r {
			return true
		}
	}
	return false
}

// Series holds one ticker's price history for a single range.
// TimeStamp and Value are parallel arrays.
type Series struct {
	TimeStamp []int64   `json:"timeStamp" mapstructure:"timeStamp"`
	Value     []float64 `json:"value" mapstructure:"value"`
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.TimeStamp) }

// Dataset maps ticker -> range -> series.
type Dataset map[string]map[Range]Series

// Lookup returns the series for ticker and rng, if present.
func (d Dataset) Lookup(ticker string, rng Range) (Series, bool) {
	ranges, ok := d[ticker]
	if !ok {
		return Series{}, false
	}
	s, ok := ranges[rng]
	return s, ok
}

// StatsEntry is the per-ticker summary shown in the list and info panel.
type StatsEntry struct {
	BookValue float64 `json:"bookValue" mapstructure:"bookValue"`
	Profit    float64 `json:"profit" mapstructure:"profit"` // fractional, 0.0234 = 2.34%
}

// ProfileEntry carries the company description.
type ProfileEntry struct {
	Summary string `json:"summary" mapstructure:"summary"`
}
