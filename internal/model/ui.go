package model

// Color classes applied to profit figures.
const (
	ClassPositive = "green"
	ClassNegative = "red"
)

// Selection is the ticker and range currently on the chart.
type Selection struct {
	Ticker string `json:"ticker"`
	Range  Range  `json:"range"`
}

// ListRow is one line of the ticker list.
type ListRow struct {
	Ticker     string  `json:"ticker"`
	BookValue  float64 `json:"bookValue"`
	Profit     float64 `json:"profit"`
	Price      string  `json:"price"`      // "$1.234"
	ProfitText string  `json:"profitText"` // "5.00%"
	ColorClass string  `json:"colorClass"` // green | red
}

// InfoPanel is the summary block above the chart.
type InfoPanel struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	Profit     string `json:"profit"`
	ColorClass string `json:"colorClass"`
}

// RangeButtons maps the range control labels to range codes.
var RangeButtons = map[string]Range{
	"1 Month": Range1mo,
	"3 Month": Range3mo,
	"1 Year":  Range1y,
	"5 Years": Range5y,
}

// RangeLabels lists the button labels in display order.
var RangeLabels = []string{"1 Month", "3 Month", "1 Year", "5 Years"}

// RangeForLabel resolves a button label to its range code.
func RangeForLabel(label string) (Range, bool) {
	r, ok := RangeButtons[label]
	return r, ok
}
