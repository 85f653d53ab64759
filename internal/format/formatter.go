// Package format turns raw stock figures into the strings shown by the widget.
package format

import (
	"time"

	"github.com/shopspring/decimal"

	"StockBoard/internal/model"
)

// DateLayout is the display layout for chart dates ("Jan 1, 1970").
const DateLayout = "Jan 2, 2006"

// FormatDate renders unix seconds as a display date in loc.
// A nil loc means UTC.
func FormatDate(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(ts, 0).In(loc).Format(DateLayout)
}

// FormatDates formats every timestamp, preserving order and length.
func FormatDates(timestamps []int64, loc *time.Location) []string {
	out := make([]string, len(timestamps))
	for i, ts := range timestamps {
		out[i] = FormatDate(ts, loc)
	}
	return out
}

// exactExponent is small enough for NewFromFloatWithExponent to keep every
// binary digit of a float64.
const exactExponent = -1074

// fixed rounds the exact binary value of v to places decimals, ties away
// from zero, the way Number.prototype.toFixed does.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloatWithExponent(v, exactExponent).StringFixed(places)
}

// FormatPrice formats a book value as "$X.XXX".
func FormatPrice(bookValue float64) string {
	return "$" + fixed(bookValue, 3)
}

// FormatProfitPercent converts a fractional profit to a percentage with two
// decimals and no suffix: 0.05 -> "5.00".
func FormatProfitPercent(profit float64) string {
	return fixed(profit*100, 2)
}

// FormatProfit is FormatProfitPercent with a trailing percent sign.
func FormatProfit(profit float64) string {
	return FormatProfitPercent(profit) + "%"
}

// ColorClass picks the styling class for a profit. Zero counts as negative.
func ColorClass(profit float64) string {
	if profit > 0 {
		return model.ClassPositive
	}
	return model.ClassNegative
}

// HoverLabel is the text shown under the chart while a point is hovered.
func HoverLabel(x string) string {
	return "Date: " + x
}

// Panel builds the info panel for a ticker's stats.
func Panel(ticker string, st model.StatsEntry) model.InfoPanel {
	return model.InfoPanel{
		Name:       ticker,
		Price:      FormatPrice(st.BookValue),
		Profit:     FormatProfit(st.Profit),
		ColorClass: ColorClass(st.Profit),
	}
}

// Row builds one ticker list row.
func Row(ticker string, st model.StatsEntry) model.ListRow {
	return model.ListRow{
		Ticker:     ticker,
		BookValue:  st.BookValue,
		Profit:     st.Profit,
		Price:      FormatPrice(st.BookValue),
		ProfitText: FormatProfit(st.Profit),
		ColorClass: ColorClass(st.Profit),
	}
}
