package calculator

import (
	"errors"
	"math"
)

// ErrNoValues is returned when a range is requested over an empty series.
var ErrNoValues = errors.New("no values provided")

// SeriesRange scans values and returns the low and high.
func SeriesRange(values []float64) (low, high float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrNoValues
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return low, high, nil
}

// PaddedRange widens [low, high] by frac of its span on both sides so the
// plotted line does not touch the frame. A flat series gets one unit of
// padding per side, or frac of |low| when that is larger.
func PaddedRange(values []float64, frac float64) (low, high float64, err error) {
	low, high, err = SeriesRange(values)
	if err != nil {
		return 0, 0, err
	}
	span := high - low
	if span == 0 {
		pad := math.Max(1, math.Abs(low)*frac)
		return low - pad, high + pad, nil
	}
	return low - span*frac, high + span*frac, nil
}
