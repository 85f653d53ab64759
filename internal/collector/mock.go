package collector

import (
	"context"
	"sync/atomic"

	"StockBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Stats    map[string]model.StatsEntry
	Profiles map[string]model.ProfileEntry
	Dataset  model.Dataset

	StatsErr    error
	ProfilesErr error
	SeriesErr   error

	// SeriesFunc, when set, replaces the canned dataset. It lets tests block
	// or observe cancellation.
	SeriesFunc func(ctx context.Context) (model.Dataset, error)

	statsCalls    atomic.Int32
	profilesCalls atomic.Int32
	seriesCalls   atomic.Int32
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStats(ctx context.Context) (map[string]model.StatsEntry, error) {
	m.statsCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	return m.Stats, nil
}

func (m *MockFetcher) FetchProfiles(ctx context.Context) (map[string]model.ProfileEntry, error) {
	m.profilesCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ProfilesErr != nil {
		return nil, m.ProfilesErr
	}
	return m.Profiles, nil
}

func (m *MockFetcher) FetchSeries(ctx context.Context) (model.Dataset, error) {
	m.seriesCalls.Add(1)
	if m.SeriesFunc != nil {
		return m.SeriesFunc(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.SeriesErr != nil {
		return nil, m.SeriesErr
	}
	return m.Dataset, nil
}

// Calls reports how many times each fetch ran: stats, profiles, series.
func (m *MockFetcher) Calls() (stats, profiles, series int) {
	return int(m.statsCalls.Load()), int(m.profilesCalls.Load()), int(m.seriesCalls.Load())
}

// SampleFetcher returns a MockFetcher loaded with a small two-ticker fixture.
func SampleFetcher() *MockFetcher {
	return &MockFetcher{
		Stats: map[string]model.StatsEntry{
			"AAPL": {BookValue: 1.234, Profit: 0.05},
			"TSLA": {BookValue: 20.5, Profit: -0.0123},
		},
		Profiles: map[string]model.ProfileEntry{
			"AAPL": {Summary: "Apple designs consumer electronics."},
		},
		Dataset: model.Dataset{
			"AAPL": {
				model.Range1mo: {TimeStamp: []int64{0, 86400}, Value: []float64{10, 12}},
				model.Range1y:  {TimeStamp: []int64{0, 86400, 172800}, Value: []float64{8, 10, 12}},
			},
			"TSLA": {
				model.Range1mo: {TimeStamp: []int64{0, 86400, 172800}, Value: []float64{200, 190, 210}},
			},
		},
	}
}
