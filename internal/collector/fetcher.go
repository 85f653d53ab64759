package collector

import (
	"context"

	"StockBoard/internal/model"
)

// Fetcher defines the interface for fetching widget data from the stocks API.
type Fetcher interface {
	FetchStats(ctx context.Context) (map[string]model.StatsEntry, error)
	FetchProfiles(ctx context.Context) (map[string]model.ProfileEntry, error)
	FetchSeries(ctx context.Context) (model.Dataset, error)
	Name() string
}
