package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"StockBoard/internal/model"
)

// Endpoints are the paths of the three snapshot resources.
type Endpoints struct {
	Stats    string
	Profiles string
	Series   string
}

// DefaultEndpoints returns the paths served by the stocks API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Stats:    "/api/stocks/getstockstatsdata",
		Profiles: "/api/stocks/getstocksprofiledata",
		Series:   "/api/stocks/getstocksdata",
	}
}

// Snapshot array field of each response.
const (
	statsField    = "stocksStatsData"
	profilesField = "stocksProfileData"
	seriesField   = "stocksData"
)

// APIFetcher implements Fetcher against the stocks REST API.
type APIFetcher struct {
	client    *resty.Client
	endpoints Endpoints
	log       zerolog.Logger
}

// NewAPIFetcher creates a fetcher for baseURL. Empty endpoint paths fall back
// to DefaultEndpoints. A zero timeout disables the request deadline; proxyURL
// is optional.
func NewAPIFetcher(baseURL string, endpoints Endpoints, timeout time.Duration, proxyURL string, log zerolog.Logger) *APIFetcher {
	def := DefaultEndpoints()
	if endpoints.Stats == "" {
		endpoints.Stats = def.Stats
	}
	if endpoints.Profiles == "" {
		endpoints.Profiles = def.Profiles
	}
	if endpoints.Series == "" {
		endpoints.Series = def.Series
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "StockBoard/1.0",
		})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &APIFetcher{
		client:    client,
		endpoints: endpoints,
		log:       log.With().Str("component", "collector").Logger(),
	}
}

func (f *APIFetcher) Name() string { return "stocksapi" }

func (f *APIFetcher) fetchSnapshot(ctx context.Context, path, field string) (map[string]any, error) {
	resp, err := f.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get %s: status %d, body: %s", path, resp.StatusCode(), resp.String())
	}
	snap, err := decodeSnapshot(resp.Body(), field)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return snap, nil
}

// FetchStats returns ticker -> stats from the stats snapshot.
func (f *APIFetcher) FetchStats(ctx context.Context) (map[string]model.StatsEntry, error) {
	snap, err := f.fetchSnapshot(ctx, f.endpoints.Stats, statsField)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	stats := decodeEntries[model.StatsEntry](snap, f.log)
	f.log.Debug().Int("tickers", len(stats)).Msg("stats fetched")
	return stats, nil
}

// FetchProfiles returns ticker -> profile from the profile snapshot.
func (f *APIFetcher) FetchProfiles(ctx context.Context) (map[string]model.ProfileEntry, error) {
	snap, err := f.fetchSnapshot(ctx, f.endpoints.Profiles, profilesField)
	if err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}
	return decodeEntries[model.ProfileEntry](snap, f.log), nil
}

// FetchSeries returns the full dataset for every ticker and range.
func (f *APIFetcher) FetchSeries(ctx context.Context) (model.Dataset, error) {
	snap, err := f.fetchSnapshot(ctx, f.endpoints.Series, seriesField)
	if err != nil {
		return nil, fmt.Errorf("fetch series: %w", err)
	}
	ds := decodeDataset(snap, f.log)
	f.log.Debug().Int("tickers", len(ds)).Msg("series fetched")
	return ds, nil
}
