package collector

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"StockBoard/internal/model"
)

// ErrEmptySnapshot is returned when a response lacks the snapshot array or
// the array has no first element.
var ErrEmptySnapshot = errors.New("empty snapshot")

// metadataKey is the document identifier that sits next to the tickers in
// every snapshot object.
const metadataKey = "_id"

// decodeSnapshot unwraps response.<field>[0].
func decodeSnapshot(body []byte, field string) (map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	raw, ok := envelope[field]
	if !ok {
		return nil, fmt.Errorf("field %q missing: %w", field, ErrEmptySnapshot)
	}
	var snapshots []map[string]any
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, fmt.Errorf("decode %s: %w", field, err)
	}
	if len(snapshots) == 0 || snapshots[0] == nil {
		return nil, fmt.Errorf("field %q: %w", field, ErrEmptySnapshot)
	}
	return snapshots[0], nil
}

// decodeEntries decodes every ticker object of a snapshot into T, skipping
// the metadata key and any value that is not an object of the right shape.
func decodeEntries[T any](snapshot map[string]any, log zerolog.Logger) map[string]T {
	out := make(map[string]T, len(snapshot))
	for key, raw := range snapshot {
		if key == metadataKey {
			continue
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			log.Warn().Str("key", key).Msg("skipping non-object snapshot entry")
			continue
		}
		var entry T
		if err := mapstructure.Decode(obj, &entry); err != nil {
			log.Warn().Str("ticker", key).Err(err).Msg("skipping undecodable entry")
			continue
		}
		out[key] = entry
	}
	return out
}

// decodeDataset decodes the ticker -> range -> series snapshot.
func decodeDataset(snapshot map[string]any, log zerolog.Logger) model.Dataset {
	ds := make(model.Dataset, len(snapshot))
	for ticker, raw := range snapshot {
		if ticker == metadataKey {
			continue
		}
		ranges, ok := raw.(map[string]any)
		if !ok {
			log.Warn().Str("key", ticker).Msg("skipping non-object series entry")
			continue
		}
		bySeries := make(map[model.Range]model.Series, len(ranges))
		for rng, s := range decodeEntries[model.Series](ranges, log) {
			if len(s.TimeStamp) != len(s.Value) {
				log.Warn().Str("ticker", ticker).Str("range", rng).
					Int("timestamps", len(s.TimeStamp)).Int("values", len(s.Value)).
					Msg("skipping series with mismatched lengths")
				continue
			}
			bySeries[model.Range(rng)] = s
		}
		ds[ticker] = bySeries
	}
	return ds
}
