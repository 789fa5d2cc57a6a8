package cache

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gilleslandais/astropy/pkg/logging"
)

// HTTPGetter fetches a URL body over the network.
type HTTPGetter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetcher satisfies the resolution client's fetch contract: with useCache
// set, a URL that has been fetched successfully once is served from the
// store without a network round trip, byte for byte. Only successful
// responses are stored, so a mirror outage never poisons the cache.
type Fetcher struct {
	getter HTTPGetter
	store  *Store
	logger *zerolog.Logger
}

// NewFetcher creates a cache-aware fetcher. store may be nil, in which case
// every fetch goes to the network regardless of useCache.
func NewFetcher(getter HTTPGetter, store *Store, logger *zerolog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{
		getter: getter,
		store:  store,
		logger: logger,
	}
}

// Fetch returns the body of url, through the cache when requested.
func (f *Fetcher) Fetch(ctx context.Context, url string, useCache bool) ([]byte, error) {
	if useCache && f.store != nil {
		if body, found := f.store.Get(url); found {
			f.logger.Debug().Str("url", url).Msg("Cache hit")
			return body, nil
		}
	}

	body, err := f.getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if useCache && f.store != nil {
		if err := f.store.Set(url, body); err != nil {
			// A failed cache write must not fail the resolution.
			f.logger.Warn().Err(err).Str("url", url).Msg("Failed to cache response")
		}
	}
	return body, nil
}
