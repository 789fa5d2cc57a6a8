// Package astropy resolves astronomical object names to celestial
// coordinates. Resolution queries Sesame mirrors (SIMBAD, NED, VizieR) with
// deterministic mirror fallback, optionally through a URL-keyed response
// cache, and can instead decode coordinates embedded directly in survey
// designations without touching the network.
package astropy

import (
	"context"

	"github.com/gilleslandais/astropy/internal/cache"
	"github.com/gilleslandais/astropy/internal/transport"
	"github.com/gilleslandais/astropy/pkg/coordinates"
	"github.com/gilleslandais/astropy/pkg/errors"
	"github.com/gilleslandais/astropy/pkg/jparser"
	"github.com/gilleslandais/astropy/pkg/sesame"
)

// Resolver turns free-text object identifiers into ICRS coordinates.
type Resolver interface {
	// Resolve returns the coordinate for name, or a NameResolveError when
	// every configured mirror is exhausted (or, in embedded-parsing mode,
	// when the name carries no decodable coordinate).
	Resolve(ctx context.Context, name string) (coordinates.ICRS, error)

	// Lookup is Resolve plus the identifier and classification the mirror
	// reported, when available.
	Lookup(ctx context.Context, name string) (*sesame.Response, error)

	// Registry exposes the mirror list and database selector in use, for
	// inspection and scoped overrides.
	Registry() *sesame.Registry
}

// resolver is the internal implementation of the Resolver interface
type resolver struct {
	config   *config
	registry *sesame.Registry
	client   *sesame.Client
}

// New creates a new Resolver with the given options
func New(opts ...Option) (Resolver, error) {
	r := &resolver{
		config: defaultConfig(),
	}

	if err := r.options(opts...); err != nil {
		return nil, err
	}

	// Use the provided registry or create a fresh one
	if r.config.registry != nil {
		r.registry = r.config.registry
	} else {
		r.registry = sesame.NewRegistry()
	}

	if len(r.config.mirrors) > 0 {
		if err := r.registry.SetMirrors(r.config.mirrors); err != nil {
			return nil, err
		}
	}
	if r.config.database != "" {
		if err := r.registry.SetDatabase(r.config.database); err != nil {
			return nil, err
		}
	}

	fetcher := r.config.fetcher
	if fetcher == nil {
		var store *cache.Store
		if r.config.cacheEnabled {
			s, err := cache.New(r.config.cacheDir, r.config.cacheTTL, 0)
			if err != nil {
				return nil, err
			}
			store = s
		}
		fetcher = cache.NewFetcher(transport.New(r.config.httpTimeout), store, r.config.logger)
	}

	r.client = sesame.NewClient(r.registry, fetcher,
		sesame.WithLogger(r.config.logger),
		sesame.WithCache(r.config.cacheEnabled),
	)

	return r, nil
}

// Resolve returns the coordinate for name.
func (r *resolver) Resolve(ctx context.Context, name string) (coordinates.ICRS, error) {
	resp, err := r.Lookup(ctx, name)
	if err != nil {
		return coordinates.ICRS{}, err
	}
	return resp.Coordinate, nil
}

// Lookup resolves name and returns the full mirror response.
//
// In embedded-parsing mode resolution is local only: the name either
// decodes through a known survey convention or fails immediately, with no
// network fallback. The two modes are mutually exclusive within one call.
func (r *resolver) Lookup(ctx context.Context, name string) (*sesame.Response, error) {
	if r.config.parseEmbedded {
		coord, ok := jparser.Extract(name)
		if !ok {
			return nil, errors.NewNameResolveError(name, nil)
		}
		return &sesame.Response{Coordinate: coord, Identifier: name}, nil
	}

	return r.client.Resolve(ctx, name)
}

// Registry returns the registry backing this resolver.
func (r *resolver) Registry() *sesame.Registry {
	return r.registry
}
